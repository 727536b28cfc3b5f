package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lujing-jlu/smartscope/pkg/analysis"
	"github.com/lujing-jlu/smartscope/pkg/cloud"
)

var infoCmd = &cobra.Command{
	Use:   "info [file.ply]",
	Short: "Display statistics about a point cloud file",
	Long:  "Show point count, bounding box, centroid, per-axis spread and estimated sampling density.",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	filename := args[0]

	points, colors, err := cloud.LoadPLY(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading PLY file: %v\n", err)
		os.Exit(1)
	}

	store := cloud.NewStore()
	store.Replace(points, colors, false)
	stats := analysis.AnalyzeCloud(store.Snapshot())

	fmt.Println("Point Cloud Information")
	fmt.Println("=======================")
	fmt.Printf("File: %s\n\n", filename)
	fmt.Print(stats.Summary())

	if stats.PointCount > 0 {
		fmt.Println("\nBounding Box:")
		fmt.Printf("  Min: (%.3f, %.3f, %.3f)\n",
			stats.BoundingBox.Min.X, stats.BoundingBox.Min.Y, stats.BoundingBox.Min.Z)
		fmt.Printf("  Max: (%.3f, %.3f, %.3f)\n",
			stats.BoundingBox.Max.X, stats.BoundingBox.Max.Y, stats.BoundingBox.Max.Z)
		fmt.Printf("  Diagonal: %.3f mm\n", stats.BoundingBox.Diagonal())
	}
}
