package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lujing-jlu/smartscope/internal/app"
	"github.com/lujing-jlu/smartscope/version"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "smartscope <file.ply>",
	Short: "Interactive point cloud inspector with on-screen measurements",
	Long: `smartscope opens a PLY point cloud in an interactive 3D view.
Drag to orbit, shift-drag or middle-drag to pan, scroll to zoom, and click
to author measurements (length, point-to-line, depth, area, profiles and
missing-area reconstruction). The file is watched and reloaded on change.`,
	Version: version.GetVersion(),
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger()
		if err != nil {
			return err
		}
		defer log.Sync()
		return app.Run(args[0], log)
	},
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	return cfg.Build()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version with commit and date",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.GetFullVersion())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
