package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersionDefault(t *testing.T) {
	assert.Equal(t, "dev", GetVersion())
	assert.Equal(t, "dev", GetFullVersion())
}

func TestGetFullVersionWithBuildInfo(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	defer func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	}()

	Version = "1.2.0"
	GitCommit = "abc1234"
	BuildDate = "2026-08-27"

	assert.Equal(t, "1.2.0", GetVersion())
	assert.Equal(t, "1.2.0 (abc1234, 2026-08-27)", GetFullVersion())
}
