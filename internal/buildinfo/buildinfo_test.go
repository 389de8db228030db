package buildinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelease(t *testing.T) {
	origVersion, origCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = origVersion, origCommit })

	Version, Commit = "", ""
	assert.Equal(t, "dev", Release())

	Commit = "abc"
	assert.Equal(t, "abc", Release())

	Commit = "0123456789abcdef"
	assert.Equal(t, "0123456", Release())

	Version = "v1.2.3"
	assert.Equal(t, "v1.2.3", Release())
}
