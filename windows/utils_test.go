package windows

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanFilename(t *testing.T) {
	assert.Equal(t, "my_table-1", cleanFilename("my table-1"))
	assert.Equal(t, "pingscsv", cleanFilename("pings.csv"))
	assert.Equal(t, "export", cleanFilename("///"))
}

func TestCreateTimeoutContext(t *testing.T) {
	ctx, cancel := createTimeoutContext(0)
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(defaultAPITimeout), deadline, 5*time.Second)

	short, cancelShort := createTimeoutContext(time.Second)
	defer cancelShort()
	deadline, _ = short.Deadline()
	assert.WithinDuration(t, time.Now().Add(time.Second), deadline, 500*time.Millisecond)
}
