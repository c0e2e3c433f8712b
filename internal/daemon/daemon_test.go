package daemon

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "crypto-alarm/internal/errors"
)

func TestKillWithoutPIDFile(t *testing.T) {
	err := Kill(filepath.Join(t.TempDir(), "missing.pid"))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotRunning),
		"a missing PID file means no daemon to kill")
}
