// Package daemon detaches the alarm into a background process and controls
// it through a PID file.
package daemon

import (
	"os"
	"syscall"

	godaemon "github.com/sevlyar/go-daemon"

	apperrors "crypto-alarm/internal/errors"
)

// PIDFile is the well-known path of the daemon PID file. Its fixed location
// is what enforces the single-instance model: the daemon context takes an
// exclusive lock on it, so a second start fails instead of clobbering.
const PIDFile = "/tmp/crypto-alarm.pid"

// Controller detaches the current process into a daemon.
type Controller struct {
	ctx *godaemon.Context
}

// New creates a controller around the given PID file path.
func New(pidFile string) *Controller {
	return &Controller{
		ctx: &godaemon.Context{
			PidFileName: pidFile,
			PidFilePerm: 0644,
			Umask:       027,
		},
	}
}

// Detach re-executes the process in the background. It returns child=true
// in the detached child, which must call Release when it exits; the parent
// gets child=false and should simply return.
func (c *Controller) Detach() (child bool, err error) {
	proc, err := c.ctx.Reborn()
	if err != nil {
		return false, apperrors.Wrap(err, "daemonizing")
	}
	return proc == nil, nil
}

// Release removes the PID file. Only meaningful in the detached child.
func (c *Controller) Release() error {
	return c.ctx.Release()
}

// Kill reads the PID file and delivers SIGTERM to the recorded process.
// A missing PID file or a dead process is reported to the caller; nothing
// else is touched.
func Kill(pidFile string) error {
	ctx := &godaemon.Context{PidFileName: pidFile}
	proc, err := ctx.Search()
	if err != nil {
		if os.IsNotExist(err) {
			return apperrors.Wrapf(apperrors.ErrNotRunning, "no PID file at %s", pidFile)
		}
		return apperrors.Wrap(err, "reading PID file")
	}

	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return apperrors.Wrapf(apperrors.ErrNotRunning, "signaling pid %d", proc.Pid)
	}
	return nil
}
