// Package filter runs the shell command assembled from a pipe-terminated
// template and exposes its standard output as a stream.
package filter

import (
	stderrors "errors"
	"io"
	"os"
	"os/exec"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/expando/pkg/errors"
	"github.com/arthur-debert/expando/pkg/logging"
)

// shell interprets assembled command lines.
const shell = "/bin/sh"

// Filter is a running command whose standard output is being captured.
type Filter struct {
	cmd    *exec.Cmd
	out    io.ReadCloser
	logger zerolog.Logger
}

// Open starts commandLine through the shell and returns a handle for
// reading its output. The child's stdin is discarded; its standard
// error goes to the caller's.
func Open(commandLine string) (*Filter, error) {
	f := &Filter{
		cmd:    exec.Command(shell, "-c", commandLine),
		logger: logging.GetLogger("filter"),
	}
	f.cmd.Stderr = os.Stderr

	out, err := f.cmd.StdoutPipe()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFilterSpawn, "cannot open output pipe")
	}
	f.out = out

	if err := f.cmd.Start(); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFilterSpawn, "cannot start %q", commandLine)
	}

	f.logger.Debug().
		Str("command", commandLine).
		Int("pid", f.cmd.Process.Pid).
		Msg("Filter started")

	return f, nil
}

// Output returns the stream carrying the command's standard output.
// It must be drained before calling Wait.
func (f *Filter) Output() io.Reader {
	return f.out
}

// ReadAll drains the output stream to end-of-stream.
func (f *Filter) ReadAll() ([]byte, error) {
	data, err := io.ReadAll(f.out)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFilterRead, "cannot read filter output")
	}
	return data, nil
}

// Wait reaps the command and returns its exit status. A command killed
// by a signal reports -1.
func (f *Filter) Wait() int {
	err := f.cmd.Wait()
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}

	f.logger.Debug().Err(err).Msg("Filter wait failed")
	return -1
}
