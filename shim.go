package gatt

import (
	"io"
	"os"
	"os/exec"
)

// A shim provides mediated access to an L2CAP ATT channel.
type shim interface {
	io.ReadWriteCloser
	Wait() error
}

// cshim runs the L2CAP helper as an external executable and talks to
// it over its standard input and output.
type cshim struct {
	cmd *exec.Cmd
	io.Reader
	io.Writer
}

// newCShim starts the shim named file using the provided args.
func newCShim(file string, arg ...string) (shim, error) {
	c := new(cshim)
	var err error
	if file, err = exec.LookPath(file); err != nil {
		return nil, err
	}
	c.cmd = exec.Command(file, arg...)
	c.cmd.Stderr = os.Stderr
	if c.Writer, err = c.cmd.StdinPipe(); err != nil {
		return nil, err
	}
	if c.Reader, err = c.cmd.StdoutPipe(); err != nil {
		return nil, err
	}
	if err = c.cmd.Start(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *cshim) Wait() error { return c.cmd.Wait() }

// Close stops the helper. Killing an already exited helper is not an error.
func (c *cshim) Close() error {
	if err := c.cmd.Process.Kill(); err != nil && err != os.ErrProcessDone {
		return err
	}
	return nil
}
