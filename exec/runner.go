// Package exec implements epidoc.Engine on top of command-line XSLT
// processors: libxslt's xsltproc and Saxon HE.
package exec

import (
	"bytes"
	"context"
	"fmt"
	"os"
	osexec "os/exec"

	"github.com/fwojciec/epidoc"
)

// Runner abstracts command execution to enable testing without real subprocesses.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements Runner using os/exec.
type ExecRunner struct{}

// Run executes name in dir and returns its captured output. A non-zero exit
// status is returned as *os/exec.ExitError together with the output.
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (string, string, error) {
	cmd := osexec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// exitCoder is satisfied by *os/exec.ExitError.
type exitCoder interface {
	ExitCode() int
}

// writeTempXML creates a temporary file holding the serialized document.
// Returns the file path and a cleanup function to remove the file.
func writeTempXML(doc epidoc.Document) (path string, cleanup func(), err error) {
	tmpFile, err := os.CreateTemp("", "epidoc-*.xml")
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}

	path = tmpFile.Name()
	cleanup = func() { _ = os.Remove(path) }

	if _, err := doc.WriteTo(tmpFile); err != nil {
		_ = tmpFile.Close()
		cleanup()
		return "", nil, fmt.Errorf("writing temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("closing temp file: %w", err)
	}

	return path, cleanup, nil
}
