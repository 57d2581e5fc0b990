package cmd

import (
	"errors"
	"fmt"
	"io"
	osexec "os/exec"
	"strings"
)

// executor handles a submitted selection exactly once: print it to stdout,
// or spawn it detached when --exec / --exec-with is set. Spawn failures are
// surfaced and never retried.
type executor struct {
	exec     bool
	execWith string
	stdout   io.Writer
}

func newExecutor(exec bool, execWith string, stdout io.Writer) *executor {
	return &executor{exec: exec, execWith: execWith, stdout: stdout}
}

// spawns reports whether the executor starts a process rather than printing.
func (e *executor) spawns() bool {
	return e.exec || e.execWith != ""
}

// commandLine returns the full command string the executor acts on, with the
// configured prefix applied. Used for logging and tests.
func (e *executor) commandLine(selection string) string {
	switch {
	case e.exec:
		return "nohup " + selection
	case e.execWith != "":
		return e.execWith + " " + selection
	default:
		return selection
	}
}

// Run handles the selection. The selection is passed to the spawned process
// as a single trailing argument; the prefix is split on whitespace.
func (e *executor) Run(selection string) error {
	switch {
	case e.exec:
		return spawn("nohup", selection)
	case e.execWith != "":
		parts := strings.Fields(e.execWith)
		if len(parts) == 0 {
			return errors.New("empty exec-with command")
		}
		return spawn(parts[0], append(parts[1:], selection)...)
	default:
		_, err := fmt.Fprintln(e.stdout, selection)
		return err
	}
}

// spawn starts the process detached: stdio on the null device, released so it
// outlives the launcher.
func spawn(name string, args ...string) error {
	c := osexec.Command(name, args...)
	if err := c.Start(); err != nil {
		return fmt.Errorf("spawn %s: %w", name, err)
	}
	return c.Process.Release()
}
