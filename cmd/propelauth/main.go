package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/propelauth/cli/internal/messages"
	"github.com/propelauth/cli/internal/ui"
)

var executeFunc = execute

// Version, Commit, and BuildDate are overridden at build time.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func main() {
	runMain(os.Args, os.Stdout, os.Stderr, os.Exit)
}

// SilentExitError reports an exit code without emitting error output.
type SilentExitError struct {
	Code int
}

func (e SilentExitError) Error() string {
	return fmt.Sprintf("exit %d", e.Code)
}

// execute runs the CLI command with the provided args and output writers.
func execute(args []string, stdout io.Writer, stderr io.Writer) error {
	cmd := newRootCmd()
	cmd.Version = versionString()
	cmd.SetVersionTemplate(messages.VersionTemplate)
	if len(args) > 1 {
		cmd.SetArgs(args[1:])
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.Execute()
}

// runMain executes the CLI and maps errors to exit codes. A user-driven
// cancel is a clean exit, not a failure.
func runMain(args []string, stdout io.Writer, stderr io.Writer, exit func(int)) {
	err := executeFunc(args, stdout, stderr)
	if err == nil {
		return
	}
	if ui.IsCancelled(err) {
		_, _ = fmt.Fprintln(stderr, messages.Cancelled)
		exit(0)
		return
	}
	var silent *SilentExitError
	if errors.As(err, &silent) {
		exit(silent.Code)
		return
	}
	_, _ = fmt.Fprintln(stderr, err)
	exit(1)
}

// versionString formats Version with optional commit and build date metadata.
func versionString() string {
	if Commit == "" || Commit == "unknown" {
		return Version
	}
	version := fmt.Sprintf(messages.VersionCommitFmt, Version, Commit)
	if BuildDate != "" && BuildDate != "unknown" {
		version = fmt.Sprintf(messages.VersionBuildFmt, version, BuildDate)
	}
	return version
}
