// Package ui writes user-facing output: buildpack-style step lines on
// stdout and prefixed warnings and errors on stderr.
package ui

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/mattn/go-isatty"
)

var (
	out    io.Writer = os.Stdout
	errOut io.Writer = os.Stderr
)

// SetOutput overrides the stdout and stderr writers (for testing). A nil
// writer restores the default.
func SetOutput(stdout, stderr io.Writer) {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	out, errOut = stdout, stderr
}

// --- Color detection ---

var stdoutColor = detectColor(os.Stdout)
var stderrColor = detectColor(os.Stderr)

func detectColor(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetColorEnabled overrides color detection (for testing).
func SetColorEnabled(enabled bool) {
	stdoutColor = enabled
	stderrColor = enabled
}

func ansi(enabled bool, code, s string) string {
	if !enabled {
		return s
	}
	return "\033[" + code + "m" + s + "\033[0m"
}

// Bold returns s in bold when stdout supports color.
func Bold(s string) string { return ansi(stdoutColor, "1", s) }

// Dim returns s dimmed when stdout supports color.
func Dim(s string) string { return ansi(stdoutColor, "2", s) }

// Green returns s in green when stdout supports color.
func Green(s string) string { return ansi(stdoutColor, "32", s) }

// --- Buildpack output (stdout) ---

// Step prints a top-level progress line: "-----> msg".
func Step(msg string) {
	fmt.Fprintf(out, "%s %s\n", Bold("----->"), msg)
}

// Stepf is Step with formatting.
func Stepf(format string, args ...any) {
	Step(fmt.Sprintf(format, args...))
}

// Detail prints an indented line under the current step.
func Detail(msg string) {
	fmt.Fprintf(out, "       %s\n", msg)
}

// Println writes a plain line to stdout.
func Println(msg string) {
	fmt.Fprintln(out, msg)
}

// Write copies raw bytes to stdout.
func Write(p []byte) {
	out.Write(p)
}

// Table returns a tab-aligned writer on stdout. Call Flush when done.
func Table() *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
}

// --- Warn / Error (stderr, colored prefix) ---

// Warn prints a user-facing warning to stderr.
func Warn(msg string) {
	fmt.Fprintf(errOut, "%s %s\n", ansi(stderrColor, "33", "Warning:"), msg)
}

// Warnf prints a formatted user-facing warning to stderr.
func Warnf(format string, args ...any) {
	Warn(fmt.Sprintf(format, args...))
}

// Error prints a user-facing error to stderr.
func Error(msg string) {
	fmt.Fprintf(errOut, "%s %s\n", ansi(stderrColor, "31", "Error:"), msg)
}

// Errorf prints a formatted user-facing error to stderr.
func Errorf(format string, args ...any) {
	Error(fmt.Sprintf(format, args...))
}
