package sandbox

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"
)

// CrashReport restores the terminal and writes the panic value with its stack trace
func CrashReport(screen tcell.Screen, r any, w io.Writer) {
	if r == nil {
		return
	}

	// Restore terminal before printing so the trace is readable
	if screen != nil {
		screen.Fini()
	}

	fmt.Fprintf(w, "\n\x1b[31mCRASH DETECTED: %v\x1b[0m\n", r)
	fmt.Fprintf(w, "Stack Trace:\n%s\n", debug.Stack())
}

// exitOnCrash reports r and terminates the process
func exitOnCrash(screen tcell.Screen, r any) {
	CrashReport(screen, r, os.Stderr)
	os.Exit(1)
}

// goSafe runs fn in a goroutine; a panic restores the screen through s.crash
func (s *Sandbox) goSafe(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.crash(s.view.screen, r)
			}
		}()
		fn()
	}()
}
