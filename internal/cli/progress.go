package cli

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

// startSpinner shows a spinner on w while commits are read. It is a
// no-op for non-terminal output, --plain and --debug. Call the returned func
// to stop it.
func startSpinner(w io.Writer, suffix string) func() {
	f, ok := w.(*os.File)
	if !ok || plainFlag || debugFlag || !term.IsTerminal(int(f.Fd())) {
		return func() {}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(f))
	s.Suffix = " " + suffix
	s.Start()
	return s.Stop
}
