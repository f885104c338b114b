package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	errorLabel  = color.New(color.FgRed, color.Bold).SprintFunc()
	errorMsg    = color.New(color.FgRed).SprintFunc()
	fixLabel    = color.New(color.FgGreen, color.Bold).SprintFunc()
	usageLabel  = color.New(color.FgCyan, color.Bold).SprintFunc()
	bullet      = color.New(color.FgGreen).SprintFunc()
	categoryFmt = color.New(color.FgYellow).SprintFunc()
)

// Format renders err for the terminal. Colors are applied only when
// useColors is set; fatih/color additionally disables them for non-TTY
// output and NO_COLOR.
func Format(err *CLIError, useColors bool) string {
	if err == nil {
		return ""
	}

	paint := func(f func(a ...any) string, s string) string {
		if useColors {
			return f(s)
		}
		return s
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s]: %s\n",
		paint(errorLabel, "Error"),
		paint(categoryFmt, err.Category.String()),
		paint(errorMsg, err.Message))

	if err.Usage != "" {
		fmt.Fprintf(&sb, "\n%s%s\n", paint(usageLabel, "Usage: "), err.Usage)
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", paint(fixLabel, "To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", paint(bullet, "•"), step)
		}
	}
	return sb.String()
}

// Fprint writes the formatted error to w.
func Fprint(w io.Writer, err *CLIError, useColors bool) {
	if err == nil {
		return
	}
	fmt.Fprint(w, Format(err, useColors))
}
