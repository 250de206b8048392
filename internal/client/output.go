package client

import (
	"fmt"
	"strconv"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

var (
	okMark   = color.GreenString("✓")
	warnMark = color.YellowString("!")
	favMark  = color.YellowString("★")
	dirColor = color.New(color.FgBlue, color.Bold)
	idColor  = color.New(color.Faint)
)

func (a *App) success(format string, args ...any) {
	fmt.Fprintf(a.out, "%s %s\n", okMark, fmt.Sprintf(format, args...))
}

func (a *App) warn(format string, args ...any) {
	fmt.Fprintf(a.errOut, "%s %s\n", warnMark, fmt.Sprintf(format, args...))
}

// startSpinner shows progress on errOut. The spinner stays silent when
// errOut is not a terminal.
func (a *App) startSpinner(message string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(a.errOut))
	s.Suffix = " " + message
	_ = s.Color("cyan")
	s.Start()
	return s
}

// humanSize renders n bytes with a binary unit.
func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return strconv.FormatInt(n, 10) + " B"
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
