package client

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/MKhiriev/go-sealed-drive/internal/app"
)

// terminalPasswordReader reads without echo when stdin is a terminal and
// falls back to one line of input otherwise, so passwords can be piped.
type terminalPasswordReader struct {
	in     *bufio.Reader
	prompt io.Writer
}

func newTerminalPasswordReader(in io.Reader, prompt io.Writer) *terminalPasswordReader {
	return &terminalPasswordReader{in: bufio.NewReader(in), prompt: prompt}
}

func (t *terminalPasswordReader) ReadPassword(prompt string) (string, error) {
	fmt.Fprint(t.prompt, prompt)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		password, err := term.ReadPassword(fd)
		fmt.Fprintln(t.prompt)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(password), nil
	}

	line, err := t.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readNewPassword asks twice and requires both entries to match. An empty
// password is allowed when allowEmpty is set.
func (a *App) readNewPassword(what string, allowEmpty bool) (string, error) {
	first, err := a.passwords.ReadPassword(fmt.Sprintf("New %s password: ", what))
	if err != nil {
		return "", err
	}
	if first == "" && allowEmpty {
		return "", nil
	}

	second, err := a.passwords.ReadPassword(fmt.Sprintf("Confirm %s password: ", what))
	if err != nil {
		return "", err
	}
	if first != second {
		return "", app.ErrPasswordMismatch
	}
	return first, nil
}
