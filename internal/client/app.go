package client

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/fatih/color"

	"github.com/MKhiriev/go-sealed-drive/internal/app"
	"github.com/MKhiriev/go-sealed-drive/internal/config"
	"github.com/MKhiriev/go-sealed-drive/internal/crypto"
	"github.com/MKhiriev/go-sealed-drive/internal/logger"
	"github.com/MKhiriev/go-sealed-drive/internal/service"
	"github.com/MKhiriev/go-sealed-drive/internal/store"
	"github.com/MKhiriev/go-sealed-drive/models"
)

type App struct {
	build  models.AppBuildInfo
	cfg    *config.ClientConfig
	logger *logger.Logger

	in        io.Reader
	out       io.Writer
	errOut    io.Writer
	passwords PasswordReader
	copyText  func(string) error

	keys     crypto.KeyManager
	keyStore store.KeyStore
	blobs    store.BlobStore
	closers  []func() error

	services *service.Services

	// started is set once command flags and args were accepted.
	started bool
}

// Option customizes an [App], mostly for tests.
type Option func(*App)

// WithConfig skips loading configuration from env, flags and file.
func WithConfig(cfg *config.ClientConfig) Option {
	return func(a *App) { a.cfg = cfg }
}

func WithLogger(log *logger.Logger) Option {
	return func(a *App) { a.logger = log }
}

func WithIO(in io.Reader, out, errOut io.Writer) Option {
	return func(a *App) { a.in, a.out, a.errOut = in, out, errOut }
}

func WithPasswordReader(r PasswordReader) Option {
	return func(a *App) { a.passwords = r }
}

// WithKeyStore replaces the configured keyring or file key store.
func WithKeyStore(ks store.KeyStore) Option {
	return func(a *App) { a.keyStore = ks }
}

// WithBlobStore replaces the configured blob backend. If blobs also
// implements [service.RemoteBlobs], share links are available.
func WithBlobStore(blobs store.BlobStore) Option {
	return func(a *App) { a.blobs = blobs }
}

func WithClipboard(copyText func(string) error) Option {
	return func(a *App) { a.copyText = copyText }
}

func NewApp(build models.AppBuildInfo, opts ...Option) *App {
	a := &App{
		build:    build,
		in:       os.Stdin,
		out:      os.Stdout,
		errOut:   os.Stderr,
		copyText: clipboard.WriteAll,
		keys:     crypto.NewKeyManager(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.passwords == nil {
		a.passwords = newTerminalPasswordReader(a.in, a.errOut)
	}
	return a
}

// Execute runs the command line args. Failures are reported on errOut
// with the user-facing message; the full error goes to the log.
func (a *App) Execute(ctx context.Context, args []string) error {
	defer a.close()
	a.started = false

	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	err := root.ExecuteContext(ctx)
	if err != nil {
		if a.logger != nil {
			a.logger.Err(err).Str("func", "*App.Execute").Msg("command failed")
		}
		fmt.Fprintf(a.errOut, "%s %s\n", color.RedString("✗"), a.userMessage(err))
	}
	return err
}

// userMessage shows usage errors from cobra verbatim; they are rejected
// before any command runs and carry no sentinel.
func (a *App) userMessage(err error) string {
	if !a.started {
		return err.Error()
	}
	return app.Message(err)
}

func (a *App) close() {
	if a.services != nil {
		a.services.Session.Lock()
		a.services = nil
	}
	for _, c := range a.closers {
		if err := c(); err != nil && a.logger != nil {
			a.logger.Err(err).Str("func", "*App.close").Send()
		}
	}
	a.closers = nil
}

var _ Client = (*App)(nil)
