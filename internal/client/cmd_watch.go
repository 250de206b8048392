package client

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-sealed-drive/internal/workers"
	"github.com/MKhiriev/go-sealed-drive/models"
)

func (a *App) watchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow changes made to the drive by other devices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, err := a.drive(cmd.Context())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			onChange := func(m *models.Manifest) {
				a.success("%s  %d file(s), %d folder(s)",
					time.UnixMilli(m.UpdatedAt).Format(time.DateTime), len(m.Files), len(m.Folders))
			}
			sync := workers.NewManifestSyncWorker(svcs.Session, a.cfg.Workers, onChange,
				a.logger.GetChildLogger())

			w := workers.NewWorkers(sync)
			w.Start(ctx)
			<-ctx.Done()
			w.Stop()
			return nil
		},
	}
}
