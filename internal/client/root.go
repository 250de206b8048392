package client

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-sealed-drive/internal/config"
	"github.com/MKhiriev/go-sealed-drive/internal/logger"
)

func (a *App) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "drive",
		Short: "End-to-end encrypted file drive",
		Long: `drive keeps files encrypted on the device before they reach storage.
The storage only ever sees ciphertext blobs and an encrypted manifest;
the identity keypair never leaves this machine.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg == nil {
				cfg, err := config.GetClientConfig(cmd.Flags())
				if err != nil {
					return fmt.Errorf("error getting configs: %w", err)
				}
				a.cfg = cfg
			}
			if a.logger == nil {
				a.logger = logger.NewClientLogger("drive", "")
			}
			a.started = true
			a.logger.Debug().Str("command", cmd.CommandPath()).Msg("running command")
			return nil
		},
	}

	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		a.versionCommand(),
		a.keygenCommand(),
		a.whoamiCommand(),
		a.backupCommand(),
		a.initCommand(),
		a.lsCommand(),
		a.putCommand(),
		a.getCommand(),
		a.rmCommand(),
		a.renameCommand(),
		a.favCommand(),
		a.mvCommand(),
		a.cpCommand(),
		a.mkdirCommand(),
		a.rmdirCommand(),
		a.renamedirCommand(),
		a.colordirCommand(),
		a.shareCommand(),
		a.openShareCommand(),
		a.watchCommand(),
	)

	return root
}

func (a *App) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(a.out, a.build.String())
			return nil
		},
	}
}
