package client

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-sealed-drive/internal/app"
	"github.com/MKhiriev/go-sealed-drive/internal/store"
)

func (a *App) keygenCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Create a new identity keypair",
		Long: `keygen creates the identity that owns the drive and stores its backup
in the configured key store. Losing the identity means losing the drive.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ks, err := a.keyStoreFor()
			if err != nil {
				return err
			}
			if _, err = ks.Load(); err == nil && !force {
				return app.ErrIdentityExists
			} else if err != nil && !errors.Is(err, store.ErrKeyBackupNotFound) {
				return err
			}

			pair, err := a.keys.GenerateKeyPair()
			if err != nil {
				return err
			}

			password, err := a.readNewPassword("identity", true)
			if err != nil {
				return err
			}
			if password == "" {
				a.warn("the identity is stored without a password")
			}

			doc, err := a.keys.ExportBackup(pair, password)
			if err != nil {
				return err
			}
			if err = ks.Save(doc); err != nil {
				return err
			}

			a.success("identity created: %s", hex.EncodeToString(pair.PublicKey))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing identity")
	return cmd
}

func (a *App) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the identity public key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pair, err := a.identity()
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, hex.EncodeToString(pair.PublicKey))
			return nil
		},
	}
}

func (a *App) backupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or import the identity backup",
	}
	cmd.AddCommand(a.backupExportCommand(), a.backupImportCommand())
	return cmd
}

func (a *App) backupExportCommand() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the identity backup to a file or stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pair, err := a.identity()
			if err != nil {
				return err
			}

			password, err := a.readNewPassword("backup", true)
			if err != nil {
				return err
			}

			doc, err := a.keys.ExportBackup(pair, password)
			if err != nil {
				return err
			}

			if out == "" || out == "-" {
				_, err = fmt.Fprintln(a.out, string(doc))
				return err
			}
			if err = os.WriteFile(out, doc, 0o600); err != nil {
				return fmt.Errorf("write backup: %w", err)
			}
			a.success("backup written to %s", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "backup file path, stdout when empty")
	return cmd
}

func (a *App) backupImportCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Restore the identity from a backup document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read backup: %w", err)
			}

			pair, err := a.decodeBackup(doc)
			if err != nil {
				return err
			}

			ks, err := a.keyStoreFor()
			if err != nil {
				return err
			}
			if _, err = ks.Load(); err == nil && !force {
				return app.ErrIdentityExists
			}
			if err = ks.Save(doc); err != nil {
				return err
			}

			a.success("identity imported: %s", hex.EncodeToString(pair.PublicKey))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "replace an existing identity")
	return cmd
}
