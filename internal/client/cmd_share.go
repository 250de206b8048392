package client

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-sealed-drive/internal/app"
	"github.com/MKhiriev/go-sealed-drive/internal/crypto"
)

func (a *App) shareCommand() *cobra.Command {
	var copyLink bool
	cmd := &cobra.Command{
		Use:   "share <file-id>",
		Short: "Create a password-protected share link",
		Long: `share prints a link that lets anyone with the password download and
decrypt one file. The password is never part of the link.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, err := a.drive(cmd.Context())
			if err != nil {
				return err
			}
			if svcs.Share == nil {
				return app.ErrSharingUnavailable
			}

			password, err := a.readNewPassword("share", false)
			if err != nil {
				return err
			}

			link, err := svcs.Share.CreateShareLink(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, link)

			if copyLink {
				if err = a.copyText(link); err != nil {
					a.warn("could not copy the link: %v", err)
				} else {
					a.success("link copied to the clipboard")
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&copyLink, "copy", false, "copy the link to the clipboard")
	return cmd
}

func (a *App) openShareCommand() *cobra.Command {
	var out string
	var force bool
	cmd := &cobra.Command{
		Use:   "open-share <link>",
		Short: "Download and decrypt a shared file",
		Args:  cobra.ExactArgs(1),
		// Recipients have no identity, so only the share opener is wired.
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := a.passwords.ReadPassword("Share password: ")
			if err != nil {
				return err
			}

			share, err := a.shareOpener()
			if err != nil {
				return err
			}

			s := a.startSpinner("downloading")
			file, err := share.OpenShareLink(cmd.Context(), args[0], password)
			s.Stop()
			if err != nil {
				return err
			}
			defer crypto.Wipe(file.Content)

			if out == "-" {
				_, err = a.out.Write(file.Content)
				return err
			}
			if out == "" {
				out = filepath.Base(file.FileName)
			}
			if err = writeNewFile(out, file.Content, force); err != nil {
				return err
			}
			a.success("saved %s (%s)", out, humanSize(int64(len(file.Content))))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path, the shared file name when empty, - for stdout")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
