package client

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-sealed-drive/internal/app"
	"github.com/MKhiriev/go-sealed-drive/internal/crypto"
	"github.com/MKhiriev/go-sealed-drive/models"
)

// optionalID maps an empty flag value to the root folder.
func optionalID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

func (a *App) initCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an empty drive for the identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svcs, masterKey, err := a.newServices(ctx)
			if err != nil {
				return err
			}
			defer crypto.Wipe(masterKey)

			exists, err := svcs.Session.Exists(ctx)
			if err != nil {
				return err
			}
			if exists && !force {
				return app.ErrAlreadyInitialized
			}

			if err = svcs.Session.Initialize(ctx, masterKey); err != nil {
				return err
			}
			a.success("drive initialized")
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing drive, losing its index")
	return cmd
}

func (a *App) lsCommand() *cobra.Command {
	var favorites bool
	cmd := &cobra.Command{
		Use:   "ls [folder-id]",
		Short: "List folders and files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, err := a.drive(cmd.Context())
			if err != nil {
				return err
			}
			session := svcs.Session

			if favorites {
				files, err := session.Favorites()
				if err != nil {
					return err
				}
				return a.printListing(nil, files)
			}

			var folderID *string
			if len(args) == 1 {
				folderID = &args[0]
				path, err := session.FolderPath(args[0])
				if err != nil {
					return err
				}
				names := make([]string, len(path))
				for i, f := range path {
					names[i] = f.Name
				}
				dirColor.Fprintln(a.out, "/"+strings.Join(names, "/"))
			}

			folders, err := session.ListFolders(folderID)
			if err != nil {
				return err
			}
			files, err := session.ListFiles(folderID)
			if err != nil {
				return err
			}
			return a.printListing(folders, files)
		},
	}
	cmd.Flags().BoolVar(&favorites, "favorites", false, "list favorite files only")
	return cmd
}

func (a *App) printListing(folders []models.Folder, files []models.FileEntry) error {
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, f := range folders {
		color := ""
		if f.Color != nil {
			color = *f.Color
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", idColor.Sprint(f.ID), dirColor.Sprint(f.Name+"/"), "", color)
	}
	for _, f := range files {
		mark := ""
		if f.IsFavorite {
			mark = favMark
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", idColor.Sprint(f.FileID), f.FileName, humanSize(f.Size), mark)
	}
	return tw.Flush()
}

// detectMimeType prefers the extension and falls back to sniffing.
func detectMimeType(name string, content []byte) string {
	if byExt := mime.TypeByExtension(filepath.Ext(name)); byExt != "" {
		mediaType, _, err := mime.ParseMediaType(byExt)
		if err == nil {
			return mediaType
		}
	}
	mediaType, _, _ := mime.ParseMediaType(http.DetectContentType(content))
	return mediaType
}

func (a *App) putCommand() *cobra.Command {
	var folder, name, mimeType string
	cmd := &cobra.Command{
		Use:   "put <path>",
		Short: "Encrypt and upload a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}
			if name == "" {
				name = filepath.Base(args[0])
			}
			if mimeType == "" {
				mimeType = detectMimeType(name, content)
			}

			svcs, err := a.drive(cmd.Context())
			if err != nil {
				return err
			}

			entry, err := svcs.Transfer.Upload(cmd.Context(), models.UploadRequest{
				FileName: name,
				MimeType: mimeType,
				Content:  content,
				FolderID: optionalID(folder),
			})
			if err != nil {
				return err
			}
			a.success("uploaded %s as %s (%s)", entry.FileName, entry.FileID, humanSize(entry.Size))
			return nil
		},
	}
	cmd.Flags().StringVar(&folder, "folder", "", "destination folder id, root when empty")
	cmd.Flags().StringVar(&name, "name", "", "file name in the drive, defaults to the base name")
	cmd.Flags().StringVar(&mimeType, "mime", "", "MIME type, detected when empty")
	return cmd
}

func (a *App) getCommand() *cobra.Command {
	var out string
	var force bool
	cmd := &cobra.Command{
		Use:   "get <file-id>",
		Short: "Download and decrypt a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, err := a.drive(cmd.Context())
			if err != nil {
				return err
			}

			entry, content, err := svcs.Transfer.Download(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer crypto.Wipe(content)

			if out == "-" {
				_, err = a.out.Write(content)
				return err
			}
			if out == "" {
				out = filepath.Base(entry.FileName)
			}
			if err = writeNewFile(out, content, force); err != nil {
				return err
			}
			a.success("saved %s", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path, the file name when empty, - for stdout")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func writeNewFile(path string, content []byte, force bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o600)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err = f.Write(content); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func (a *App) rmCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <file-id>...",
		Short: "Delete files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, err := a.drive(cmd.Context())
			if err != nil {
				return err
			}
			for _, id := range args {
				if err = svcs.Transfer.Delete(cmd.Context(), id); err != nil {
					return err
				}
				a.success("deleted %s", id)
			}
			return nil
		},
	}
}

func (a *App) renameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <file-id> <name>",
		Short: "Rename a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, err := a.drive(cmd.Context())
			if err != nil {
				return err
			}
			if err = svcs.Session.RenameFile(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			a.success("renamed %s to %s", args[0], args[1])
			return nil
		},
	}
}

func (a *App) favCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fav <file-id>",
		Short: "Toggle the favorite mark of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, err := a.drive(cmd.Context())
			if err != nil {
				return err
			}
			fav, err := svcs.Session.ToggleFavorite(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if fav {
				a.success("%s marked as favorite", args[0])
			} else {
				a.success("%s unmarked", args[0])
			}
			return nil
		},
	}
}

func (a *App) mvCommand() *cobra.Command {
	var to string
	cmd := &cobra.Command{
		Use:   "mv <file-id>...",
		Short: "Move files to a folder",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, err := a.drive(cmd.Context())
			if err != nil {
				return err
			}
			if err = svcs.Session.MoveFiles(cmd.Context(), args, optionalID(to)); err != nil {
				return err
			}
			a.success("moved %d file(s)", len(args))
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "destination folder id, root when empty")
	return cmd
}

func (a *App) cpCommand() *cobra.Command {
	var to string
	cmd := &cobra.Command{
		Use:   "cp <file-id>...",
		Short: "Copy files to a folder",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, err := a.drive(cmd.Context())
			if err != nil {
				return err
			}

			s := a.startSpinner(fmt.Sprintf("copying 0/%d", len(args)))
			var copied []models.FileEntry
			var copyErr error
			for p, err := range svcs.Session.CopyFilesToFolder(cmd.Context(), args, optionalID(to)) {
				if err != nil {
					copyErr = err
					break
				}
				copied = append(copied, p.Copied)
				s.Lock()
				s.Suffix = fmt.Sprintf(" copying %d/%d", p.Completed, p.Total)
				s.Unlock()
			}
			s.Stop()

			for _, c := range copied {
				a.success("copied as %s %s", c.FileID, c.FileName)
			}
			return copyErr
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "destination folder id, root when empty")
	return cmd
}
