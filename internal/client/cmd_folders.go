package client

import (
	"github.com/spf13/cobra"
)

func (a *App) mkdirCommand() *cobra.Command {
	var parent, color string
	cmd := &cobra.Command{
		Use:   "mkdir <name>",
		Short: "Create a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, err := a.drive(cmd.Context())
			if err != nil {
				return err
			}
			folder, err := svcs.Session.CreateFolder(cmd.Context(), args[0], optionalID(parent), optionalID(color))
			if err != nil {
				return err
			}
			a.success("created folder %s %s", folder.ID, folder.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&parent, "parent", "", "parent folder id, root when empty")
	cmd.Flags().StringVar(&color, "color", "", "folder color as #RRGGBB")
	return cmd
}

func (a *App) rmdirCommand() *cobra.Command {
	var contents bool
	cmd := &cobra.Command{
		Use:   "rmdir <folder-id>",
		Short: "Delete a folder",
		Long: `rmdir deletes a folder. Its files move to the root unless --contents is
given, in which case they are deleted too. Sub-folders move up one level.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, err := a.drive(cmd.Context())
			if err != nil {
				return err
			}
			if err = svcs.Transfer.DeleteFolder(cmd.Context(), args[0], contents); err != nil {
				return err
			}
			a.success("deleted folder %s", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&contents, "contents", false, "delete the files of the folder as well")
	return cmd
}

func (a *App) renamedirCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "renamedir <folder-id> <name>",
		Short: "Rename a folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, err := a.drive(cmd.Context())
			if err != nil {
				return err
			}
			if err = svcs.Session.RenameFolder(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			a.success("renamed folder %s to %s", args[0], args[1])
			return nil
		},
	}
}

func (a *App) colordirCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "colordir <folder-id> [color]",
		Short: "Set or clear the color of a folder",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svcs, err := a.drive(cmd.Context())
			if err != nil {
				return err
			}
			var color *string
			if len(args) == 2 {
				color = &args[1]
			}
			if err = svcs.Session.SetFolderColor(cmd.Context(), args[0], color); err != nil {
				return err
			}
			if color == nil {
				a.success("cleared color of %s", args[0])
			} else {
				a.success("set color of %s to %s", args[0], *color)
			}
			return nil
		},
	}
}
