package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/libris/internal/buildinfo"
	"github.com/aalvaropc/libris/internal/infra/configfile"
)

func statsCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show catalogue and loan counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			app, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			app.lib.Restore(ctx)
			syncErr := app.lib.RefreshData(ctx)

			if err := printStats(cmd.OutOrStdout(), app.lib.Stats(), format); err != nil {
				return err
			}
			return syncErr
		},
	}

	addFormatFlag(cmd, &format)
	return cmd
}

func initCmd() *cobra.Command {
	var dir string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented libris.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			target := dir
			if target == "" {
				d, err := configfile.ConfigDir()
				if err != nil {
					return fmt.Errorf("user config dir: %w", err)
				}
				target = d
			}

			path, err := configfile.WriteTemplate(target, force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Target directory (default: user config dir)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing libris.yaml")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}
}
