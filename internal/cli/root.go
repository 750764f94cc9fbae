package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/libris/internal/ui/tui"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	baseURL    string
	debug      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "libris",
		Short:        "libris: terminal client for the library service",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer app.Close()

			return tui.Run(tui.Deps{
				Library:    app.lib,
				Config:     app.cfg,
				ConfigPath: app.cfgPath,
				CacheAt:    app.cacheAt,
				LogPath:    app.logPath,
				Logger:     app.log,
				Debug:      opts.debug,
			})
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "path to libris.yaml (default: search upward, then user config dir)")
	pf.StringVar(&opts.baseURL, "base-url", "", "override api.base_url")
	pf.BoolVar(&opts.debug, "debug", false, "enable verbose logging to libris.log")

	cmd.AddCommand(
		booksCmd(opts),
		usersCmd(opts),
		loansCmd(opts),
		loginCmd(opts),
		logoutCmd(opts),
		registerCmd(opts),
		whoamiCmd(opts),
		profileCmd(opts),
		statsCmd(opts),
		initCmd(),
		versionCmd(),
	)
	return cmd
}
