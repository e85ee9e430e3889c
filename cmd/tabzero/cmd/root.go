// Package cmd is the tabzero command line.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/tabzero/internal/config"
	"github.com/nikbrunner/tabzero/internal/logger"
)

type rootOptions struct {
	configFile string
	dataDir    string
	storage    string
	logLevel   string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	var a *app

	root := &cobra.Command{
		Use:   "tabzero",
		Short: "Bookmarks, quick links and trash of the tabzero new-tab dashboard",
		Long: `tabzero manages the data behind the tabzero new-tab dashboard:
bookmarks grouped into categories, the quick-link strip, the trash,
search history and wallpaper settings.

Data lives under ~/.config/tabzero unless data_dir says otherwise.
Settings are read from .tabzero.yaml, .env and TABZERO_* variables.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip initialization for help commands
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			cfg, err := config.Load(config.Options{ConfigFile: opts.configFile})
			if err != nil {
				return err
			}
			opts.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			a, err = newApp(cfg, logger.New(cfg.LogLevel, cfg.LogPretty))
			if err != nil {
				return err
			}
			cmd.SetContext(withApp(cmd.Context(), a))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a == nil {
				return nil
			}
			return a.Close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default: .tabzero.yaml in . or $HOME)")
	flags.StringVar(&opts.dataDir, "data-dir", "", "data directory")
	flags.StringVar(&opts.storage, "storage", "", "storage backend: json, sqlite, diskv or memory")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		newListCmd(),
		newAddCmd(),
		newDeleteCmd(),
		newVisitCmd(),
		newRecentCmd(),
		newMoveCmd(),
		newAssignCmd(),
		newCategoriesCmd(),
		newQuickLinksCmd(),
		newTrashCmd(),
		newImportCmd(),
		newExportCmd(),
		newSyncCmd(),
		newSearchCmd(),
		newHistoryCmd(),
		newWallpaperCmd(),
		newCheckCmd(),
	)
	return root
}

// apply lets explicit flags win over the loaded config.
func (o *rootOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir = o.dataDir
	}
	if flags.Changed("storage") {
		cfg.Storage = o.storage
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
