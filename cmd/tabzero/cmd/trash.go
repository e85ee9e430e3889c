package cmd

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/tabzero/internal/model"
	"github.com/nikbrunner/tabzero/internal/store"
	"github.com/nikbrunner/tabzero/internal/tui"
)

func newTrashCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trash",
		Short: "Browse and restore deleted bookmarks and categories",
		Long: `Without a subcommand, trash opens the interactive trash panel.
Opening the trash removes items older than the retention period.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			app := tui.NewApp(tui.AppParams{Bookmarks: a.bookmarks, Trash: a.trash})
			p := tea.NewProgram(app, tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}

	var all bool
	restore := &cobra.Command{
		Use:   "restore [trash-id]",
		Short: "Restore a trashed item, or everything with --all",
		Args: func(cmd *cobra.Command, args []string) error {
			if all {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			if all {
				n := store.RestoreAll(a.bookmarks, a.trash)
				success(cmd.OutOrStdout(), "Restored %d item(s)", n)
				return nil
			}
			if !store.Restore(a.bookmarks, a.trash, args[0]) {
				return fmt.Errorf("trash item %q not found", args[0])
			}
			success(cmd.OutOrStdout(), "Restored")
			return nil
		},
	}
	restore.Flags().BoolVarP(&all, "all", "a", false, "restore every item")

	var (
		retention  int
		enabled    string
		bookmarks  string
		categories string
	)
	settings := &cobra.Command{
		Use:   "config",
		Short: "Show or change trash settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			var patch model.TrashSettingsPatch
			flags := cmd.Flags()
			if flags.Changed("retention") {
				if retention < 1 {
					return fmt.Errorf("--retention must be at least 1 day, got %d", retention)
				}
				patch.RetentionDays = model.Ptr(retention)
			}
			for _, f := range []struct {
				name  string
				value string
				dst   **bool
			}{
				{"enabled", enabled, &patch.Enabled},
				{"bookmarks", bookmarks, &patch.RecycleBookmarks},
				{"categories", categories, &patch.RecycleCategories},
			} {
				if !flags.Changed(f.name) {
					continue
				}
				v, err := parseOnOff(f.value)
				if err != nil {
					return fmt.Errorf("--%s: %w", f.name, err)
				}
				*f.dst = model.Ptr(v)
			}
			a.trash.UpdateSettings(patch)

			s := a.trash.Settings()
			tbl := newTable()
			tbl.AddRow(bold.Sprint("enabled"), s.Enabled)
			tbl.AddRow(bold.Sprint("retention"), fmt.Sprintf("%d days", s.RetentionDays))
			tbl.AddRow(bold.Sprint("bookmarks"), s.RecycleBookmarks)
			tbl.AddRow(bold.Sprint("categories"), s.RecycleCategories)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), tbl)
			return nil
		},
	}
	settings.Flags().IntVar(&retention, "retention", 0, "days to keep trashed items")
	settings.Flags().StringVar(&enabled, "enabled", "", "on or off")
	settings.Flags().StringVar(&bookmarks, "bookmarks", "", "recycle deleted bookmarks: on or off")
	settings.Flags().StringVar(&categories, "categories", "", "recycle deleted categories: on or off")

	cmd.AddCommand(
		&cobra.Command{
			Use:     "list",
			Aliases: []string{"ls"},
			Short:   "List trashed items grouped by day",
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return listTrash(cmd)
			},
		},
		restore,
		&cobra.Command{
			Use:   "purge <trash-id>",
			Short: "Delete a trashed item permanently",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a := appFrom(cmd)
				if _, ok := a.trash.Item(args[0]); !ok {
					return fmt.Errorf("trash item %q not found", args[0])
				}
				a.trash.RemoveFromTrash(args[0])
				success(cmd.OutOrStdout(), "Purged")
				return nil
			},
		},
		&cobra.Command{
			Use:   "empty",
			Short: "Delete every trashed item permanently",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				a := appFrom(cmd)
				n := len(a.trash.Items())
				a.trash.ClearTrash()
				success(cmd.OutOrStdout(), "Emptied trash (%d item(s))", n)
				return nil
			},
		},
		settings,
	)
	return cmd
}

func listTrash(cmd *cobra.Command) error {
	a := appFrom(cmd)
	w := cmd.OutOrStdout()

	if n := a.trash.CleanExpiredItems(); n > 0 {
		warning(w, "Removed %d expired item(s)", n)
	}
	items := a.trash.Items()
	if len(items) == 0 {
		_, _ = fmt.Fprintln(w, faint.Sprint("Trash is empty"))
		return nil
	}

	tbl := newTable("ID", "TITLE", "TYPE", "LEFT")
	for _, g := range store.GroupByDay(items, time.Now()) {
		tbl.AddRow(bold.Sprintf("%s (%d)", g.Label, len(g.Items)))
		for _, item := range g.Items {
			kind := string(item.Type)
			if item.Type == model.TrashCategory && len(item.RelatedBookmarks) > 0 {
				kind = fmt.Sprintf("category +%d", len(item.RelatedBookmarks))
			}
			tbl.AddRow(item.ID, item.Title(), kind, fmt.Sprintf("%dd", a.trash.RemainingDays(item)))
		}
	}
	_, _ = fmt.Fprintln(w, tbl)
	return nil
}

func parseOnOff(v string) (bool, error) {
	switch v {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("want on or off, got %q", v)
}
