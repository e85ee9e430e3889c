package cmd

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/tabzero/internal/picker"
	"github.com/nikbrunner/tabzero/internal/search"
)

func newSearchCmd() *cobra.Command {
	var (
		list   bool
		web    bool
		engine string
		noOpen bool
	)
	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Fuzzy-find a bookmark or quick link, or search the web",
		Long: `Search matches the query against the titles and URLs of all
bookmarks and quick links. A single match opens directly, several
open a picker, and no match falls through to a web search.

With --web the query goes straight to a search engine and is
remembered in the search history.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			query := strings.Join(args, " ")
			open := func(url string) error {
				if noOpen {
					_, err := fmt.Fprintln(cmd.OutOrStdout(), url)
					return err
				}
				return openURL(url)
			}

			webSearch := func() error {
				settings := a.settings.Settings()
				id := engine
				if id == "" {
					id = settings.DefaultSearchEngine
				}
				a.history.Add(query, id)
				return open(search.EngineURL(id, settings.CustomSearchEngines, query))
			}
			if web || engine != "" {
				return webSearch()
			}

			items := search.Collect(a.bookmarks.Bookmarks(), a.quickLinks.QuickLinks())
			results := search.Items(items, query)

			if list {
				tbl := newTable("KIND", "ID", "TITLE", "URL")
				for _, r := range results {
					tbl.AddRow(r.Item.Kind, r.Item.ID, r.Item.Title, r.Item.URL)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), tbl)
				return nil
			}

			var selected search.Item
			switch len(results) {
			case 0:
				return webSearch()
			case 1:
				selected = results[0].Item
			default:
				final, err := tea.NewProgram(picker.New(results, query)).Run()
				if err != nil {
					return err
				}
				item, ok := final.(picker.Picker).Selected()
				if !ok {
					return nil
				}
				selected = item
			}

			if selected.Kind == search.KindBookmark {
				a.bookmarks.IncrementVisitCount(selected.ID)
			}
			return open(selected.URL)
		},
	}
	flags := cmd.Flags()
	flags.BoolVarP(&list, "list", "l", false, "print matches instead of opening one")
	flags.BoolVarP(&web, "web", "w", false, "search the web with the default engine")
	flags.StringVarP(&engine, "engine", "e", "", "search the web with this engine id")
	flags.BoolVar(&noOpen, "no-open", false, "print the URL instead of opening it")
	return cmd
}

func newHistoryCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent web searches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			recent := a.history.Recent(limit)
			if len(recent) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), faint.Sprint("No search history"))
				return nil
			}
			tbl := newTable("ID", "QUERY", "ENGINE", "WHEN")
			for _, h := range recent {
				tbl.AddRow(h.ID, h.Query, h.EngineID, h.Timestamp.Time().Format("2006-01-02 15:04"))
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), tbl)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of entries")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "clear",
			Short: "Forget every search",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				appFrom(cmd).history.Clear()
				success(cmd.OutOrStdout(), "Cleared search history")
				return nil
			},
		},
		&cobra.Command{
			Use:   "rm <id>",
			Short: "Forget one search",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				appFrom(cmd).history.Remove(args[0])
				success(cmd.OutOrStdout(), "Removed")
				return nil
			},
		},
	)
	return cmd
}
