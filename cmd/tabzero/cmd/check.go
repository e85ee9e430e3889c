package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/tabzero/internal/culler"
	"github.com/nikbrunner/tabzero/internal/model"
	"github.com/nikbrunner/tabzero/internal/search"
	"github.com/nikbrunner/tabzero/internal/store"
)

func newCheckCmd() *cobra.Command {
	var (
		concurrency int
		timeout     time.Duration
		exclude     []string
		prune       bool
		all         bool
	)
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Find bookmarks and quick links whose pages are gone",
		Long: `Check requests every bookmark and quick link URL and reports those
answering 404 or 410. With --prune, dead bookmarks go to the trash and
dead quick links are removed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			w := cmd.OutOrStdout()

			items := search.Collect(a.bookmarks.Bookmarks(), a.quickLinks.QuickLinks())
			checker := culler.New(culler.Params{
				Concurrency:    concurrency,
				Timeout:        timeout,
				ExcludeDomains: exclude,
				Logger:         a.log,
			})
			results := checker.Check(cmd.Context(), items)

			tbl := newTable("STATUS", "KIND", "ID", "TITLE", "URL", "DETAIL")
			shown := 0
			for _, r := range results {
				if r.Status == culler.Healthy || (r.Status == culler.Unreachable && !all) {
					continue
				}
				detail := r.Reason
				if r.StatusCode != 0 && detail == "" {
					detail = fmt.Sprint(r.StatusCode)
				}
				tbl.AddRow(r.Status, r.Item.Kind, r.Item.ID, r.Item.Title, r.Item.URL, detail)
				shown++
			}
			if shown == 0 {
				success(w, "All %d link(s) look fine", len(items))
			} else {
				_, _ = fmt.Fprintln(w, tbl)
			}

			if !prune {
				return nil
			}
			dead := culler.DeadItems(results)
			for _, item := range dead {
				switch item.Kind {
				case search.KindBookmark:
					store.DeleteWithTrash(a.bookmarks, a.trash, store.Target{Kind: model.TrashBookmark, ID: item.ID})
				case search.KindQuickLink:
					a.quickLinks.DeleteQuickLink(item.ID)
				}
			}
			if len(dead) > 0 {
				warning(w, "Pruned %d dead link(s)", len(dead))
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.IntVarP(&concurrency, "concurrency", "j", culler.DefaultConcurrency, "parallel requests")
	flags.DurationVar(&timeout, "timeout", culler.DefaultTimeout, "per-link timeout")
	flags.StringSliceVar(&exclude, "exclude", nil, "domains whose 404s may be private pages")
	flags.BoolVar(&prune, "prune", false, "trash dead bookmarks and remove dead quick links")
	flags.BoolVarP(&all, "all", "a", false, "also list unreachable links")
	return cmd
}
