package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/tabzero/internal/drag"
	"github.com/nikbrunner/tabzero/internal/model"
)

func newQuickLinksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "quicklinks",
		Aliases: []string{"ql"},
		Short:   "Manage the quick link strip",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printQuickLinks(cmd.OutOrStdout(), appFrom(cmd).quickLinks.QuickLinks())
			return nil
		},
	}

	var title string
	add := &cobra.Command{
		Use:   "add <url>",
		Short: "Add a link to the strip unless its URL is already there",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strip := drag.NewQuickLinkStrip(appFrom(cmd).quickLinks)
			p := drag.ExternalPayload(title, model.EnsureProtocol(args[0]))
			out, link := strip.DropOnContainer(p.Encode())
			return reportStripDrop(cmd, out, link)
		},
	}
	add.Flags().StringVarP(&title, "title", "t", "", "title (default: the domain)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List quick links",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				printQuickLinks(cmd.OutOrStdout(), appFrom(cmd).quickLinks.QuickLinks())
				return nil
			},
		},
		add,
		&cobra.Command{
			Use:   "pin <bookmark-id>",
			Short: "Pin a bookmark to the strip",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a := appFrom(cmd)
				bm, ok := a.bookmarks.BookmarkByID(args[0])
				if !ok {
					return fmt.Errorf("bookmark %q not found", args[0])
				}
				strip := drag.NewQuickLinkStrip(a.quickLinks)
				out, link := strip.DropOnContainer(drag.BookmarkPayload(bm).Encode())
				return reportStripDrop(cmd, out, link)
			},
		},
		&cobra.Command{
			Use:     "delete <link-id>",
			Aliases: []string{"rm"},
			Short:   "Remove a quick link",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a := appFrom(cmd)
				if _, ok := a.quickLinks.QuickLinkByID(args[0]); !ok {
					return fmt.Errorf("quick link %q not found", args[0])
				}
				a.quickLinks.DeleteQuickLink(args[0])
				success(cmd.OutOrStdout(), "Removed quick link")
				return nil
			},
		},
		&cobra.Command{
			Use:   "move <from> <to>",
			Short: "Move a quick link to another position",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				a := appFrom(cmd)
				n := len(a.quickLinks.QuickLinks())
				from, err := position(args[0], n)
				if err != nil {
					return err
				}
				to, err := position(args[1], n)
				if err != nil {
					return err
				}

				strip := drag.NewQuickLinkStrip(a.quickLinks)
				if !strip.StartDrag(from) {
					return fmt.Errorf("cannot drag position %s", args[0])
				}
				strip.Over(to)
				out, _ := strip.DropOnLink(to, "")
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			},
		},
	)
	return cmd
}

func reportStripDrop(cmd *cobra.Command, out drag.Outcome, link model.QuickLink) error {
	switch out {
	case drag.Added:
		success(cmd.OutOrStdout(), "Added quick link %s (%s)", link.Title, link.ID)
	case drag.Duplicate:
		warning(cmd.OutOrStdout(), "Already in quick links")
	default:
		return fmt.Errorf("nothing to add")
	}
	return nil
}
