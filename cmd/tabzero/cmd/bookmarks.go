package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/tabzero/internal/drag"
	"github.com/nikbrunner/tabzero/internal/model"
	"github.com/nikbrunner/tabzero/internal/store"
)

func newListCmd() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List bookmarks in the active category",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			bookmarks := a.bookmarks.VisibleBookmarks()
			if category != "" {
				id, err := resolveCategory(a.bookmarks, category)
				if err != nil {
					return err
				}
				bookmarks = a.bookmarks.BookmarksInCategory(id)
			}
			printBookmarks(cmd.OutOrStdout(), bookmarks, a.bookmarks.Categories())
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "category id or name (default: active category)")
	return cmd
}

func newAddCmd() *cobra.Command {
	var title, category, color string
	cmd := &cobra.Command{
		Use:   "add <url>",
		Short: "Add a bookmark",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)

			categoryID := a.bookmarks.ActiveCategory()
			if category != "" {
				id, err := resolveCategory(a.bookmarks, category)
				if err != nil {
					return err
				}
				categoryID = id
			}
			if categoryID == model.AllCategoryID {
				cats := a.bookmarks.ManageableCategories()
				if len(cats) == 0 {
					return fmt.Errorf("no category to add to: create one with 'tabzero categories add'")
				}
				categoryID = cats[0].ID
			}

			url := model.EnsureProtocol(args[0])
			if title == "" {
				title = model.Domain(url)
			}
			bm := model.NewBookmark(model.NewBookmarkParams{
				Title:      title,
				URL:        url,
				Color:      color,
				CategoryID: categoryID,
			})
			a.bookmarks.AddBookmark(bm)
			success(cmd.OutOrStdout(), "Added %s (%s)", bm.Title, bm.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "title (default: the domain)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category id or name (default: active category)")
	cmd.Flags().StringVar(&color, "color", "", "tile color (default: random palette color)")
	return cmd
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <bookmark-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a bookmark, moving it to the trash when enabled",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			res := store.DeleteWithTrash(a.bookmarks, a.trash, store.Target{Kind: model.TrashBookmark, ID: args[0]})
			return reportDelete(cmd, res, "bookmark", args[0])
		},
	}
}

func reportDelete(cmd *cobra.Command, res store.DeleteResult, kind, id string) error {
	if !res.Found {
		return fmt.Errorf("%s %q not found", kind, id)
	}
	if res.Trashed {
		success(cmd.OutOrStdout(), "Moved %s to trash (%s)", kind, res.TrashID)
		return nil
	}
	warning(cmd.OutOrStdout(), "Deleted %s permanently", kind)
	return nil
}

func newVisitCmd() *cobra.Command {
	var noOpen bool
	cmd := &cobra.Command{
		Use:   "visit <bookmark-id>",
		Short: "Open a bookmark and count the visit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			bm, ok := a.bookmarks.BookmarkByID(args[0])
			if !ok {
				return fmt.Errorf("bookmark %q not found", args[0])
			}
			a.bookmarks.IncrementVisitCount(bm.ID)
			if noOpen {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), bm.URL)
				return nil
			}
			return openURL(bm.URL)
		},
	}
	cmd.Flags().BoolVar(&noOpen, "no-open", false, "print the URL instead of opening it")
	return cmd
}

func newRecentCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently visited bookmarks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			printBookmarks(cmd.OutOrStdout(), a.bookmarks.RecentlyVisited(limit), a.bookmarks.Categories())
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 8, "number of bookmarks")
	return cmd
}

func newMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <from> <to>",
		Short: "Move a bookmark within the active category's list",
		Long: `Move drags the bookmark at position <from> onto position <to>.
Positions are 1-based and count only the bookmarks of the active
category; bookmarks hidden by the filter keep their places.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			n := len(a.bookmarks.VisibleBookmarks())
			from, err := position(args[0], n)
			if err != nil {
				return err
			}
			to, err := position(args[1], n)
			if err != nil {
				return err
			}

			board := drag.NewBookmarkBoard(a.bookmarks)
			if _, ok := board.StartBookmarkDrag(from); !ok {
				return fmt.Errorf("cannot drag position %s", args[0])
			}
			board.OverBookmark(to)
			out := board.DropOnBookmark(to)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newAssignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assign <bookmark-id> <category>",
		Short: "Move a bookmark into another category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			bm, ok := a.bookmarks.BookmarkByID(args[0])
			if !ok {
				return fmt.Errorf("bookmark %q not found", args[0])
			}
			categoryID, err := resolveCategory(a.bookmarks, args[1])
			if err != nil {
				return err
			}

			index := -1
			for i, c := range a.bookmarks.ManageableCategories() {
				if c.ID == categoryID {
					index = i
				}
			}
			if index < 0 {
				return fmt.Errorf("cannot assign to %q", args[1])
			}

			board := drag.NewBookmarkBoard(a.bookmarks)
			out := board.DropOnCategory(index, drag.BookmarkPayload(bm).Encode())
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
