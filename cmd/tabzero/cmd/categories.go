package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/tabzero/internal/drag"
	"github.com/nikbrunner/tabzero/internal/model"
	"github.com/nikbrunner/tabzero/internal/store"
)

// resolveCategory accepts a category id or a case-insensitive name.
func resolveCategory(bs *store.BookmarkStore, ref string) (string, error) {
	if ref == model.AllCategoryID {
		return ref, nil
	}
	if c, ok := bs.CategoryByID(ref); ok {
		return c.ID, nil
	}
	for _, c := range bs.Categories() {
		if strings.EqualFold(c.Name, ref) {
			return c.ID, nil
		}
	}
	return "", fmt.Errorf("category %q not found", ref)
}

func newCategoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"cat"},
		Short:   "Manage bookmark categories",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listCategories(cmd)
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List categories",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return listCategories(cmd)
			},
		},
		&cobra.Command{
			Use:   "add <name>",
			Short: "Add a category",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a := appFrom(cmd)
				name := strings.TrimSpace(args[0])
				if strings.EqualFold(name, model.AllCategoryID) {
					return fmt.Errorf("%q is reserved", name)
				}
				c := model.NewCategory(model.NewCategoryParams{
					Name:  name,
					Order: len(a.bookmarks.Categories()),
				})
				a.bookmarks.AddCategory(c)
				success(cmd.OutOrStdout(), "Added category %s (%s)", c.Name, c.ID)
				return nil
			},
		},
		&cobra.Command{
			Use:   "rename <category> <name>",
			Short: "Rename a category",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				a := appFrom(cmd)
				id, err := resolveCategory(a.bookmarks, args[0])
				if err != nil {
					return err
				}
				a.bookmarks.UpdateCategory(id, model.CategoryPatch{Name: model.Ptr(args[1])})
				success(cmd.OutOrStdout(), "Renamed category to %s", args[1])
				return nil
			},
		},
		&cobra.Command{
			Use:     "delete <category>",
			Aliases: []string{"rm"},
			Short:   "Delete a category and its bookmarks, moving them to the trash when enabled",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a := appFrom(cmd)
				id, err := resolveCategory(a.bookmarks, args[0])
				if err != nil {
					return err
				}
				res := store.DeleteWithTrash(a.bookmarks, a.trash, store.Target{Kind: model.TrashCategory, ID: id})
				if res.Found && res.RemovedBookmarks > 0 {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d bookmark(s) removed with it\n", res.RemovedBookmarks)
				}
				return reportDelete(cmd, res, "category", args[0])
			},
		},
		&cobra.Command{
			Use:   "use <category>",
			Short: "Set the active category filter (\"all\" shows everything)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a := appFrom(cmd)
				id, err := resolveCategory(a.bookmarks, args[0])
				if err != nil {
					return err
				}
				a.bookmarks.SetActiveCategory(id)
				success(cmd.OutOrStdout(), "Active category: %s", id)
				return nil
			},
		},
		&cobra.Command{
			Use:   "move <from> <to>",
			Short: "Move a category tab to another position",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				a := appFrom(cmd)
				n := len(a.bookmarks.ManageableCategories())
				from, err := position(args[0], n)
				if err != nil {
					return err
				}
				to, err := position(args[1], n)
				if err != nil {
					return err
				}

				board := drag.NewBookmarkBoard(a.bookmarks)
				p, ok := board.StartCategoryDrag(from)
				if !ok {
					return fmt.Errorf("cannot drag position %s", args[0])
				}
				board.OverCategory(to)
				out := board.DropOnCategory(to, p.Encode())
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			},
		},
	)
	return cmd
}

func listCategories(cmd *cobra.Command) error {
	a := appFrom(cmd)
	active := a.bookmarks.ActiveCategory()

	tbl := newTable("", "#", "ID", "NAME", "BOOKMARKS")
	marker := func(id string) string {
		if id == active {
			return green.Sprint("*")
		}
		return ""
	}
	tbl.AddRow(marker(model.AllCategoryID), "", model.AllCategoryID, "All", len(a.bookmarks.Bookmarks()))
	for i, c := range a.bookmarks.ManageableCategories() {
		tbl.AddRow(marker(c.ID), i+1, c.ID, c.Name, len(a.bookmarks.BookmarksInCategory(c.ID)))
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), tbl)
	return nil
}
