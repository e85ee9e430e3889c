package tui

import (
	"github.com/nikbrunner/tabzero/internal/model"
	"github.com/nikbrunner/tabzero/internal/store"
)

// RowKind distinguishes day headers from trash items in the list.
type RowKind int

const (
	RowGroup RowKind = iota
	RowItem
)

// Row is one line of the trash list: a day header or an item under it.
type Row struct {
	Kind  RowKind
	Group store.DayGroup
	Item  model.TrashItem
}

// buildRows flattens day groups into header rows followed by their items.
func buildRows(groups []store.DayGroup) []Row {
	var rows []Row
	for _, g := range groups {
		rows = append(rows, Row{Kind: RowGroup, Group: g})
		for _, item := range g.Items {
			rows = append(rows, Row{Kind: RowItem, Group: g, Item: item})
		}
	}
	return rows
}

// Title returns a display title for the row.
func (r Row) Title() string {
	if r.Kind == RowGroup {
		return r.Group.Label
	}
	return r.Item.Title()
}
