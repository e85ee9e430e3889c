package store

import (
	"fmt"
	"sort"
	"time"

	"github.com/nikbrunner/tabzero/internal/model"
)

// DayGroup is the trash items deleted on one calendar day.
type DayGroup struct {
	Key   string // YYYY-MM-DD
	Label string // Today, Yesterday or M/D
	Items []model.TrashItem
}

// GroupByDay buckets items by the local calendar day of their deletion
// in now's location. Groups and the items in them are newest first.
func GroupByDay(items []model.TrashItem, now time.Time) []DayGroup {
	loc := now.Location()
	today := startOfDay(now)
	yesterday := today.AddDate(0, 0, -1)

	byKey := make(map[string]*DayGroup)
	days := make(map[string]time.Time)
	for _, item := range items {
		day := startOfDay(item.DeletedAt.Time().In(loc))
		key := day.Format("2006-01-02")

		g, ok := byKey[key]
		if !ok {
			g = &DayGroup{Key: key, Label: dayLabel(day, today, yesterday)}
			byKey[key] = g
			days[key] = day
		}
		g.Items = append(g.Items, item)
	}

	groups := make([]DayGroup, 0, len(byKey))
	for _, g := range byKey {
		sort.SliceStable(g.Items, func(i, j int) bool {
			return g.Items[i].DeletedAt > g.Items[j].DeletedAt
		})
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool {
		return days[groups[i].Key].After(days[groups[j].Key])
	})
	return groups
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func dayLabel(day, today, yesterday time.Time) string {
	switch {
	case day.Equal(today):
		return "Today"
	case day.Equal(yesterday):
		return "Yesterday"
	default:
		return fmt.Sprintf("%d/%d", int(day.Month()), day.Day())
	}
}
