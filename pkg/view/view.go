// Package view derives presentation-ready data from store snapshots:
// sort orders for the event listing, status subsets of registrations, and
// the aggregates the dashboards render. Everything here is pure; the
// stores own fetching and caching.
package view

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/agentstation/eventhub/pkg/types"
)

// SortKey selects the event listing order.
type SortKey string

// Supported sort orders.
const (
	SortByDate  SortKey = "date"
	SortByTitle SortKey = "title"
	SortByPrice SortKey = "price"
)

// ParseSortKey maps user input to a SortKey, defaulting to date order.
func ParseSortKey(s string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case SortByTitle:
		return SortByTitle
	case SortByPrice:
		return SortByPrice
	default:
		return SortByDate
	}
}

// SortEvents returns a sorted copy of events. Date order is soonest first,
// title order is case-insensitive, price order is cheapest first. Ties keep
// the server's order.
func SortEvents(events []types.Event, key SortKey) []types.Event {
	sorted := append([]types.Event(nil), events...)
	switch key {
	case SortByTitle:
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i].Title) < strings.ToLower(sorted[j].Title)
		})
	case SortByPrice:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Price < sorted[j].Price
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Date.Time.Before(sorted[j].Date.Time)
		})
	}
	return sorted
}

// UpcomingEvents returns the events whose date is not in the past,
// soonest first.
func UpcomingEvents(events []types.Event, now time.Time) []types.Event {
	upcoming := make([]types.Event, 0, len(events))
	for _, event := range events {
		if !event.Date.Time.Before(now) {
			upcoming = append(upcoming, event)
		}
	}
	return SortEvents(upcoming, SortByDate)
}

// FilterByStatus returns the registrations in the given status. An empty
// status returns a copy of the whole list.
func FilterByStatus(regs []types.Registration, status types.RegistrationStatus) []types.Registration {
	if status == "" {
		return append([]types.Registration(nil), regs...)
	}
	filtered := make([]types.Registration, 0, len(regs))
	for _, reg := range regs {
		if reg.Status == status {
			filtered = append(filtered, reg)
		}
	}
	return filtered
}

// CountByStatus tallies registrations into the dashboard aggregate. The
// result matches what the stats endpoint would report for the same rows.
func CountByStatus(regs []types.Registration) types.RegistrationCounts {
	var counts types.RegistrationCounts
	for _, reg := range regs {
		counts.Total++
		switch reg.Status {
		case types.StatusApproved:
			counts.Approved++
		case types.StatusRejected:
			counts.Rejected++
		default:
			counts.Pending++
		}
	}
	return counts
}

// CountByEvent groups registrations by event id and tallies each group.
func CountByEvent(regs []types.Registration) types.EventStats {
	stats := make(types.EventStats)
	for _, reg := range regs {
		id := reg.EventID()
		counts := stats[id]
		counts.Total++
		switch reg.Status {
		case types.StatusApproved:
			counts.Approved++
		case types.StatusRejected:
			counts.Rejected++
		default:
			counts.Pending++
		}
		stats[id] = counts
	}
	return stats
}

// RegistrationRows flattens registrations into export rows. The header row
// is always first.
func RegistrationRows(regs []types.Registration) [][]string {
	rows := make([][]string, 0, len(regs)+1)
	rows = append(rows, []string{"id", "event", "user", "status", "reason", "createdAt"})
	for i := range regs {
		reg := &regs[i]
		event := reg.EventTitle()
		if event == "" {
			event = reg.EventID()
		}
		user := reg.Username()
		if user == "" {
			user = reg.User.ID()
		}
		created := ""
		if !reg.CreatedAt.Time.IsZero() {
			created = reg.CreatedAt.Time.Format(time.RFC3339)
		}
		rows = append(rows, []string{reg.ID, event, user, string(reg.Status), reg.Reason, created})
	}
	return rows
}

// EventRows flattens events into export rows. The header row is always
// first.
func EventRows(events []types.Event) [][]string {
	rows := make([][]string, 0, len(events)+1)
	rows = append(rows, []string{"id", "title", "date", "location", "category", "price", "capacity", "registered"})
	for i := range events {
		event := &events[i]
		rows = append(rows, []string{
			event.ID,
			event.Title,
			event.Date.Time.Format("2006-01-02"),
			event.Location,
			event.Category,
			strconv.FormatFloat(event.Price, 'f', 2, 64),
			strconv.Itoa(event.Capacity),
			strconv.Itoa(event.RegisteredCount()),
		})
	}
	return rows
}
