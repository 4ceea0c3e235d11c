package output

import (
	"strconv"

	"github.com/agentstation/eventhub/pkg/i18n"
	"github.com/agentstation/eventhub/pkg/types"
)

// EventsData shapes events into rows for table or CSV rendering. Headers
// come from the locale; right-to-left locales get the column order flipped.
func EventsData(events []types.Event, locale *i18n.Locale) Data {
	data := Data{
		Headers: []string{
			"ID",
			locale.T("events.title"),
			locale.T("events.date"),
			locale.T("events.location"),
			locale.T("events.category"),
			locale.T("events.price"),
			locale.T("events.available"),
		},
		Rows: make([][]string, 0, len(events)),
	}
	for i := range events {
		event := &events[i]
		data.Rows = append(data.Rows, []string{
			event.ID,
			event.Title,
			event.Date.Time.Format("2006-01-02 15:04"),
			event.Location,
			event.Category,
			formatPrice(event.Price, locale),
			formatAvailability(event, locale),
		})
	}
	if locale.RTL() {
		return data.Reverse()
	}
	return data
}

// RegistrationsData shapes registrations into rows. Bare references render
// their id; populated ones render the human name.
func RegistrationsData(regs []types.Registration, locale *i18n.Locale) Data {
	data := Data{
		Headers: []string{
			"ID",
			locale.T("registrations.event"),
			locale.T("registrations.user"),
			locale.T("registrations.status"),
			locale.T("registrations.reason"),
		},
		Rows: make([][]string, 0, len(regs)),
	}
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
		data.Rows = append(data.Rows, []string{
			reg.ID,
			event,
			user,
			locale.Status(string(reg.Status)),
			reg.Reason,
		})
	}
	if locale.RTL() {
		return data.Reverse()
	}
	return data
}

// StatsData shapes the global aggregate into a two-column table.
func StatsData(stats *types.Stats, locale *i18n.Locale) Data {
	data := Data{
		Headers: []string{locale.T("registrations.status"), locale.T("stats.total")},
		Rows: [][]string{
			{locale.T("stats.total"), strconv.Itoa(stats.Registrations.Total)},
			{locale.T("stats.pending"), strconv.Itoa(stats.Registrations.Pending)},
			{locale.T("stats.approved"), strconv.Itoa(stats.Registrations.Approved)},
			{locale.T("stats.rejected"), strconv.Itoa(stats.Registrations.Rejected)},
		},
	}
	if locale.RTL() {
		return data.Reverse()
	}
	return data
}

// EventStatsData shapes the per-event breakdown, one row per event.
func EventStatsData(stats types.EventStats, eventIDs []string, locale *i18n.Locale) Data {
	data := Data{
		Headers: []string{
			locale.T("registrations.event"),
			locale.T("stats.total"),
			locale.T("stats.pending"),
			locale.T("stats.approved"),
			locale.T("stats.rejected"),
		},
		Rows: make([][]string, 0, len(eventIDs)),
	}
	for _, id := range eventIDs {
		counts := stats[id]
		data.Rows = append(data.Rows, []string{
			id,
			strconv.Itoa(counts.Total),
			strconv.Itoa(counts.Pending),
			strconv.Itoa(counts.Approved),
			strconv.Itoa(counts.Rejected),
		})
	}
	if locale.RTL() {
		return data.Reverse()
	}
	return data
}

func formatPrice(price float64, locale *i18n.Locale) string {
	if price == 0 {
		return locale.T("events.free")
	}
	return strconv.FormatFloat(price, 'f', 2, 64)
}

func formatAvailability(event *types.Event, locale *i18n.Locale) string {
	if event.IsFull() {
		return locale.T("events.full")
	}
	return strconv.Itoa(event.AvailableSpots) + "/" + strconv.Itoa(event.Capacity)
}
