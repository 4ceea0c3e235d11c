// Package i18n localizes user-facing strings. English and Arabic ship
// built in; lookup is by dotted key with English as the fallback for any
// key a locale does not cover. Arabic also flips the layout direction,
// which tabular output consults.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Direction is the text layout direction of a locale.
type Direction int

// Layout directions.
const (
	LeftToRight Direction = iota
	RightToLeft
)

var supported = []language.Tag{
	language.English, // first entry is the fallback
	language.Arabic,
}

var matcher = language.NewMatcher(supported)

// Locale resolves messages for one matched language.
type Locale struct {
	tag      language.Tag
	messages map[string]string
}

// Match picks the best supported language for the given preferences,
// typically an Accept-Language style list or a bare tag like "ar". Unknown
// or empty input matches English.
func Match(prefs string) *Locale {
	tags, _, err := language.ParseAcceptLanguage(prefs)
	if err != nil || len(tags) == 0 {
		tags = []language.Tag{language.English}
	}
	_, index, _ := matcher.Match(tags...)
	tag := supported[index]
	return &Locale{tag: tag, messages: catalogs[tag]}
}

// Tag returns the matched language tag.
func (l *Locale) Tag() language.Tag {
	return l.tag
}

// Direction returns the locale's layout direction.
func (l *Locale) Direction() Direction {
	if base, _ := l.tag.Base(); base.String() == "ar" {
		return RightToLeft
	}
	return LeftToRight
}

// RTL reports whether the locale lays out right to left.
func (l *Locale) RTL() bool {
	return l.Direction() == RightToLeft
}

// T returns the message for key, falling back to English and finally to
// the key itself so missing entries stay visible instead of vanishing.
func (l *Locale) T(key string) string {
	if msg, ok := l.messages[key]; ok {
		return msg
	}
	if msg, ok := catalogs[language.English][key]; ok {
		return msg
	}
	return key
}

// Status localizes a registration status value.
func (l *Locale) Status(status string) string {
	return l.T("status." + strings.ToLower(status))
}

var catalogs = map[language.Tag]map[string]string{
	language.English: {
		"status.pending":       "Pending",
		"status.approved":      "Approved",
		"status.rejected":      "Rejected",
		"events.title":         "Title",
		"events.date":          "Date",
		"events.location":      "Location",
		"events.category":      "Category",
		"events.price":         "Price",
		"events.capacity":      "Capacity",
		"events.available":     "Available",
		"events.full":          "Full",
		"events.free":          "Free",
		"registrations.event":  "Event",
		"registrations.user":   "User",
		"registrations.status": "Status",
		"registrations.reason": "Reason",
		"stats.total":          "Total",
		"stats.pending":        "Pending",
		"stats.approved":       "Approved",
		"stats.rejected":       "Rejected",
		"auth.loggedin":        "Logged in as %s",
		"auth.loggedout":       "Logged out",
		"auth.anonymous":       "Not logged in",
	},
	language.Arabic: {
		"status.pending":       "قيد الانتظار",
		"status.approved":      "مقبول",
		"status.rejected":      "مرفوض",
		"events.title":         "العنوان",
		"events.date":          "التاريخ",
		"events.location":      "الموقع",
		"events.category":      "الفئة",
		"events.price":         "السعر",
		"events.capacity":      "السعة",
		"events.available":     "متاح",
		"events.full":          "مكتمل",
		"events.free":          "مجاني",
		"registrations.event":  "الفعالية",
		"registrations.user":   "المستخدم",
		"registrations.status": "الحالة",
		"registrations.reason": "السبب",
		"stats.total":          "الإجمالي",
		"stats.pending":        "قيد الانتظار",
		"stats.approved":       "مقبول",
		"stats.rejected":       "مرفوض",
		"auth.loggedin":        "تم تسجيل الدخول باسم %s",
		"auth.loggedout":       "تم تسجيل الخروج",
		"auth.anonymous":       "لم يتم تسجيل الدخول",
	},
}
