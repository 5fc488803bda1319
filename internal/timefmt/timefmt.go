// Package timefmt renders post timestamps as absolute display strings or as
// tiered relative ages ("3 hours ago", "Yesterday", "2 weeks ago").
package timefmt

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

const (
	absentAbsolute = "N/A"
	absentRelative = "Unknown"
	neverUpdated   = "Never updated"

	iso8601Layout = "2006-01-02T15:04:05Z"
)

// Style selects the absolute rendering.
type Style struct {
	kind   styleKind
	layout string
}

type styleKind int

const (
	shortStyle styleKind = iota
	mediumStyle
	longStyle
	isoStyle
	customStyle
)

var (
	Short   = Style{kind: shortStyle}
	Medium  = Style{kind: mediumStyle}
	Long    = Style{kind: longStyle}
	ISO8601 = Style{kind: isoStyle}
)

// Custom renders with a Go reference layout such as "2006-01-02 15:04".
// includeTime has no effect on custom layouts.
func Custom(layout string) Style {
	return Style{kind: customStyle, layout: layout}
}

type options struct {
	includeTime bool
	loc         *time.Location
	locale      language.Tag
}

type Option func(*options)

// WithoutTime omits the time of day for Short, Medium and Long.
func WithoutTime() Option {
	return func(o *options) { o.includeTime = false }
}

// In renders in the given zone. nil means time.Local.
func In(loc *time.Location) Option {
	return func(o *options) { o.loc = loc }
}

func UTC() Option {
	return In(time.UTC)
}

func WithLocale(tag language.Tag) Option {
	return func(o *options) { o.locale = tag }
}

// FormatAbsolute renders t in the requested style. The zero time is treated
// as an absent timestamp and yields "N/A". ISO8601 is always rendered in UTC.
func FormatAbsolute(t time.Time, style Style, opts ...Option) string {
	if t.IsZero() {
		return absentAbsolute
	}

	o := options{includeTime: true, loc: time.Local, locale: language.AmericanEnglish}
	for _, opt := range opts {
		opt(&o)
	}
	if o.loc == nil {
		o.loc = time.Local
	}

	switch style.kind {
	case isoStyle:
		return t.UTC().Format(iso8601Layout)
	case customStyle:
		return t.In(o.loc).Format(style.layout)
	}

	l := layoutsFor(o.locale)
	var date, clock string
	switch style.kind {
	case shortStyle:
		date, clock = l.shortDate, l.shortTime
	case mediumStyle:
		date, clock = l.mediumDate, l.mediumTime
	default:
		date, clock = l.longDate, l.longTime
	}

	local := t.In(o.loc)
	if !o.includeTime {
		return local.Format(date)
	}
	sep := l.sep
	if style.kind == longStyle {
		sep = l.longSep
	}
	return local.Format(date) + sep + local.Format(clock)
}

// FormatCreated renders a creation stamp as a medium date with a short time.
func FormatCreated(t time.Time, opts ...Option) string {
	if t.IsZero() {
		return absentAbsolute
	}
	o := options{loc: time.Local, locale: language.AmericanEnglish}
	for _, opt := range opts {
		opt(&o)
	}
	if o.loc == nil {
		o.loc = time.Local
	}
	l := layoutsFor(o.locale)
	local := t.In(o.loc)
	return local.Format(l.mediumDate) + l.sep + local.Format(l.shortTime)
}

// FormatLastUpdate is FormatCreated for an optional edit stamp.
func FormatLastUpdate(t *time.Time, opts ...Option) string {
	if t == nil || t.IsZero() {
		return neverUpdated
	}
	return FormatCreated(*t, opts...)
}

// FormatRelative describes how long before now t happened, using the first
// non-zero calendar unit in the order years, months, days, hours, minutes.
// Seven days or more are reported in whole weeks. The zero time yields
// "Unknown"; a t after now yields "Just now".
func FormatRelative(t, now time.Time) string {
	if t.IsZero() {
		return absentRelative
	}

	d := between(t, now)
	switch {
	case d.years > 0:
		return plural(d.years, "year")
	case d.months > 0:
		return plural(d.months, "month")
	case d.days > 0:
		switch {
		case d.days == 1:
			return "Yesterday"
		case d.days < 7:
			return plural(d.days, "day")
		default:
			return plural(d.days/7, "week")
		}
	case d.hours > 0:
		return plural(d.hours, "hour")
	case d.minutes > 0:
		return plural(d.minutes, "minute")
	}
	return "Just now"
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
