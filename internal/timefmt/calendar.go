package timefmt

import "time"

type components struct {
	years, months, days, hours, minutes int
}

// between computes the calendar difference from -> to in to's location.
// Month steps clamp to the last day of the target month, so Jan 31 plus
// one month is Feb 28 (or 29). A from later than to yields all zeros.
func between(from, to time.Time) components {
	from = from.In(to.Location())
	if !from.Before(to) {
		return components{}
	}

	months := (to.Year()-from.Year())*12 + int(to.Month()-from.Month())
	for months > 0 && addMonths(from, months).After(to) {
		months--
	}
	anchor := addMonths(from, months)

	days := int(to.Sub(anchor) / (24 * time.Hour))
	for anchor.AddDate(0, 0, days+1).Compare(to) <= 0 {
		days++
	}
	for days > 0 && anchor.AddDate(0, 0, days).After(to) {
		days--
	}
	anchor = anchor.AddDate(0, 0, days)

	rest := to.Sub(anchor)
	return components{
		years:   months / 12,
		months:  months % 12,
		days:    days,
		hours:   int(rest / time.Hour),
		minutes: int(rest % time.Hour / time.Minute),
	}
}

func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	total := int(m) - 1 + n
	ty := y + total/12
	tm := time.Month(total%12 + 1)

	if last := daysIn(ty, tm, t.Location()); d > last {
		d = last
	}
	return time.Date(ty, tm, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
