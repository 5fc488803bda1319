package timefmt

import "golang.org/x/text/language"

type layouts struct {
	shortDate, shortTime   string
	mediumDate, mediumTime string
	longDate, longTime     string
	sep, longSep           string
}

var supported = []language.Tag{language.AmericanEnglish, language.BritishEnglish}

var localeLayouts = []layouts{
	{
		shortDate: "1/2/06", shortTime: "3:04 PM",
		mediumDate: "Jan 2, 2006", mediumTime: "3:04:05 PM",
		longDate: "January 2, 2006", longTime: "3:04:05 PM MST",
		sep: ", ", longSep: " at ",
	},
	{
		shortDate: "02/01/2006", shortTime: "15:04",
		mediumDate: "2 Jan 2006", mediumTime: "15:04:05",
		longDate: "2 January 2006", longTime: "15:04:05 MST",
		sep: ", ", longSep: " at ",
	},
}

var matcher = language.NewMatcher(supported)

// layoutsFor falls back to en-US for anything the matcher cannot place.
func layoutsFor(tag language.Tag) layouts {
	_, idx, conf := matcher.Match(tag)
	if conf == language.No || idx < 0 || idx >= len(localeLayouts) {
		return localeLayouts[0]
	}
	return localeLayouts[idx]
}
