package feed

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Level is the minimum severity of quakes included in a feed.
type Level string

// Severity levels supported by the USGS summary feeds.
const (
	LevelSignificant Level = "significant"
	Level45          Level = "4.5"
	Level25          Level = "2.5"
	Level10          Level = "1.0"
	LevelAll         Level = "all"
)

// Period is the time window covered by a feed.
type Period string

// Time periods supported by the USGS summary feeds.
const (
	PeriodHour  Period = "hour"
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

var (
	// ErrInvalidLevel reports a severity level outside the supported set.
	ErrInvalidLevel = eris.New("invalid severity level")
	// ErrInvalidPeriod reports a period outside the supported set.
	ErrInvalidPeriod = eris.New("invalid period")
)

// ParseLevel validates a severity level, case-insensitively.
func ParseLevel(s string) (Level, error) {
	switch l := Level(strings.ToLower(s)); l {
	case LevelSignificant, Level45, Level25, Level10, LevelAll:
		return l, nil
	default:
		return "", eris.Wrapf(ErrInvalidLevel, "%q", s)
	}
}

// ParsePeriod validates a period, case-insensitively.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(s)); p {
	case PeriodHour, PeriodDay, PeriodWeek, PeriodMonth:
		return p, nil
	default:
		return "", eris.Wrapf(ErrInvalidPeriod, "%q", s)
	}
}
