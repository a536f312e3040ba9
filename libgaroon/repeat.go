package libgaroon

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

// Repeat types sent in repeatInfo.type
const (
	RepeatEveryDay      = "EVERY_DAY"
	RepeatEveryWeekday  = "EVERY_WEEKDAY"
	RepeatEveryWeek     = "EVERY_WEEK"
	RepeatEvery1stWeek  = "EVERY_1STWEEK"
	RepeatEvery2ndWeek  = "EVERY_2NDWEEK"
	RepeatEvery3rdWeek  = "EVERY_3RDWEEK"
	RepeatEvery4thWeek  = "EVERY_4THWEEK"
	RepeatEveryLastWeek = "EVERY_LASTWEEK"
	RepeatEveryMonth    = "EVERY_MONTH"
	RepeatEveryYear     = "EVERY_YEAR"
)

var weekdays = map[string]rrule.Weekday{
	"SUN": rrule.SU,
	"MON": rrule.MO,
	"TUE": rrule.TU,
	"WED": rrule.WE,
	"THU": rrule.TH,
	"FRI": rrule.FR,
	"SAT": rrule.SA,
}

var nthWeek = map[string]int{
	RepeatEvery1stWeek:  1,
	RepeatEvery2ndWeek:  2,
	RepeatEvery3rdWeek:  3,
	RepeatEvery4thWeek:  4,
	RepeatEveryLastWeek: -1,
}

var ordinals = map[string]string{
	RepeatEvery1stWeek:  "1st",
	RepeatEvery2ndWeek:  "2nd",
	RepeatEvery3rdWeek:  "3rd",
	RepeatEvery4thWeek:  "4th",
	RepeatEveryLastWeek: "last",
}

// RepeatInfo describes the recurrence of a REPEATING event
type RepeatInfo struct {
	Type        string `json:"type"`
	PeriodStart string `json:"periodStart"`
	PeriodEnd   string `json:"periodEnd,omitempty"`
	StartTime   string `json:"startTime,omitempty"`
	EndTime     string `json:"endTime,omitempty"`
	DayOfWeek   string `json:"dayOfWeek,omitempty"`
	DayOfMonth  string `json:"dayOfMonth,omitempty"`
	TimeZone    string `json:"timeZone"`
	IsAllDay    bool   `json:"isAllDay"`
	IsStartOnly bool   `json:"isStartOnly"`
}

type wireRepeatInfo struct {
	Type   string `json:"type"`
	Period struct {
		Start string `json:"start"`
		End   string `json:"end"`
	} `json:"period"`
	Time struct {
		Start string `json:"start"`
		End   string `json:"end"`
	} `json:"time"`
	TimeZone    string `json:"timeZone"`
	IsAllDay    bool   `json:"isAllDay"`
	IsStartOnly bool   `json:"isStartOnly"`
	DayOfWeek   string `json:"dayOfWeek"`
	DayOfMonth  string `json:"dayOfMonth"`
}

func (w *wireRepeatInfo) toRepeatInfo() *RepeatInfo {
	return &RepeatInfo{
		Type:        w.Type,
		PeriodStart: w.Period.Start,
		PeriodEnd:   w.Period.End,
		StartTime:   w.Time.Start,
		EndTime:     w.Time.End,
		DayOfWeek:   w.DayOfWeek,
		DayOfMonth:  w.DayOfMonth,
		TimeZone:    w.TimeZone,
		IsAllDay:    w.IsAllDay,
		IsStartOnly: w.IsStartOnly,
	}
}

// Rule converts the repeat definition into a recurrence rule anchored in the
// repeat's time zone.
func (r *RepeatInfo) Rule() (*rrule.RRule, error) {
	loc := time.UTC
	if r.TimeZone != "" {
		var err error
		if loc, err = time.LoadLocation(r.TimeZone); err != nil {
			return nil, fmt.Errorf("unknown repeat time zone %q", r.TimeZone)
		}
	}

	first, err := time.ParseInLocation("2006-01-02", r.PeriodStart, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid repeat period start %q", r.PeriodStart)
	}

	dtstart := first
	if !r.IsAllDay && r.StartTime != "" {
		clock, err := parseClock(r.StartTime)
		if err != nil {
			return nil, err
		}
		dtstart = first.Add(clock)
	}

	opt := rrule.ROption{
		Dtstart:  dtstart,
		Interval: 1,
	}

	if r.PeriodEnd != "" {
		last, err := time.ParseInLocation("2006-01-02", r.PeriodEnd, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid repeat period end %q", r.PeriodEnd)
		}
		opt.Until = last.AddDate(0, 0, 1).Add(-time.Second)
	}

	switch r.Type {
	case RepeatEveryDay:
		opt.Freq = rrule.DAILY
	case RepeatEveryWeekday:
		opt.Freq = rrule.WEEKLY
		opt.Byweekday = []rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR}
	case RepeatEveryWeek:
		wd, err := r.weekday()
		if err != nil {
			return nil, err
		}
		opt.Freq = rrule.WEEKLY
		opt.Byweekday = []rrule.Weekday{wd}
	case RepeatEvery1stWeek, RepeatEvery2ndWeek, RepeatEvery3rdWeek, RepeatEvery4thWeek, RepeatEveryLastWeek:
		wd, err := r.weekday()
		if err != nil {
			return nil, err
		}
		opt.Freq = rrule.MONTHLY
		opt.Byweekday = []rrule.Weekday{wd.Nth(nthWeek[r.Type])}
	case RepeatEveryMonth:
		day, err := r.monthDay()
		if err != nil {
			return nil, err
		}
		opt.Freq = rrule.MONTHLY
		opt.Bymonthday = []int{day}
	case RepeatEveryYear:
		opt.Freq = rrule.YEARLY
		opt.Bymonth = []int{int(first.Month())}
		opt.Bymonthday = []int{first.Day()}
	default:
		return nil, fmt.Errorf("unsupported repeat type %q", r.Type)
	}

	return rrule.NewRRule(opt)
}

// NextOccurrence returns the first occurrence strictly after t, or false when
// the repeat period has ended.
func (r *RepeatInfo) NextOccurrence(t time.Time) (time.Time, bool, error) {
	rule, err := r.Rule()
	if err != nil {
		return time.Time{}, false, err
	}
	next := rule.After(t, false)
	if next.IsZero() {
		return time.Time{}, false, nil
	}
	return next, true, nil
}

// Describe renders a short human readable summary of the repeat definition
func (r *RepeatInfo) Describe() string {
	var parts []string

	switch r.Type {
	case RepeatEveryDay:
		parts = append(parts, "every day")
	case RepeatEveryWeekday:
		parts = append(parts, "every weekday")
	case RepeatEveryWeek:
		parts = append(parts, "every "+r.DayOfWeek)
	case RepeatEvery1stWeek, RepeatEvery2ndWeek, RepeatEvery3rdWeek, RepeatEvery4thWeek, RepeatEveryLastWeek:
		parts = append(parts, fmt.Sprintf("every %s %s of the month", ordinals[r.Type], r.DayOfWeek))
	case RepeatEveryMonth:
		parts = append(parts, "every month on day "+r.DayOfMonth)
	case RepeatEveryYear:
		parts = append(parts, "every year")
	default:
		parts = append(parts, strings.ToLower(r.Type))
	}

	switch {
	case r.IsAllDay:
		parts = append(parts, AllDayMarker)
	case r.StartTime != "" && r.EndTime != "" && !r.IsStartOnly:
		parts = append(parts, trimSeconds(r.StartTime)+" - "+trimSeconds(r.EndTime))
	case r.StartTime != "":
		parts = append(parts, trimSeconds(r.StartTime))
	}

	period := "from " + strings.ReplaceAll(r.PeriodStart, "-", "/")
	if r.PeriodEnd != "" {
		period = strings.ReplaceAll(r.PeriodStart, "-", "/") + " - " + strings.ReplaceAll(r.PeriodEnd, "-", "/")
	}
	parts = append(parts, period)

	return strings.Join(parts, ", ")
}

func (r *RepeatInfo) weekday() (rrule.Weekday, error) {
	wd, ok := weekdays[strings.ToUpper(r.DayOfWeek)]
	if !ok {
		return rrule.Weekday{}, fmt.Errorf("invalid repeat day of week %q", r.DayOfWeek)
	}
	return wd, nil
}

func (r *RepeatInfo) monthDay() (int, error) {
	if strings.EqualFold(r.DayOfMonth, "EOM") {
		return -1, nil
	}
	day, err := strconv.Atoi(r.DayOfMonth)
	if err != nil || day < 1 || day > 31 {
		return 0, fmt.Errorf("invalid repeat day of month %q", r.DayOfMonth)
	}
	return day, nil
}

// parseClock parses "15:04" or "15:04:05" into an offset from midnight
func parseClock(s string) (time.Duration, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute + time.Duration(t.Second())*time.Second, nil
		}
	}
	return 0, fmt.Errorf("invalid repeat time %q", s)
}

func trimSeconds(clock string) string {
	if len(clock) == len("15:04:05") {
		return clock[:5]
	}
	return clock
}
