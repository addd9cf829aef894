package services

import (
	"fmt"
	"time"
)

const weekKeyLayout = "2006-01-02"

// AuctionWeek is one Monday-to-Sunday auction period in the auction timezone.
type AuctionWeek struct {
	Key    string    `json:"weekKey"`
	Start  time.Time `json:"weekStart"`
	End    time.Time `json:"weekEnd"`
	Cutoff time.Time `json:"cutoff"`
}

// AuctionCalendar does all week arithmetic in one fixed timezone.
type AuctionCalendar struct {
	loc          *time.Location
	cutoffBefore time.Duration
}

func NewAuctionCalendar(loc *time.Location, cutoffBefore time.Duration) AuctionCalendar {
	if loc == nil {
		loc = time.UTC
	}
	return AuctionCalendar{loc: loc, cutoffBefore: cutoffBefore}
}

func (c AuctionCalendar) Location() *time.Location {
	return c.loc
}

// WeekStartOf returns Monday 00:00 of the week containing t.
func (c AuctionCalendar) WeekStartOf(t time.Time) time.Time {
	t = t.In(c.loc)
	sinceMonday := (int(t.Weekday()) + 6) % 7
	y, m, d := t.Date()
	return time.Date(y, m, d-sinceMonday, 0, 0, 0, 0, c.loc)
}

func (c AuctionCalendar) weekFrom(start time.Time) AuctionWeek {
	return AuctionWeek{
		Key:    start.Format(weekKeyLayout),
		Start:  start,
		End:    start.AddDate(0, 0, 7).Add(-time.Second),
		Cutoff: start.Add(-c.cutoffBefore),
	}
}

// CurrentWeek is the week containing now. Settlement targets it at Monday 00:00.
func (c AuctionCalendar) CurrentWeek(now time.Time) AuctionWeek {
	return c.weekFrom(c.WeekStartOf(now))
}

// NextWeek is the week bids placed at now compete for.
func (c AuctionCalendar) NextWeek(now time.Time) AuctionWeek {
	start := c.WeekStartOf(now)
	y, m, d := start.Date()
	return c.weekFrom(time.Date(y, m, d+7, 0, 0, 0, 0, c.loc))
}

// WeekByKey parses a weekKey, which must name a Monday.
func (c AuctionCalendar) WeekByKey(key string) (AuctionWeek, error) {
	start, err := time.ParseInLocation(weekKeyLayout, key, c.loc)
	if err != nil {
		return AuctionWeek{}, invalidArgument("weekKey", "must be a date in YYYY-MM-DD form")
	}
	if start.Weekday() != time.Monday {
		return AuctionWeek{}, invalidArgument("weekKey", fmt.Sprintf("%s is not a Monday", key))
	}
	return c.weekFrom(start), nil
}

// CutoffFor returns the bidding cutoff of the week starting at weekStart.
func (c AuctionCalendar) CutoffFor(weekStart time.Time) time.Time {
	return weekStart.In(c.loc).Add(-c.cutoffBefore)
}
