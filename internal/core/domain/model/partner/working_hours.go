package partner

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"pharmadelivery/internal/pkg/errs"
	"pharmadelivery/internal/pkg/guard"
)

// ErrWorkingHoursAreNotConstructed is returned when using an improperly
// initialized WorkingHours value.
var ErrWorkingHoursAreNotConstructed = errs.NewValueIsRequiredError(
	"working hours must be created via NewWorkingHours constructor")

// WorkingHours is the weekly availability window of a partner: a start and
// end time-of-day plus the set of weekdays the window applies to.
//
// A window whose end is not after its start wraps past midnight: a night
// courier working 22:00-06:00 on Monday is available late Monday evening and
// in the small hours of Tuesday. The weekday set is always checked against
// the day the window opened.
//
// WorkingHours is an immutable value object.
type WorkingHours struct { //nolint:recvcheck //using for validation
	startMinute int // minutes from midnight, inclusive
	endMinute   int // minutes from midnight, exclusive
	weekdays    map[time.Weekday]bool
	guard       guard.ConstructorGuard
}

// NewWorkingHours creates a working-hours window.
// Hours must be within [0,23], minutes within [0,59], and at least one
// weekday must be given. Duplicate weekdays are collapsed.
func NewWorkingHours(startHour, startMinute, endHour, endMinute int, weekdays []time.Weekday) (WorkingHours, error) {
	wh := WorkingHours{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		wh.setStart(startHour, startMinute),
		wh.setEnd(endHour, endMinute),
		wh.setWeekdays(weekdays),
	); err != nil {
		return WorkingHours{}, err
	}

	return wh, nil
}

// Validate checks that the window was created through NewWorkingHours.
func (wh WorkingHours) Validate() error {
	return wh.guard.Validate(ErrWorkingHoursAreNotConstructed)
}

// StartMinute returns the window start as minutes from midnight.
func (wh WorkingHours) StartMinute() int {
	return wh.startMinute
}

// EndMinute returns the window end as minutes from midnight.
func (wh WorkingHours) EndMinute() int {
	return wh.endMinute
}

// Weekdays returns the weekdays the window applies to, in Sunday-first order.
func (wh WorkingHours) Weekdays() []time.Weekday {
	days := make([]time.Weekday, 0, len(wh.weekdays))
	for d := range wh.weekdays {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days
}

// Contains reports whether the given instant falls inside the window.
// For overnight windows the portion after midnight counts against the weekday
// the window opened on.
func (wh WorkingHours) Contains(t time.Time) (bool, error) {
	if err := wh.Validate(); err != nil {
		return false, err
	}

	minuteOfDay := t.Hour()*60 + t.Minute()

	if wh.endMinute > wh.startMinute {
		return wh.weekdays[t.Weekday()] &&
			minuteOfDay >= wh.startMinute && minuteOfDay < wh.endMinute, nil
	}

	// Overnight window. Before midnight it belongs to today's weekday,
	// after midnight to yesterday's.
	if minuteOfDay >= wh.startMinute {
		return wh.weekdays[t.Weekday()], nil
	}
	if minuteOfDay < wh.endMinute {
		yesterday := t.AddDate(0, 0, -1).Weekday()
		return wh.weekdays[yesterday], nil
	}

	return false, nil
}

func (wh *WorkingHours) setStart(hour, minute int) error {
	if hour < 0 || hour > 23 {
		return errs.NewValueIsOutOfRangeError("startHour", hour, 0, 23)
	}
	if minute < 0 || minute > 59 {
		return errs.NewValueIsOutOfRangeError("startMinute", minute, 0, 59)
	}

	wh.startMinute = hour*60 + minute
	return nil
}

func (wh *WorkingHours) setEnd(hour, minute int) error {
	if hour < 0 || hour > 23 {
		return errs.NewValueIsOutOfRangeError("endHour", hour, 0, 23)
	}
	if minute < 0 || minute > 59 {
		return errs.NewValueIsOutOfRangeError("endMinute", minute, 0, 59)
	}

	wh.endMinute = hour*60 + minute
	return nil
}

func (wh *WorkingHours) setWeekdays(weekdays []time.Weekday) error {
	if len(weekdays) == 0 {
		return errs.NewValueIsRequiredError("weekdays")
	}

	set := make(map[time.Weekday]bool, len(weekdays))
	for _, d := range weekdays {
		if d < time.Sunday || d > time.Saturday {
			return errs.NewValueIsInvalidErrorWithCause("weekdays",
				fmt.Errorf("%d is not a valid weekday", d))
		}
		set[d] = true
	}

	wh.weekdays = set
	return nil
}
