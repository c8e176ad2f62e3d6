package recurrence

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidRule = errors.New("invalid recurrence rule")

type Frequency string

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
)

type MonthlyOption string

const (
	FirstDay MonthlyOption = "firstDay"
	LastDay  MonthlyOption = "lastDay"
	NthDay   MonthlyOption = "nthDay"
)

type EndType string

const (
	EndOneYear     EndType = "oneYear"
	EndOnDate      EndType = "endDate"
	EndOccurrences EndType = "occurrences"
)

type EndCondition struct {
	Type        EndType   `json:"type"`
	EndDate     time.Time `json:"end_date,omitempty"`
	Occurrences int       `json:"occurrences,omitempty"`
}

// Rule is a value object consumed once by Expand; it is never persisted.
type Rule struct {
	Frequency     Frequency      `json:"frequency"`
	Interval      int            `json:"interval"`
	DaysOfWeek    []time.Weekday `json:"days_of_week,omitempty"`
	MonthlyOption MonthlyOption  `json:"monthly_option,omitempty"`
	NthOccurrence int            `json:"nth_occurrence,omitempty"`
	End           EndCondition   `json:"end_condition"`
}

func (r Rule) validate() error {
	if r.Interval < 1 {
		return fmt.Errorf("%w: interval must be >= 1", ErrInvalidRule)
	}

	switch r.Frequency {
	case Daily:
	case Weekly:
		if len(r.DaysOfWeek) == 0 {
			return fmt.Errorf("%w: weekly frequency requires daysOfWeek", ErrInvalidRule)
		}
	case Monthly:
		switch r.MonthlyOption {
		case FirstDay, LastDay:
		case NthDay:
			if len(r.DaysOfWeek) == 0 {
				return fmt.Errorf("%w: nthDay option requires daysOfWeek", ErrInvalidRule)
			}
			if r.NthOccurrence < 1 {
				return fmt.Errorf("%w: nthDay option requires nthOccurrence >= 1", ErrInvalidRule)
			}
		default:
			return fmt.Errorf("%w: unknown monthly option %q", ErrInvalidRule, r.MonthlyOption)
		}
	default:
		return fmt.Errorf("%w: unknown frequency %q", ErrInvalidRule, r.Frequency)
	}

	for _, d := range r.DaysOfWeek {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("%w: weekday %d out of range", ErrInvalidRule, d)
		}
	}

	switch r.End.Type {
	case EndOneYear:
	case EndOnDate:
		if r.End.EndDate.IsZero() {
			return fmt.Errorf("%w: endDate condition requires an end date", ErrInvalidRule)
		}
	case EndOccurrences:
		if r.End.Occurrences < 1 {
			return fmt.Errorf("%w: occurrences condition requires a positive count", ErrInvalidRule)
		}
	default:
		return fmt.Errorf("%w: unknown end condition %q", ErrInvalidRule, r.End.Type)
	}

	return nil
}
