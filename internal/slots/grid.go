package slots

import (
	"fmt"
	"time"

	"medibook/pkg/config"
)

const (
	LabelLayout = "03:04 PM"
	DateLayout  = "2006-01-02"
)

// Grid describes the bookable slots of a single day: every StepMinutes from StartHour
// up to, but excluding, EndHour.
type Grid struct {
	StartHour   int
	EndHour     int
	StepMinutes int
}

func DefaultGrid() Grid {
	return Grid{
		StartHour:   config.DefaultSlotStartHour,
		EndHour:     config.DefaultSlotEndHour,
		StepMinutes: config.DefaultSlotStepMinutes,
	}
}

func GridFromConfig(cfg *config.Config) Grid {
	return Grid{
		StartHour:   cfg.SlotStartHour,
		EndHour:     cfg.SlotEndHour,
		StepMinutes: cfg.SlotStepMinutes,
	}
}

func (g Grid) Valid() bool {
	return g.StepMinutes > 0 &&
		g.StartHour >= 0 && g.EndHour <= 24 &&
		g.StartHour < g.EndHour
}

func (g Grid) Labels() []string {
	return GenerateGrid(g.StartHour, g.EndHour, g.StepMinutes)
}

// Contains reports whether label is one of the grid's slot labels.
func (g Grid) Contains(label string) bool {
	offset, err := parseLabel(label)
	if err != nil || !g.Valid() {
		return false
	}
	minutes := int(offset / time.Minute)
	if minutes < g.StartHour*60 || minutes >= g.EndHour*60 {
		return false
	}
	return (minutes-g.StartHour*60)%g.StepMinutes == 0
}

// GenerateGrid returns the slot labels in ascending order. Invalid bounds yield an empty grid.
func GenerateGrid(startHour, endHour, stepMinutes int) []string {
	g := Grid{StartHour: startHour, EndHour: endHour, StepMinutes: stepMinutes}
	if !g.Valid() {
		return []string{}
	}

	midnight := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	step := time.Duration(stepMinutes) * time.Minute
	end := midnight.Add(time.Duration(endHour) * time.Hour)

	labels := make([]string, 0, (endHour-startHour)*60/stepMinutes+1)
	for t := midnight.Add(time.Duration(startHour) * time.Hour); t.Before(end); t = t.Add(step) {
		labels = append(labels, t.Format(LabelLayout))
	}
	return labels
}

// ParseDate parses a YYYY-MM-DD calendar date on the server's local clock.
func ParseDate(date string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, date, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}
	return t, nil
}

func ValidLabel(label string) bool {
	_, err := parseLabel(label)
	return err == nil
}

// SlotInstant combines a date and a slot label into a local instant.
func SlotInstant(date, label string) (time.Time, error) {
	day, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	offset, err := parseLabel(label)
	if err != nil {
		return time.Time{}, err
	}
	hour, minute := int(offset/time.Hour), int(offset%time.Hour/time.Minute)
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.Local), nil
}

// parseLabel returns the label's offset from midnight. Only the canonical form is
// accepted, so "9:00 AM" and "09:00 am" are rejected.
func parseLabel(label string) (time.Duration, error) {
	t, err := time.Parse(LabelLayout, label)
	if err != nil || t.Format(LabelLayout) != label {
		return 0, fmt.Errorf("invalid time %q: expected hh:mm AM|PM", label)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}
