package service

import (
	"slices"
	"time"

	"medibook/internal/slots"
	"medibook/pkg/model"
)

type scheduled struct {
	appointment *model.Appointment
	instant     time.Time
}

// Categorize sorts appointments by their slot instant and splits them around now.
// An appointment whose slot starts in the same minute as now is present; earlier ones
// are past and later ones future.
func Categorize(appointments []*model.Appointment, now time.Time) *model.CategorizedAppointments {
	items := make([]scheduled, 0, len(appointments))
	for _, a := range appointments {
		// stored appointments always carry a valid date and label; a zero instant sorts first
		instant, _ := slots.SlotInstant(a.Date, a.Time)
		items = append(items, scheduled{appointment: a, instant: instant})
	}

	slices.SortStableFunc(items, func(a, b scheduled) int {
		if c := a.instant.Compare(b.instant); c != 0 {
			return c
		}
		return a.appointment.CreatedAt.Compare(b.appointment.CreatedAt)
	})

	minute := now.Truncate(time.Minute)
	result := model.NewCategorizedAppointments()
	for _, item := range items {
		switch {
		case item.instant.Equal(minute):
			result.Present = append(result.Present, item.appointment)
		case item.instant.Before(now):
			result.Past = append(result.Past, item.appointment)
		default:
			result.Future = append(result.Future, item.appointment)
		}
	}
	return result
}
