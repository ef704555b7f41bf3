package errors

import "errors"

var (
	ErrNotFound = errors.New("appointment not found")

	ErrInvalidID = errors.New("invalid appointment ID format")

	// ErrSlotTaken is returned when a booked appointment already holds the (doctor, date, time) slot.
	ErrSlotTaken = errors.New("slot already booked")

	ErrLockHeld = errors.New("appointment lock already held")
)
