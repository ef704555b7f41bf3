package model

// Slot is computed per query and never stored.
type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}
