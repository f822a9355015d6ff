package core

import "time"

// ChangeEvent describes a committed ledger mutation.
type ChangeEvent struct {
	Operation string    `json:"operation"`
	ID        int64     `json:"id,omitempty"`
	Revision  uint64    `json:"revision"`
	Count     int       `json:"count"`
	At        time.Time `json:"at"`
}
