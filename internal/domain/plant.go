package domain

// Plant is a plant kind and the maintenance jobs it needs.
type Plant struct {
	ID             int64             `json:"id"`
	Name           string            `json:"name"`
	LatinName      string            `json:"latin_name"`
	BloomingPeriod string            `json:"blooming_period"`
	Jobs           Refs[Maintenance] `json:"jobs"`

	// Months is derived from the plant's jobs on read. It is never written.
	Months MonthSet `json:"months"`
}

// Key returns the plant ID.
func (p Plant) Key() int64 { return p.ID }

// IsNew reports whether the plant has not been inserted yet.
func (p Plant) IsNew() bool { return p.ID == 0 }
