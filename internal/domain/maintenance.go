package domain

// Maintenance is a recurring job and the months in which it applies.
type Maintenance struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Months      MonthSet `json:"months"`
}

// Key returns the job ID.
func (m Maintenance) Key() int64 { return m.ID }

// IsNew reports whether the job has not been inserted yet.
func (m Maintenance) IsNew() bool { return m.ID == 0 }
