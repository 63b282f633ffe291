package domain

// Client is a customer of the business and the plants they own.
type Client struct {
	ID     int64       `json:"id"`
	Name   string      `json:"name"`
	Plants Refs[Plant] `json:"plants"`
}

// Key returns the client ID.
func (c Client) Key() int64 { return c.ID }

// IsNew reports whether the client has not been inserted yet.
func (c Client) IsNew() bool { return c.ID == 0 }
