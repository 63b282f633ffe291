package commands

import (
	"context"
	"fmt"
	"strings"

	"gardenbook/internal/application"
	"gardenbook/internal/ports"
)

// Relation names one of the two entity associations that can be edited
// directly. Job months are edited through the job itself.
type Relation int

const (
	RelationUnknown Relation = iota
	RelationClientPlant
	RelationPlantJob
)

func (r Relation) String() string {
	switch r {
	case RelationClientPlant:
		return "client-plant"
	case RelationPlantJob:
		return "plant-job"
	default:
		return "unknown"
	}
}

// sides returns the field names of the left and right IDs
func (r Relation) sides() (string, string) {
	switch r {
	case RelationClientPlant:
		return "clientID", "plantID"
	case RelationPlantJob:
		return "plantID", "jobID"
	default:
		return "left", "right"
	}
}

// ParseRelation accepts "client-plant" or "plant-job". The order of the
// names fixes which ID is left and which is right, so reversed forms such
// as "plant-client" are rejected.
func ParseRelation(s string) Relation {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "client-plant":
		return RelationClientPlant
	case "plant-job":
		return RelationPlantJob
	default:
		return RelationUnknown
	}
}

func validateRelation(r Relation) error {
	if r == RelationUnknown {
		return &application.ValidationError{
			Field:   "relation",
			Message: "relation must be client-plant or plant-job",
		}
	}
	return nil
}

// LinkResult contains the result of a link or unlink operation
type LinkResult struct {
	Relation Relation
	Removed  int64
	Message  string
}

// LinkCommand inserts one association row
type LinkCommand struct {
	store    ports.GardenStore
	Relation Relation
	LeftID   int64
	RightID  int64
}

// NewLinkCommand creates a new LinkCommand
func NewLinkCommand(store ports.GardenStore, rel Relation, leftID, rightID int64) *LinkCommand {
	return &LinkCommand{
		store:    store,
		Relation: rel,
		LeftID:   leftID,
		RightID:  rightID,
	}
}

// Validate checks if the link operation is valid
func (c *LinkCommand) Validate() error {
	if err := validateRelation(c.Relation); err != nil {
		return err
	}
	left, right := c.Relation.sides()
	if err := application.ValidateID(left, c.LeftID); err != nil {
		return err
	}
	return application.ValidateID(right, c.RightID)
}

// Execute runs the link command
func (c *LinkCommand) Execute(ctx context.Context) (*LinkResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var err error
	switch c.Relation {
	case RelationClientPlant:
		err = c.store.LinkPlantToClient(ctx, c.LeftID, c.RightID)
	case RelationPlantJob:
		err = c.store.LinkJobToPlant(ctx, c.LeftID, c.RightID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to link %s %d-%d: %w", c.Relation, c.LeftID, c.RightID, err)
	}

	return &LinkResult{
		Relation: c.Relation,
		Message:  fmt.Sprintf("Linked %s #%d -> #%d", c.Relation, c.LeftID, c.RightID),
	}, nil
}

// UnlinkCommand removes association rows. A nil side matches every row;
// with both sides nil nothing is removed.
type UnlinkCommand struct {
	store    ports.GardenStore
	Relation Relation
	LeftID   *int64
	RightID  *int64
}

// NewUnlinkCommand creates a new UnlinkCommand
func NewUnlinkCommand(store ports.GardenStore, rel Relation, leftID, rightID *int64) *UnlinkCommand {
	return &UnlinkCommand{
		store:    store,
		Relation: rel,
		LeftID:   leftID,
		RightID:  rightID,
	}
}

// Validate checks if the unlink operation is valid
func (c *UnlinkCommand) Validate() error {
	return validateRelation(c.Relation)
}

// Execute runs the unlink command
func (c *UnlinkCommand) Execute(ctx context.Context) (*LinkResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var (
		n   int64
		err error
	)
	switch c.Relation {
	case RelationClientPlant:
		n, err = c.store.UnlinkClientPlant(ctx, c.LeftID, c.RightID)
	case RelationPlantJob:
		n, err = c.store.UnlinkPlantJob(ctx, c.LeftID, c.RightID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to unlink %s: %w", c.Relation, err)
	}

	return &LinkResult{
		Relation: c.Relation,
		Removed:  n,
		Message:  fmt.Sprintf("Unlinked %s: %d removed", c.Relation, n),
	}, nil
}
