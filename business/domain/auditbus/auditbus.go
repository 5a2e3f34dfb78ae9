// Package auditbus records governance events. Recording is best effort: an
// audit failure is logged and absorbed so a broken audit store never blocks
// the operation being audited.
package auditbus

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nexorahq/nexora/business/types/actions"
	"github.com/nexorahq/nexora/foundation/logger"
)

// Event represents a recorded governance event.
type Event struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Action    actions.Action
	CompanyID *int64
	Detail    map[string]any
	Date      time.Time
}

// NewEvent contains the information needed to record an event.
type NewEvent struct {
	UserID    uuid.UUID
	Action    actions.Action
	CompanyID *int64
	Detail    map[string]any
}

// Storer defines the behavior required by the auditbus to interact with the
// database.
type Storer interface {
	Create(ctx context.Context, evt Event) error
}

// Core manages the set of APIs for audit access.
type Core struct {
	storer Storer
	log    *logger.Logger
}

// NewCore constructs a core for audit api access.
func NewCore(log *logger.Logger, storer Storer) *Core {
	return &Core{
		storer: storer,
		log:    log,
	}
}

// Record persists the event. Failures are logged, never returned.
func (c *Core) Record(ctx context.Context, ne NewEvent) {
	evt := Event{
		ID:        uuid.New(),
		UserID:    ne.UserID,
		Action:    ne.Action,
		CompanyID: ne.CompanyID,
		Detail:    ne.Detail,
		Date:      time.Now(),
	}

	if err := c.storer.Create(ctx, evt); err != nil {
		c.log.Error(ctx, "auditbus: record failed", "action", ne.Action, "userID", ne.UserID, "err", err)
	}
}
