// Package rolebus provides business access to the role catalog.
package rolebus

import (
	"context"
	"errors"
	"fmt"

	"github.com/nexorahq/nexora/foundation/logger"
	"github.com/nexorahq/nexora/foundation/otel"
)

var ErrNotFound = errors.New("role not found")

// Storer defines the behavior required by the rolebus to interact with the
// database.
type Storer interface {
	QueryAll(ctx context.Context) ([]Role, error)
	QueryByID(ctx context.Context, roleID int) (Role, error)
}

// Core manages the set of APIs for role catalog access.
type Core struct {
	storer Storer
	log    *logger.Logger
}

// NewCore constructs a core for role catalog access.
func NewCore(log *logger.Logger, storer Storer) *Core {
	return &Core{
		storer: storer,
		log:    log,
	}
}

// QueryAll returns the full role catalog.
func (c *Core) QueryAll(ctx context.Context) ([]Role, error) {
	ctx, span := otel.AddSpan(ctx, "business.rolebus.queryAll")
	defer span.End()

	roles, err := c.storer.QueryAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return roles, nil
}

// QueryByID finds the role by the specified ID.
func (c *Core) QueryByID(ctx context.Context, roleID int) (Role, error) {
	ctx, span := otel.AddSpan(ctx, "business.rolebus.queryByID")
	defer span.End()

	r, err := c.storer.QueryByID(ctx, roleID)
	if err != nil {
		return Role{}, fmt.Errorf("query: roleID[%d]: %w", roleID, err)
	}

	return r, nil
}
