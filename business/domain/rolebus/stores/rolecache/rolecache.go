// Package rolecache contains role catalog related CRUD functionality with
// caching. The catalog is immutable reference data so entries are kept for an
// extended TTL.
package rolecache

import (
	"context"
	"fmt"
	"time"

	"github.com/nexorahq/nexora/business/domain/rolebus"
	"github.com/nexorahq/nexora/foundation/logger"
	"github.com/viccon/sturdyc"
)

// Store manages the set of APIs for role catalog data and caching.
type Store struct {
	log    *logger.Logger
	storer rolebus.Storer
	byID   *sturdyc.Client[rolebus.Role]
	all    *sturdyc.Client[[]rolebus.Role]
}

// NewStore constructs the api for data and caching access.
func NewStore(log *logger.Logger, storer rolebus.Storer, ttl time.Duration) *Store {
	const capacity = 256
	const numShards = 8
	const evictionPercentage = 10

	return &Store{
		log:    log,
		storer: storer,
		byID:   sturdyc.New[rolebus.Role](capacity, numShards, ttl, evictionPercentage),
		all:    sturdyc.New[[]rolebus.Role](4, 1, ttl, evictionPercentage),
	}
}

// QueryAll retrieves the full role catalog from the cache or the database.
func (s *Store) QueryAll(ctx context.Context) ([]rolebus.Role, error) {
	fetch := func(ctx context.Context) ([]rolebus.Role, error) {
		return s.storer.QueryAll(ctx)
	}

	roles, err := s.all.GetOrFetch(ctx, "catalog", fetch)
	if err != nil {
		return nil, fmt.Errorf("getorfetch: %w", err)
	}

	return roles, nil
}

// QueryByID gets the specified role from the cache or the database.
func (s *Store) QueryByID(ctx context.Context, roleID int) (rolebus.Role, error) {
	fetch := func(ctx context.Context) (rolebus.Role, error) {
		return s.storer.QueryByID(ctx, roleID)
	}

	r, err := s.byID.GetOrFetch(ctx, fmt.Sprintf("role:%d", roleID), fetch)
	if err != nil {
		return rolebus.Role{}, fmt.Errorf("getorfetch: %w", err)
	}

	return r, nil
}
