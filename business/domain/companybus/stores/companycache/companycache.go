// Package companycache contains company related CRUD functionality with
// caching. Every admission decision reads the company row, so lookups are
// cached with a short TTL and invalidated on any write.
package companycache

import (
	"context"
	"fmt"
	"time"

	"github.com/nexorahq/nexora/business/domain/companybus"
	"github.com/nexorahq/nexora/business/sdk/sqldb"
	"github.com/nexorahq/nexora/foundation/logger"
	"github.com/viccon/sturdyc"
)

// Store manages the set of APIs for company data and caching.
type Store struct {
	log    *logger.Logger
	storer companybus.Storer
	cache  *sturdyc.Client[companybus.Company]
}

// NewStore constructs the api for data and caching access.
func NewStore(log *logger.Logger, storer companybus.Storer, ttl time.Duration) *Store {
	const capacity = 1024
	const numShards = 8
	const evictionPercentage = 10

	return &Store{
		log:    log,
		storer: storer,
		cache:  sturdyc.New[companybus.Company](capacity, numShards, ttl, evictionPercentage),
	}
}

// NewWithTx constructs a new Store value replacing the storer with a storer
// that is currently inside a transaction. The cache is bypassed while inside
// the transaction.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (companybus.Storer, error) {
	return s.storer.NewWithTx(tx)
}

// Create inserts a new company and primes the cache with the result.
func (s *Store) Create(ctx context.Context, comp companybus.Company) (int64, error) {
	id, err := s.storer.Create(ctx, comp)
	if err != nil {
		return 0, err
	}

	comp.ID = id
	s.cache.Set(cacheKey(id), comp)

	return id, nil
}

// Update replaces a company document and invalidates the cached entry.
func (s *Store) Update(ctx context.Context, comp companybus.Company) error {
	if err := s.storer.Update(ctx, comp); err != nil {
		return err
	}

	s.cache.Delete(cacheKey(comp.ID))

	return nil
}

// QueryByID gets the specified company from the cache or the database.
func (s *Store) QueryByID(ctx context.Context, companyID int64) (companybus.Company, error) {
	fetch := func(ctx context.Context) (companybus.Company, error) {
		return s.storer.QueryByID(ctx, companyID)
	}

	comp, err := s.cache.GetOrFetch(ctx, cacheKey(companyID), fetch)
	if err != nil {
		return companybus.Company{}, fmt.Errorf("getorfetch: %w", err)
	}

	return comp, nil
}

func cacheKey(companyID int64) string {
	return fmt.Sprintf("company:%d", companyID)
}
