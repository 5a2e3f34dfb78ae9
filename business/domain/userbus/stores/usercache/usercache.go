// Package usercache contains user related CRUD functionality with caching.
// Only id and email lookups are cached; list queries always hit the database.
package usercache

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/nexorahq/nexora/business/domain/userbus"
	"github.com/nexorahq/nexora/business/sdk/order"
	"github.com/nexorahq/nexora/business/sdk/page"
	"github.com/nexorahq/nexora/business/sdk/sqldb"
	"github.com/nexorahq/nexora/foundation/logger"
	"github.com/viccon/sturdyc"
)

// Store manages the set of APIs for user data and caching.
type Store struct {
	log     *logger.Logger
	storer  userbus.Storer
	byID    *sturdyc.Client[userbus.User]
	byEmail *sturdyc.Client[userbus.User]
}

// NewStore constructs the api for data and caching access.
func NewStore(log *logger.Logger, storer userbus.Storer, ttl time.Duration) *Store {
	const capacity = 10000
	const numShards = 10
	const evictionPercentage = 10

	return &Store{
		log:     log,
		storer:  storer,
		byID:    sturdyc.New[userbus.User](capacity, numShards, ttl, evictionPercentage),
		byEmail: sturdyc.New[userbus.User](capacity, numShards, ttl, evictionPercentage),
	}
}

// NewWithTx constructs a new Store value replacing the storer with a storer
// that is currently inside a transaction. The transactional store bypasses
// the cache.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (userbus.Storer, error) {
	return s.storer.NewWithTx(tx)
}

// Create inserts a new user into the database.
func (s *Store) Create(ctx context.Context, usr userbus.User) error {
	if err := s.storer.Create(ctx, usr); err != nil {
		return err
	}

	s.byID.Set(idKey(usr.ID), usr)
	s.byEmail.Set(emailKey(usr.Email), usr)

	return nil
}

// Update replaces a user document in the database and invalidates the cached
// entries.
func (s *Store) Update(ctx context.Context, usr userbus.User) error {
	if err := s.storer.Update(ctx, usr); err != nil {
		return err
	}

	s.byID.Delete(idKey(usr.ID))
	s.byEmail.Delete(emailKey(usr.Email))

	return nil
}

// Query retrieves a list of existing users from the database.
func (s *Store) Query(ctx context.Context, filter userbus.QueryFilter, orderBy order.By, page page.Page) ([]userbus.User, error) {
	return s.storer.Query(ctx, filter, orderBy, page)
}

// Count returns the total number of users in the DB.
func (s *Store) Count(ctx context.Context, filter userbus.QueryFilter) (int, error) {
	return s.storer.Count(ctx, filter)
}

// QueryByID gets the specified user from the cache or the database.
func (s *Store) QueryByID(ctx context.Context, userID uuid.UUID) (userbus.User, error) {
	fetch := func(ctx context.Context) (userbus.User, error) {
		return s.storer.QueryByID(ctx, userID)
	}

	usr, err := s.byID.GetOrFetch(ctx, idKey(userID), fetch)
	if err != nil {
		return userbus.User{}, fmt.Errorf("getorfetch: %w", err)
	}

	return usr, nil
}

// QueryByEmail gets the specified user from the cache or the database.
func (s *Store) QueryByEmail(ctx context.Context, email mail.Address) (userbus.User, error) {
	fetch := func(ctx context.Context) (userbus.User, error) {
		return s.storer.QueryByEmail(ctx, email)
	}

	usr, err := s.byEmail.GetOrFetch(ctx, emailKey(email), fetch)
	if err != nil {
		return userbus.User{}, fmt.Errorf("getorfetch: %w", err)
	}

	return usr, nil
}

func idKey(userID uuid.UUID) string {
	return "user:" + userID.String()
}

func emailKey(email mail.Address) string {
	return "email:" + email.Address
}
