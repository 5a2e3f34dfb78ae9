// Package mid provides app level middleware support.
package mid

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nexorahq/nexora/app/sdk/auth"
	"github.com/nexorahq/nexora/business/domain/featurebus"
	"github.com/nexorahq/nexora/business/domain/scopebus"
	"github.com/nexorahq/nexora/business/sdk/sqldb"
	"github.com/nexorahq/nexora/business/sdk/web"
)

func checkIsError(e web.Encoder) error {
	err, hasError := e.(error)
	if hasError {
		return err
	}

	return nil
}

// =============================================================================

type ctxKey int

const (
	claimKey ctxKey = iota + 1
	userIDKey
	trKey
	scopeKey
	accessKey
)

func setClaims(ctx context.Context, claims auth.Claims) context.Context {
	return context.WithValue(ctx, claimKey, claims)
}

// GetClaims returns the claims from the context.
func GetClaims(ctx context.Context) auth.Claims {
	v, ok := ctx.Value(claimKey).(auth.Claims)
	if !ok {
		return auth.Claims{}
	}
	return v
}

func setUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID returns the user id from the context.
func GetUserID(ctx context.Context) (uuid.UUID, error) {
	v, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok {
		return uuid.UUID{}, errors.New("user id not found in context")
	}

	return v, nil
}

func setScope(ctx context.Context, scope scopebus.TenantScope) context.Context {
	return context.WithValue(ctx, scopeKey, scope)
}

// GetScope returns the resolved tenant scope from the context.
func GetScope(ctx context.Context) (scopebus.TenantScope, error) {
	v, ok := ctx.Value(scopeKey).(scopebus.TenantScope)
	if !ok {
		return scopebus.TenantScope{}, errors.New("tenant scope not found in context")
	}

	return v, nil
}

func setAccess(ctx context.Context, access featurebus.Access) context.Context {
	return context.WithValue(ctx, accessKey, access)
}

// GetAccess returns the feature access view from the context.
func GetAccess(ctx context.Context) (featurebus.Access, error) {
	v, ok := ctx.Value(accessKey).(featurebus.Access)
	if !ok {
		return featurebus.Access{}, errors.New("feature access not found in context")
	}

	return v, nil
}

func setTran(ctx context.Context, tx sqldb.CommitRollbacker) context.Context {
	return context.WithValue(ctx, trKey, tx)
}

// GetTran retrieves the value that can manage a transaction.
func GetTran(ctx context.Context) (sqldb.CommitRollbacker, error) {
	v, ok := ctx.Value(trKey).(sqldb.CommitRollbacker)
	if !ok {
		return nil, errors.New("transaction not found in context")
	}

	return v, nil
}
