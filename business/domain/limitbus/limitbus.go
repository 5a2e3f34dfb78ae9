// Package limitbus enforces the per-category resource quotas a company's
// subscription grants.
//
// Admission is check-then-act: the active count is read, compared against the
// quota, and the caller inserts afterwards in a separate statement. Two
// concurrent creations can both observe count = max-1 and both be admitted,
// overshooting the quota by one. That window is accepted: quotas are a
// billing boundary, not an integrity constraint, and the overshoot is bounded
// by the number of in-flight requests.
package limitbus

import (
	"context"
	"errors"
	"fmt"

	"github.com/nexorahq/nexora/business/domain/companybus"
	"github.com/nexorahq/nexora/business/domain/scopebus"
	"github.com/nexorahq/nexora/business/types/category"
	"github.com/nexorahq/nexora/business/types/limit"
	"github.com/nexorahq/nexora/foundation/logger"
)

// Set of error variables for admission decisions.
var (
	ErrLimitExceeded   = errors.New("subscription limit reached")
	ErrCompanyInactive = errors.New("company is suspended")
)

// Decision is the outcome of a quota check.
type Decision struct {
	Allowed   bool
	Suspended bool
	Category  category.Category
	Current   int
	Limit     limit.Limit

	// Remaining counts the slots left after this creation is admitted, not
	// the slots free at check time. Zero for an unlimited quota.
	Remaining int

	Message string
}

// Storer defines the behavior required by the limitbus to interact with the
// database.
type Storer interface {
	CountActive(ctx context.Context, companyID int64, cat category.Category) (int, error)
}

// Core manages the set of APIs for quota enforcement.
type Core struct {
	log        *logger.Logger
	companyBus *companybus.Core
	storer     Storer
}

// NewCore constructs a core for quota enforcement.
func NewCore(log *logger.Logger, companyBus *companybus.Core, storer Storer) *Core {
	return &Core{
		log:        log,
		companyBus: companyBus,
		storer:     storer,
	}
}

// Check determines whether one more entity of the category may be created
// under the scope's company. An unscoped platform operator is always
// admitted; a suspended or deleted company always refuses.
func (c *Core) Check(ctx context.Context, scope scopebus.TenantScope, cat category.Category) (Decision, error) {
	companyID, ok := scope.Company()
	if !ok {
		if scope.IsPlatform() {
			return Decision{Allowed: true, Category: cat, Limit: limit.Unlimited}, nil
		}
		return Decision{}, fmt.Errorf("scope has no company: userID[%s]", scope.UserID)
	}

	comp, err := c.companyBus.QueryByID(ctx, companyID)
	if err != nil {
		return Decision{}, fmt.Errorf("querybyid: companyID[%d]: %w", companyID, err)
	}

	if !comp.Active || comp.Deleted() {
		return Decision{
			Suspended: true,
			Category:  cat,
			Message:   fmt.Sprintf("company %q is suspended and cannot add new %s", comp.Name.String(), cat.Plural()),
		}, nil
	}

	lim := comp.Limits.For(cat)
	if lim.IsUnlimited() {
		return Decision{Allowed: true, Category: cat, Limit: lim}, nil
	}

	current, err := c.storer.CountActive(ctx, companyID, cat)
	if err != nil {
		return Decision{}, fmt.Errorf("countactive: companyID[%d] category[%s]: %w", companyID, cat, err)
	}

	d := Decision{
		Category: cat,
		Current:  current,
		Limit:    lim,
	}

	if !lim.Allows(current) {
		d.Message = fmt.Sprintf("your %s plan allows %d %s and you already have %d active; upgrade your plan to add more",
			comp.Plan, lim.Max(), cat.Noun(lim.Max()), current)
		return d, nil
	}

	d.Allowed = true
	d.Remaining, _ = lim.Remaining(current + 1)

	return d, nil
}

// Enforce runs Check and converts a refusal into an error carrying the
// decision's message.
func (c *Core) Enforce(ctx context.Context, scope scopebus.TenantScope, cat category.Category) (Decision, error) {
	d, err := c.Check(ctx, scope, cat)
	if err != nil {
		return Decision{}, err
	}

	if !d.Allowed {
		if d.Suspended {
			return d, fmt.Errorf("%s: %w", d.Message, ErrCompanyInactive)
		}
		return d, fmt.Errorf("%s: %w", d.Message, ErrLimitExceeded)
	}

	return d, nil
}
