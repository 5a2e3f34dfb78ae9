// Package scopebus resolves the tenant scope a request executes under.
//
// Resolution follows a fixed order because each step depends on the scope
// chosen by the previous one: load the user's active role assignments, pick
// the highest level assignment as the default, let a branch hint override the
// default, let a company hint override both, then attach the optional EMS
// profile. The resolver never reads the transport; scope hints arrive as
// plain arguments.
package scopebus

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/nexorahq/nexora/business/types/profile"
	"github.com/nexorahq/nexora/foundation/logger"
	"github.com/nexorahq/nexora/foundation/otel"
)

var (
	// ErrNoActiveAssignment means the user holds no active role assignment
	// and cannot act inside any tenant. Callers treat this as an
	// authentication failure.
	ErrNoActiveAssignment = errors.New("user has no active role assignment")
)

// Role types that link a scope to an EMS profile record.
const (
	roleTypeTutor   = "tutor"
	roleTypeStudent = "student"
	roleTypeManager = "manager"
)

// Storer defines the behavior required by the scopebus to interact with the
// database.
type Storer interface {
	QueryActiveAssignments(ctx context.Context, userID uuid.UUID) ([]RoleAssignment, error)
	QueryEmployeeID(ctx context.Context, userID uuid.UUID, companyID int64) (int64, error)
	QueryStudentID(ctx context.Context, userID uuid.UUID, companyID int64) (int64, error)
	CreateAssignment(ctx context.Context, na NewAssignment) error
	DeactivateAssignments(ctx context.Context, userID uuid.UUID) error
}

// Core manages the set of APIs for scope resolution.
type Core struct {
	storer Storer
	log    *logger.Logger
}

// NewCore constructs a core for scope resolution.
func NewCore(log *logger.Logger, storer Storer) *Core {
	return &Core{
		storer: storer,
		log:    log,
	}
}

// Resolve determines the single tenant scope the request should execute
// under. It fails with ErrNoActiveAssignment when the user holds no active
// assignment; any other store failure is wrapped and re-raised.
func (c *Core) Resolve(ctx context.Context, userID uuid.UUID, hints Hints) (TenantScope, error) {
	ctx, span := otel.AddSpan(ctx, "business.scopebus.resolve")
	defer span.End()

	asgs, err := c.storer.QueryActiveAssignments(ctx, userID)
	if err != nil {
		return TenantScope{}, fmt.Errorf("queryActiveAssignments: userID[%s]: %w", userID, err)
	}

	if len(asgs) == 0 {
		return TenantScope{}, ErrNoActiveAssignment
	}

	sortAssignments(asgs)

	selected := asgs[0]
	scoped := false

	// A branch hint selects the assignment for that branch even when another
	// assignment has a higher level.
	if hints.BranchID != nil {
		for _, a := range asgs {
			if a.BranchID != nil && *a.BranchID == *hints.BranchID {
				selected = a
				break
			}
		}
	}

	// A company hint wins over everything. A user holding an assignment in
	// that company switches to it; a platform admin may narrow to any
	// company without a pre-existing assignment; anyone else has the hint
	// ignored.
	if hints.CompanyID != nil {
		if a, found := assignmentForCompany(asgs, *hints.CompanyID); found {
			selected = a
			scoped = true
		} else if asgs[0].Role.Level.IsPlatform() {
			companyID := *hints.CompanyID
			scope := TenantScope{
				UserID:    userID,
				RoleLevel: asgs[0].Role.Level,
				RoleName:  asgs[0].Role.Name,
				RoleType:  asgs[0].Role.Type,
				CompanyID: &companyID,
				Scoped:    true,
			}
			c.attachProfile(ctx, &scope)
			return scope, nil
		}
	}

	scope := TenantScope{
		UserID:    userID,
		RoleLevel: selected.Role.Level,
		RoleName:  selected.Role.Name,
		RoleType:  selected.Role.Type,
		CompanyID: selected.CompanyID,
		BranchID:  selected.BranchID,
		Scoped:    scoped,
	}

	c.attachProfile(ctx, &scope)

	return scope, nil
}

// Assign grants a role to a user. Existing assignments stay active; a user
// may hold several at once.
func (c *Core) Assign(ctx context.Context, na NewAssignment) error {
	ctx, span := otel.AddSpan(ctx, "business.scopebus.assign")
	defer span.End()

	if err := c.storer.CreateAssignment(ctx, na); err != nil {
		return fmt.Errorf("createassignment: userID[%s] roleID[%d]: %w", na.UserID, na.RoleID, err)
	}

	return nil
}

// Revoke deactivates every assignment the user holds. Rows are kept for the
// audit trail, never removed.
func (c *Core) Revoke(ctx context.Context, userID uuid.UUID) error {
	ctx, span := otel.AddSpan(ctx, "business.scopebus.revoke")
	defer span.End()

	if err := c.storer.DeactivateAssignments(ctx, userID); err != nil {
		return fmt.Errorf("deactivateassignments: userID[%s]: %w", userID, err)
	}

	return nil
}

// attachProfile augments the scope with the linked EMS profile. Failures here
// are non-fatal: resolution already succeeded and a missing profile only
// degrades EMS features, so errors are logged and absorbed.
func (c *Core) attachProfile(ctx context.Context, scope *TenantScope) {
	switch {
	case scope.RoleType == roleTypeTutor:
		companyID, ok := scope.Company()
		if !ok {
			return
		}
		employeeID, err := c.storer.QueryEmployeeID(ctx, scope.UserID, companyID)
		if err != nil {
			c.log.Info(ctx, "scopebus: tutor profile lookup failed", "userID", scope.UserID, "companyID", companyID, "err", err)
			return
		}
		scope.Profile = &profile.Profile{Kind: profile.Tutor, ID: employeeID}

	case scope.RoleType == roleTypeStudent:
		companyID, ok := scope.Company()
		if !ok {
			return
		}
		studentID, err := c.storer.QueryStudentID(ctx, scope.UserID, companyID)
		if err != nil {
			c.log.Info(ctx, "scopebus: student profile lookup failed", "userID", scope.UserID, "companyID", companyID, "err", err)
			return
		}
		scope.Profile = &profile.Profile{Kind: profile.Student, ID: studentID}

	case scope.RoleType == roleTypeManager || scope.RoleLevel.IsCompanyAdmin():
		scope.Profile = &profile.Profile{Kind: profile.Manager}
	}
}

// sortAssignments orders assignments by level descending with a stable,
// deterministic tie break on company then branch so the default selection is
// reproducible across calls.
func sortAssignments(asgs []RoleAssignment) {
	sort.SliceStable(asgs, func(i, j int) bool {
		cmp := asgs[i].Role.Level.Compare(asgs[j].Role.Level)
		if cmp != 0 {
			return cmp > 0
		}

		ci, cj := int64Or(asgs[i].CompanyID, -1), int64Or(asgs[j].CompanyID, -1)
		if ci != cj {
			return ci < cj
		}

		return int64Or(asgs[i].BranchID, -1) < int64Or(asgs[j].BranchID, -1)
	})
}

func assignmentForCompany(asgs []RoleAssignment, companyID int64) (RoleAssignment, bool) {
	for _, a := range asgs {
		if a.CompanyID != nil && *a.CompanyID == companyID {
			return a, true
		}
	}

	return RoleAssignment{}, false
}

func int64Or(v *int64, def int64) int64 {
	if v == nil {
		return def
	}

	return *v
}
