package scopebus_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/nexorahq/nexora/business/domain/rolebus"
	"github.com/nexorahq/nexora/business/domain/scopebus"
	"github.com/nexorahq/nexora/business/types/profile"
	"github.com/nexorahq/nexora/business/types/rolelevel"
	"github.com/nexorahq/nexora/foundation/logger"
)

func int64Ptr(v int64) *int64 {
	return &v
}

type fakeStorer struct {
	assignments []scopebus.RoleAssignment
	employeeID  int64
	studentID   int64
	queryErr    error

	created     []scopebus.NewAssignment
	deactivated []uuid.UUID
}

func (f *fakeStorer) QueryActiveAssignments(_ context.Context, _ uuid.UUID) ([]scopebus.RoleAssignment, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.assignments, nil
}

func (f *fakeStorer) QueryEmployeeID(_ context.Context, _ uuid.UUID, _ int64) (int64, error) {
	if f.employeeID == 0 {
		return 0, errors.New("no employee")
	}
	return f.employeeID, nil
}

func (f *fakeStorer) QueryStudentID(_ context.Context, _ uuid.UUID, _ int64) (int64, error) {
	if f.studentID == 0 {
		return 0, errors.New("no student")
	}
	return f.studentID, nil
}

func (f *fakeStorer) CreateAssignment(_ context.Context, na scopebus.NewAssignment) error {
	f.created = append(f.created, na)
	return nil
}

func (f *fakeStorer) DeactivateAssignments(_ context.Context, userID uuid.UUID) error {
	f.deactivated = append(f.deactivated, userID)
	return nil
}

func newCore(storer *fakeStorer) *scopebus.Core {
	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)
	return scopebus.NewCore(log, storer)
}

func role(id int, name string, level int, typ string) rolebus.Role {
	return rolebus.Role{
		ID:    id,
		Name:  name,
		Level: rolelevel.MustParse(level),
		Type:  typ,
	}
}

func Test_Resolve_NoAssignments(t *testing.T) {
	core := newCore(&fakeStorer{})

	_, err := core.Resolve(context.Background(), uuid.New(), scopebus.Hints{})
	if !errors.Is(err, scopebus.ErrNoActiveAssignment) {
		t.Fatalf("expected ErrNoActiveAssignment, got %v", err)
	}
}

func Test_Resolve_HighestLevelWins(t *testing.T) {
	userID := uuid.New()

	storer := &fakeStorer{
		assignments: []scopebus.RoleAssignment{
			{UserID: userID, CompanyID: int64Ptr(1), BranchID: int64Ptr(10), Role: role(3, "STAFF", 0, "staff"), Active: true},
			{UserID: userID, CompanyID: int64Ptr(2), Role: role(2, "COMPANY_ADMIN", 4, "manager"), Active: true},
		},
	}
	core := newCore(storer)

	scope, err := core.Resolve(context.Background(), userID, scopebus.Hints{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if !scope.RoleLevel.Equal(rolelevel.CompanyAdmin) {
		t.Errorf("role level: got %s, want %s", scope.RoleLevel, rolelevel.CompanyAdmin)
	}

	if got, _ := scope.Company(); got != 2 {
		t.Errorf("company: got %d, want 2", got)
	}

	if scope.Scoped {
		t.Error("default resolution must not mark the scope narrowed")
	}
}

func Test_Resolve_TieBreaksOnLowestCompany(t *testing.T) {
	userID := uuid.New()

	storer := &fakeStorer{
		assignments: []scopebus.RoleAssignment{
			{UserID: userID, CompanyID: int64Ptr(9), Role: role(5, "STAFF", 1, "staff"), Active: true},
			{UserID: userID, CompanyID: int64Ptr(4), Role: role(5, "STAFF", 1, "staff"), Active: true},
		},
	}
	core := newCore(storer)

	scope, err := core.Resolve(context.Background(), userID, scopebus.Hints{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if got, _ := scope.Company(); got != 4 {
		t.Errorf("company: got %d, want 4", got)
	}
}

func Test_Resolve_BranchHintOverridesDefault(t *testing.T) {
	userID := uuid.New()

	storer := &fakeStorer{
		assignments: []scopebus.RoleAssignment{
			{UserID: userID, CompanyID: int64Ptr(1), BranchID: int64Ptr(10), Role: role(3, "STAFF", 0, "staff"), Active: true},
			{UserID: userID, CompanyID: int64Ptr(2), Role: role(2, "COMPANY_ADMIN", 4, "manager"), Active: true},
		},
	}
	core := newCore(storer)

	scope, err := core.Resolve(context.Background(), userID, scopebus.Hints{BranchID: int64Ptr(10)})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if got, ok := scope.Branch(); !ok || got != 10 {
		t.Errorf("branch: got %d (%t), want 10", got, ok)
	}

	if !scope.RoleLevel.Equal(rolelevel.User) {
		t.Errorf("branch hint must select the branch assignment, got level %s", scope.RoleLevel)
	}
}

func Test_Resolve_CompanyHintSwitchesAssignment(t *testing.T) {
	userID := uuid.New()

	storer := &fakeStorer{
		assignments: []scopebus.RoleAssignment{
			{UserID: userID, CompanyID: int64Ptr(1), BranchID: int64Ptr(10), Role: role(3, "STAFF", 1, "staff"), Active: true},
			{UserID: userID, CompanyID: int64Ptr(2), Role: role(2, "COMPANY_ADMIN", 4, "manager"), Active: true},
		},
	}
	core := newCore(storer)

	scope, err := core.Resolve(context.Background(), userID, scopebus.Hints{CompanyID: int64Ptr(1)})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if got, _ := scope.Company(); got != 1 {
		t.Errorf("company: got %d, want 1", got)
	}

	if !scope.Scoped {
		t.Error("company hint must mark the scope narrowed")
	}

	if !scope.RoleLevel.Equal(rolelevel.BranchAdmin) {
		t.Errorf("role level: got %s, want the company's own assignment level", scope.RoleLevel)
	}
}

func Test_Resolve_PlatformNarrowsToAnyCompany(t *testing.T) {
	userID := uuid.New()

	storer := &fakeStorer{
		assignments: []scopebus.RoleAssignment{
			{UserID: userID, Role: role(1, "PLATFORM_ADMIN", 5, "manager"), Active: true},
		},
	}
	core := newCore(storer)

	scope, err := core.Resolve(context.Background(), userID, scopebus.Hints{CompanyID: int64Ptr(77)})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if got, ok := scope.Company(); !ok || got != 77 {
		t.Errorf("company: got %d (%t), want 77", got, ok)
	}

	if !scope.Scoped {
		t.Error("a narrowed platform scope must be marked scoped")
	}

	if scope.IsUnscopedPlatform() {
		t.Error("a narrowed platform scope must not bypass tenant filtering")
	}
}

func Test_Resolve_CompanyHintIgnoredForTenantUser(t *testing.T) {
	userID := uuid.New()

	assignments := []scopebus.RoleAssignment{
		{UserID: userID, CompanyID: int64Ptr(1), Role: role(3, "STAFF", 1, "staff"), Active: true},
	}
	core := newCore(&fakeStorer{assignments: assignments})

	scope, err := core.Resolve(context.Background(), userID, scopebus.Hints{CompanyID: int64Ptr(999)})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if got, _ := scope.Company(); got != 1 {
		t.Errorf("hint for a foreign company must be ignored, got company %d", got)
	}

	if scope.Scoped {
		t.Error("ignored hint must not mark the scope narrowed")
	}
}

func Test_Resolve_AttachesTutorProfile(t *testing.T) {
	userID := uuid.New()

	storer := &fakeStorer{
		assignments: []scopebus.RoleAssignment{
			{UserID: userID, CompanyID: int64Ptr(1), Role: role(4, "TUTOR", 0, "tutor"), Active: true},
		},
		employeeID: 55,
	}
	core := newCore(storer)

	scope, err := core.Resolve(context.Background(), userID, scopebus.Hints{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	if scope.Profile == nil {
		t.Fatal("expected a profile for a tutor role")
	}

	if !scope.Profile.Kind.Equal(profile.Tutor) {
		t.Errorf("profile kind: got %s, want %s", scope.Profile.Kind, profile.Tutor)
	}

	if scope.Profile.ID != 55 {
		t.Errorf("profile id: got %d, want 55", scope.Profile.ID)
	}
}

func Test_Resolve_ProfileFailureIsAbsorbed(t *testing.T) {
	userID := uuid.New()

	storer := &fakeStorer{
		assignments: []scopebus.RoleAssignment{
			{UserID: userID, CompanyID: int64Ptr(1), Role: role(4, "TUTOR", 0, "tutor"), Active: true},
		},
	}
	core := newCore(storer)

	scope, err := core.Resolve(context.Background(), userID, scopebus.Hints{})
	if err != nil {
		t.Fatalf("a missing profile must not fail resolution: %v", err)
	}

	if scope.Profile != nil {
		t.Errorf("expected no profile, got %+v", scope.Profile)
	}
}

func Test_AssignAndRevoke(t *testing.T) {
	userID := uuid.New()
	storer := &fakeStorer{}
	core := newCore(storer)

	na := scopebus.NewAssignment{
		UserID:    userID,
		RoleID:    3,
		CompanyID: int64Ptr(1),
	}

	if err := core.Assign(context.Background(), na); err != nil {
		t.Fatalf("Assign: %v", err)
	}

	if diff := cmp.Diff([]scopebus.NewAssignment{na}, storer.created); diff != "" {
		t.Errorf("created assignments mismatch (-want +got):\n%s", diff)
	}

	if err := core.Revoke(context.Background(), userID); err != nil {
		t.Fatalf("Revoke: %v", err)
	}

	if len(storer.deactivated) != 1 || storer.deactivated[0] != userID {
		t.Errorf("expected one deactivation for %s, got %v", userID, storer.deactivated)
	}
}
