// Command admin provides bootstrap operations that should not go through the
// public API: creating the first users, onboarding companies and granting
// role assignments.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"
	"github.com/nexorahq/nexora/business/domain/companybus"
	"github.com/nexorahq/nexora/business/domain/companybus/stores/companydb"
	"github.com/nexorahq/nexora/business/domain/scopebus"
	"github.com/nexorahq/nexora/business/domain/scopebus/stores/scopedb"
	"github.com/nexorahq/nexora/business/domain/userbus"
	"github.com/nexorahq/nexora/business/domain/userbus/stores/usercache"
	"github.com/nexorahq/nexora/business/domain/userbus/stores/userdb"
	"github.com/nexorahq/nexora/business/sdk/sqldb"
	"github.com/nexorahq/nexora/business/types/limit"
	"github.com/nexorahq/nexora/business/types/module"
	"github.com/nexorahq/nexora/business/types/name"
	"github.com/nexorahq/nexora/business/types/password"
	"github.com/nexorahq/nexora/business/types/phone"
	"github.com/nexorahq/nexora/business/types/plan"
	"github.com/nexorahq/nexora/foundation/logger"
)

type Config struct {
	DB struct {
		User         string `envconfig:"DB_USER" default:"postgres"`
		Password     string `envconfig:"DB_PASSWORD" default:"postgres"`
		Host         string `envconfig:"DB_HOST" default:"localhost"`
		Name         string `envconfig:"DB_NAME" default:"nexora"`
		MaxIdleConns int    `envconfig:"DB_MAX_IDLE_CONNS" default:"0"`
		MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"0"`
		DisableTLS   bool   `envconfig:"DB_DISABLE_TLS" default:"true"`
	}
}

func main() {
	log := logger.New(os.Stdout, logger.LevelInfo, "ADMIN-TOOL", nil)
	ctx := context.Background()

	if err := run(ctx, log); err != nil {
		log.Error(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return fmt.Errorf("processing config: %w", err)
	}

	db, err := sqldb.Open(sqldb.Config{
		User:         cfg.DB.User,
		Password:     cfg.DB.Password,
		Host:         cfg.DB.Host,
		Name:         cfg.DB.Name,
		MaxIdleConns: cfg.DB.MaxIdleConns,
		MaxOpenConns: cfg.DB.MaxOpenConns,
		DisableTLS:   cfg.DB.DisableTLS,
	})
	if err != nil {
		return fmt.Errorf("connecting to db: %w", err)
	}
	defer db.Close()

	userBus := userbus.NewCore(log, usercache.NewStore(log, userdb.NewStore(log, db), time.Minute))
	companyBus := companybus.NewCore(log, companydb.NewStore(log, db))
	scopeBus := scopebus.NewCore(log, scopedb.NewStore(log, db))

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: create-user, create-company, assign-role, revoke-roles")
		return nil
	}

	switch os.Args[1] {
	case "create-user":
		return runCreateUser(ctx, userBus, os.Args[2:])
	case "create-company":
		return runCreateCompany(ctx, companyBus, os.Args[2:])
	case "assign-role":
		return runAssignRole(ctx, scopeBus, os.Args[2:])
	case "revoke-roles":
		return runRevokeRoles(ctx, scopeBus, os.Args[2:])
	default:
		return fmt.Errorf("unknown command: %s", os.Args[1])
	}
}

func runCreateUser(ctx context.Context, ub *userbus.Core, args []string) error {
	cmd := flag.NewFlagSet("create-user", flag.ExitOnError)
	emailStr := cmd.String("email", "", "User email (Required)")
	passStr := cmd.String("password", "", "User password (Required)")
	nameStr := cmd.String("name", "", "User full name (Required)")
	cmd.Parse(args)

	if *emailStr == "" || *passStr == "" || *nameStr == "" {
		cmd.PrintDefaults()
		return fmt.Errorf("missing required fields")
	}

	n, err := name.Parse(*nameStr)
	if err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	p, err := password.Parse(*passStr)
	if err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}

	newUser := userbus.NewUser{
		Name:     n,
		Email:    mail.Address{Address: *emailStr},
		Password: p,
		Phone:    phone.Null{},
	}

	usr, err := ub.Create(ctx, newUser)
	if err != nil {
		return fmt.Errorf("create user failed: %w", err)
	}

	fmt.Printf("\nSUCCESS: User created!\nID: %s\nEmail: %s\n", usr.ID, usr.Email.Address)
	return nil
}

func runCreateCompany(ctx context.Context, cb *companybus.Core, args []string) error {
	cmd := flag.NewFlagSet("create-company", flag.ExitOnError)
	nameStr := cmd.String("name", "", "Company name (Required)")
	planStr := cmd.String("plan", "TRIAL", "Subscription plan")
	modulesStr := cmd.String("modules", "CORE", "Comma separated module list")
	maxBranches := cmd.Int("max-branches", 0, "Branch ceiling, 0 for unlimited")
	maxEmployees := cmd.Int("max-employees", 0, "Employee ceiling, 0 for unlimited")
	cmd.Parse(args)

	if *nameStr == "" {
		cmd.PrintDefaults()
		return fmt.Errorf("missing required fields")
	}

	n, err := name.Parse(*nameStr)
	if err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	pln, err := plan.Parse(*planStr)
	if err != nil {
		return fmt.Errorf("invalid plan: %w", err)
	}

	mods, err := module.ParseSet(strings.Split(*modulesStr, ","))
	if err != nil {
		return fmt.Errorf("invalid modules: %w", err)
	}

	branchLim, err := limit.Parse(*maxBranches)
	if err != nil {
		return fmt.Errorf("invalid branch limit: %w", err)
	}

	employeeLim, err := limit.Parse(*maxEmployees)
	if err != nil {
		return fmt.Errorf("invalid employee limit: %w", err)
	}

	nc := companybus.NewCompany{
		Name:    n,
		Plan:    pln,
		Modules: mods,
		Limits: companybus.Limits{
			Users:        limit.Unlimited,
			Branches:     branchLim,
			Employees:    employeeLim,
			Departments:  limit.Unlimited,
			Designations: limit.Unlimited,
		},
	}

	comp, err := cb.Create(ctx, nc)
	if err != nil {
		return fmt.Errorf("create company failed: %w", err)
	}

	fmt.Printf("\nSUCCESS: Company created!\nID: %d\nName: %s\nPlan: %s\n", comp.ID, comp.Name, comp.Plan)
	return nil
}

func runAssignRole(ctx context.Context, sb *scopebus.Core, args []string) error {
	cmd := flag.NewFlagSet("assign-role", flag.ExitOnError)
	userIDStr := cmd.String("user-id", "", "User UUID (Required)")
	roleID := cmd.Int("role-id", 0, "Role ID from the catalog (Required)")
	companyID := cmd.Int64("company-id", 0, "Company ID, omit for a platform role")
	branchID := cmd.Int64("branch-id", 0, "Branch ID, omit for company wide")
	cmd.Parse(args)

	if *userIDStr == "" || *roleID == 0 {
		cmd.PrintDefaults()
		return fmt.Errorf("missing required fields")
	}

	userID, err := uuid.Parse(*userIDStr)
	if err != nil {
		return fmt.Errorf("invalid user uuid: %w", err)
	}

	na := scopebus.NewAssignment{
		UserID: userID,
		RoleID: *roleID,
	}
	if *companyID != 0 {
		na.CompanyID = companyID
	}
	if *branchID != 0 {
		na.BranchID = branchID
	}

	if err := sb.Assign(ctx, na); err != nil {
		return fmt.Errorf("assign role failed: %w", err)
	}

	fmt.Printf("\nSUCCESS: Role %d assigned to user %s\n", *roleID, userID)
	return nil
}

func runRevokeRoles(ctx context.Context, sb *scopebus.Core, args []string) error {
	cmd := flag.NewFlagSet("revoke-roles", flag.ExitOnError)
	userIDStr := cmd.String("user-id", "", "User UUID (Required)")
	cmd.Parse(args)

	if *userIDStr == "" {
		cmd.PrintDefaults()
		return fmt.Errorf("missing required IDs")
	}

	userID, err := uuid.Parse(*userIDStr)
	if err != nil {
		return fmt.Errorf("invalid user uuid: %w", err)
	}

	if err := sb.Revoke(ctx, userID); err != nil {
		return fmt.Errorf("revoke roles failed: %w", err)
	}

	fmt.Printf("\nSUCCESS: All role assignments revoked for user %s\n", userID)
	return nil
}
