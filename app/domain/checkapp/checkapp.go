// Package checkapp provides the application layer for service health checks.
package checkapp

import (
	"context"
	"net/http"
	"os"
	"runtime"

	"github.com/jmoiron/sqlx"
	"github.com/nexorahq/nexora/app/sdk/errs"
	"github.com/nexorahq/nexora/business/sdk/sqldb"
	"github.com/nexorahq/nexora/business/sdk/web"
	"github.com/nexorahq/nexora/foundation/logger"
)

type app struct {
	build string
	log   *logger.Logger
	db    *sqlx.DB
}

func newApp(build string, log *logger.Logger, db *sqlx.DB) *app {
	return &app{
		build: build,
		log:   log,
		db:    db,
	}
}

// readiness checks if the database is ready and will fail the check if not.
// Orchestrators use this to decide whether to route traffic to the instance.
func (a *app) readiness(ctx context.Context, _ *http.Request) web.Encoder {
	if err := sqldb.StatusCheck(ctx, a.db); err != nil {
		a.log.Info(ctx, "readiness failure", "ERROR", err)
		return errs.New(errs.Internal, err)
	}

	return Info{Status: "OK"}
}

// liveness returns simple status info about the running instance.
// Orchestrators restart the instance when this check fails.
func (a *app) liveness(_ context.Context, _ *http.Request) web.Encoder {
	host, err := os.Hostname()
	if err != nil {
		host = "unavailable"
	}

	info := Info{
		Status:     "up",
		Build:      a.build,
		Host:       host,
		GoVersion:  runtime.Version(),
		NumCPU:     runtime.NumCPU(),
		GOMAXPROCS: runtime.GOMAXPROCS(0),
	}

	return info
}
