// Package auditdb contains audit trail related CRUD functionality.
package auditdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/nexorahq/nexora/business/domain/auditbus"
	"github.com/nexorahq/nexora/business/sdk/sqldb"
	"github.com/nexorahq/nexora/foundation/logger"
)

// Store manages the set of APIs for audit database access.
type Store struct {
	log *logger.Logger
	db  sqlx.ExtContext
}

// NewStore constructs the api for data access.
func NewStore(log *logger.Logger, db *sqlx.DB) *Store {
	return &Store{
		log: log,
		db:  db,
	}
}

// Create inserts a new audit event.
func (s *Store) Create(ctx context.Context, evt auditbus.Event) error {
	dbEvt, err := toDBEvent(evt)
	if err != nil {
		return err
	}

	const q = `
	INSERT INTO "public"."audit_event"
		(event_id, user_id, action, company_id, detail, date)
	VALUES
		(:event_id, :user_id, :action, :company_id, :detail, :date)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, dbEvt); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

type eventDB struct {
	ID        string          `db:"event_id"`
	UserID    string          `db:"user_id"`
	Action    string          `db:"action"`
	CompanyID sql.NullInt64   `db:"company_id"`
	Detail    json.RawMessage `db:"detail"`
	Date      time.Time       `db:"date"`
}

func toDBEvent(bus auditbus.Event) (eventDB, error) {
	detail, err := json.Marshal(bus.Detail)
	if err != nil {
		return eventDB{}, fmt.Errorf("marshal detail: %w", err)
	}

	db := eventDB{
		ID:     bus.ID.String(),
		UserID: bus.UserID.String(),
		Action: bus.Action.String(),
		Detail: detail,
		Date:   bus.Date.UTC(),
	}

	if bus.CompanyID != nil {
		db.CompanyID = sql.NullInt64{Int64: *bus.CompanyID, Valid: true}
	}

	return db, nil
}
