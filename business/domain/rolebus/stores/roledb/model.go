package roledb

import (
	"fmt"

	"github.com/nexorahq/nexora/business/domain/rolebus"
	"github.com/nexorahq/nexora/business/types/rolelevel"
)

type roleDB struct {
	ID    int    `db:"role_id"`
	Name  string `db:"name"`
	Level int    `db:"level"`
	Type  string `db:"type"`
}

func toBusRole(db roleDB) (rolebus.Role, error) {
	level, err := rolelevel.Parse(db.Level)
	if err != nil {
		return rolebus.Role{}, fmt.Errorf("parse level: %w", err)
	}

	return rolebus.Role{
		ID:    db.ID,
		Name:  db.Name,
		Level: level,
		Type:  db.Type,
	}, nil
}

func toBusRoles(dbs []roleDB) ([]rolebus.Role, error) {
	bus := make([]rolebus.Role, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusRole(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
