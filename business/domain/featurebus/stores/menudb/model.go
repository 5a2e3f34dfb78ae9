package menudb

import (
	"fmt"

	"github.com/nexorahq/nexora/business/domain/featurebus"
	"github.com/nexorahq/nexora/business/types/module"
)

type menuDB struct {
	ID       int64  `db:"menu_id"`
	Name     string `db:"name"`
	Path     string `db:"path"`
	Icon     string `db:"icon"`
	Module   string `db:"module"`
	Position int    `db:"position"`
}

func toBusMenu(db menuDB) (featurebus.Menu, error) {
	mod, err := module.Parse(db.Module)
	if err != nil {
		return featurebus.Menu{}, fmt.Errorf("parse module: %w", err)
	}

	return featurebus.Menu{
		ID:       db.ID,
		Name:     db.Name,
		Path:     db.Path,
		Icon:     db.Icon,
		Module:   mod,
		Position: db.Position,
	}, nil
}

func toBusMenus(dbs []menuDB) ([]featurebus.Menu, error) {
	bus := make([]featurebus.Menu, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusMenu(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
