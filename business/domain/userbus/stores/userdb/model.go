package userdb

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/nexorahq/nexora/business/domain/userbus"
	"github.com/nexorahq/nexora/business/types/name"
	"github.com/nexorahq/nexora/business/types/phone"
)

type userDB struct {
	ID           uuid.UUID `db:"user_id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash []byte    `db:"password_hash"`
	Phone        *string   `db:"phone"`
	Enabled      bool      `db:"enabled"`
	DateCreated  time.Time `db:"date_created"`
	DateUpdated  time.Time `db:"date_updated"`
}

func toDBUser(bus userbus.User) userDB {
	db := userDB{
		ID:           bus.ID,
		Name:         bus.Name.String(),
		Email:        bus.Email.Address,
		PasswordHash: bus.PasswordHash,
		Enabled:      bus.Enabled,
		DateCreated:  bus.DateCreated.UTC(),
		DateUpdated:  bus.DateUpdated.UTC(),
	}

	if bus.Phone.Valid() {
		v := bus.Phone.String()
		db.Phone = &v
	}

	return db
}

func toBusUser(db userDB) (userbus.User, error) {
	nme, err := name.Parse(db.Name)
	if err != nil {
		return userbus.User{}, fmt.Errorf("parse name: %w", err)
	}

	addr, err := mail.ParseAddress(db.Email)
	if err != nil {
		return userbus.User{}, fmt.Errorf("parse email: %w", err)
	}

	var ph phone.Null
	if db.Phone != nil {
		ph, err = phone.ParseNull(*db.Phone)
		if err != nil {
			return userbus.User{}, fmt.Errorf("parse phone: %w", err)
		}
	}

	return userbus.User{
		ID:           db.ID,
		Name:         nme,
		Email:        *addr,
		PasswordHash: db.PasswordHash,
		Phone:        ph,
		Enabled:      db.Enabled,
		DateCreated:  db.DateCreated.In(time.Local),
		DateUpdated:  db.DateUpdated.In(time.Local),
	}, nil
}

func toBusUsers(dbs []userDB) ([]userbus.User, error) {
	bus := make([]userbus.User, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusUser(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
