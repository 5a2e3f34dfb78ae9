package userbus

import (
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/nexorahq/nexora/business/types/name"
	"github.com/nexorahq/nexora/business/types/password"
	"github.com/nexorahq/nexora/business/types/phone"
)

// User represents a login identity. Authorization is not part of the user:
// what a user may do comes from their role assignments, resolved per request.
type User struct {
	ID           uuid.UUID
	Name         name.Name
	Email        mail.Address
	PasswordHash []byte
	Phone        phone.Null
	Enabled      bool
	DateCreated  time.Time
	DateUpdated  time.Time
}

// NewUser contains information needed to create a new user.
type NewUser struct {
	Name     name.Name
	Email    mail.Address
	Phone    phone.Null
	Password password.Password
}

// UpdateUser contains information needed to update a user.
type UpdateUser struct {
	Name     *name.Name
	Email    *mail.Address
	Phone    *phone.Null
	Password *password.Password
	Enabled  *bool
}
