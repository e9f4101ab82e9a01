package models

import (
	"strings"

	"gorm.io/datalayer"
	"gorm.io/datalayer/utils"
)

// UserMeta users table
var UserMeta = &datalayer.Metadata{
	Name:       "User",
	Required:   []string{"first_name", "email"},
	Timestamps: true,
	Accessors: map[string]datalayer.Accessor{
		"fullName": func(e *datalayer.Entity) interface{} {
			return strings.TrimSpace(utils.ToString(e.Value("first_name")) + " " + utils.ToString(e.Value("last_name")))
		},
	},
}

// User application account
type User struct {
	*datalayer.Entity
}

// NewUser creates an empty user
func NewUser(db *datalayer.DB) *User {
	return &User{Entity: db.Entity(UserMeta)}
}

// WithAddresses selects every user joined with its addresses, users
// without address included
func (u *User) WithAddresses() *datalayer.Entity {
	return u.Select("users.id, users.first_name, users.last_name, users.email, addresses.street, addresses.city").
		Join("addresses", "addresses.user_id", "=", "users.id", "left")
}

// Addresses addresses of the user
func (u *User) Addresses(db *datalayer.DB) ([]*Address, error) {
	if utils.IsBlank(u.Field("id")) {
		return nil, datalayer.ErrPrimaryKeyRequired
	}

	entities, err := db.Entity(AddressMeta).Select("*").Where("user_id", "=", u.Field("id")).Order("id").FetchAll()
	if err != nil {
		return nil, err
	}

	addresses := make([]*Address, len(entities))
	for idx, entity := range entities {
		addresses[idx] = &Address{Entity: entity}
	}
	return addresses, nil
}
