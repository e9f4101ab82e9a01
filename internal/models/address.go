package models

import (
	"gorm.io/datalayer"
)

// AddressMeta addresses table
var AddressMeta = &datalayer.Metadata{
	Name:     "Address",
	Required: []string{"user_id", "street", "city"},
}

// Address postal address of a user
type Address struct {
	*datalayer.Entity
}

// NewAddress creates an empty address
func NewAddress(db *datalayer.DB) *Address {
	return &Address{Entity: db.Entity(AddressMeta)}
}

// User owner of the address
func (a *Address) User(db *datalayer.DB) (*User, error) {
	found, err := db.Entity(UserMeta).FindByID(a.Field("user_id"))
	if err != nil {
		return nil, err
	}
	return &User{Entity: found}, nil
}
