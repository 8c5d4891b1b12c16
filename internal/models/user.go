// internal/models/user.go
package models

import (
	"time"
)

// User is the owner of a credit balance. Balances are whole credits; the
// stores never hold fractional values.
//
// ID is the store's key as an opaque string. Mongo ObjectIDs decode to their
// hex form.
type User struct {
	ID            string    `bson:"_id,omitempty" json:"id,omitempty"`
	Name          string    `bson:"name" json:"name"`
	Email         string    `bson:"email,omitempty" json:"email,omitempty"`
	CreditBalance int       `bson:"creditBalance" json:"creditBalance"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}
