package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role represents the privilege level stored on a user record.
type Role string

const (
	RoleTraveler Role = "traveler"
	RoleGuide    Role = "guide"
	RoleAdmin    Role = "admin"

	// RoleNone is resolved for emails with no user record. It never
	// satisfies a role gate.
	RoleNone Role = ""
)

// Valid reports whether the role is one of the assignable values.
func (r Role) Valid() bool {
	switch r {
	case RoleTraveler, RoleGuide, RoleAdmin:
		return true
	}
	return false
}

// User is the persisted identity, keyed naturally by email.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	PhotoURL  string             `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Role      Role               `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
