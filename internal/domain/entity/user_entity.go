package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the aggregate root for the user domain.
// Password holds a bcrypt hash, never the caller's plaintext, and is kept
// out of JSON output entirely.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username string             `bson:"username" json:"username"`
	Gmail    string             `bson:"gmail" json:"gmail"`
	Password string             `bson:"password" json:"-"`
	Birthday time.Time          `bson:"birthday" json:"birthday"`
}

// MemberInfo is the public slice of a User surfaced inside event
// projections. Password and birthday never appear here.
type MemberInfo struct {
	Username string `bson:"username" json:"username"`
	Gmail    string `bson:"gmail" json:"gmail"`
}
