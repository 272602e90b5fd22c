package entity

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event holds a deduplicated set of member user IDs in UsuariosApuntados.
// The field is persisted as an array but carries set semantics: no
// duplicates, order not meaningful. Mutation goes through the
// repository's add/remove primitives, never whole-array replacement.
type Event struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name              string               `bson:"name" json:"name"`
	Schedule          string               `bson:"schedule" json:"schedule"`
	Address           string               `bson:"address,omitempty" json:"address,omitempty"`
	UsuariosApuntados []primitive.ObjectID `bson:"usuariosApuntados" json:"usuariosApuntados"`
}

// EventView is an Event with its membership expanded to public user
// pairs. Members whose user record no longer exists are omitted.
type EventView struct {
	ID                primitive.ObjectID `bson:"_id" json:"id"`
	Name              string             `bson:"name" json:"name"`
	Schedule          string             `bson:"schedule" json:"schedule"`
	Address           string             `bson:"address,omitempty" json:"address,omitempty"`
	UsuariosApuntados []MemberInfo       `bson:"usuariosApuntados" json:"usuariosApuntados"`
}

// EventReport is one row of the reporting view: the event's own fields,
// the size of the raw membership set, and the resolved member pairs.
// UsuariosCount counts membership entries whether or not they resolve.
type EventReport struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Schedule      string             `bson:"schedule" json:"schedule"`
	Address       string             `bson:"address,omitempty" json:"address,omitempty"`
	UsuariosCount int                `bson:"usuariosCount" json:"usuariosCount"`
	UsuariosInfo  []MemberInfo       `bson:"usuariosInfo" json:"usuariosInfo"`
}
