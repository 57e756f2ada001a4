package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Type is a blog category.
type Type struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name string             `bson:"name" json:"name"`
}

// Snapshot copies the type as it is right now for embedding in a blog.
func (t Type) Snapshot() TypeSnapshot {
	return TypeSnapshot{ID: t.ID, Name: t.Name}
}
