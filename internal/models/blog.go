package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// TypeSnapshot is the copy of a Type stored inside a Blog at write time.
// Renaming or deleting the Type later does not touch existing blogs.
type TypeSnapshot struct {
	ID   primitive.ObjectID `bson:"_id" json:"_id"`
	Name string             `bson:"name" json:"name"`
}

// Blog is a single post.
type Blog struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title   string             `bson:"title" json:"title"`
	Type    TypeSnapshot       `bson:"type" json:"type"`
	Content string             `bson:"content" json:"content"`
	Author  string             `bson:"author" json:"author"`
}
