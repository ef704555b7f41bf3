package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// IsValidID reports whether id is a 24 character hex object id.
func IsValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}
