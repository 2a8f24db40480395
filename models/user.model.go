package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account in the system. The password is stored exactly
// as received and served back verbatim; login compares it by string
// equality. There is no hashing anywhere in this service.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"password"`
}
