package models

import "time"

// Dog represents a dog owned by a client (or listed by the shop).
type Dog struct {
	ID      string `bson:"id" json:"id"`
	OwnerID string `bson:"owner_id,omitempty" json:"ownerId,omitempty"`
	Source  string `bson:"source" json:"source"` // "client" or "shop"

	Name   string `bson:"name" json:"name"`
	Breed  string `bson:"breed" json:"breed"`
	Age    string `bson:"age" json:"age"` // free text, e.g. "8 months"
	Gender string `bson:"gender" json:"gender"`
	Image  string `bson:"image" json:"image"` // reference to externally stored image

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
