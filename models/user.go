package models

import "time"

// User is the minimal account record the reservation core needs: a resolvable
// identity and a fallback email address for notifications. Registration and
// profile management live in separate tooling.
type User struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Role      string    `bson:"role" json:"role"` // customer, staff, admin
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
