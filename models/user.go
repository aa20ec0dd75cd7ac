package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// CartItem is embedded in the user document. PriceSnapshot is the unit
// price at the moment the product first entered the cart and is never
// refreshed afterwards.
type CartItem struct {
	Product       primitive.ObjectID `bson:"product" json:"product"`
	Quantity      int                `bson:"quantity" json:"quantity"`
	PriceSnapshot float64            `bson:"priceSnapshot" json:"priceSnapshot"`
}

type User struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name      string               `bson:"name" json:"name"`
	Email     string               `bson:"email" json:"email"` // unique, stored lowercased
	Password  string               `bson:"password" json:"-"`  // bcrypt hash, never serialized
	Role      Role                 `bson:"role" json:"role"`
	Wishlist  []primitive.ObjectID `bson:"wishlist" json:"wishlist"`
	Cart      []CartItem           `bson:"cart" json:"cart"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt" json:"updatedAt"`
}
