package models

import (
	"time"

	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Slug        string             `bson:"slug" json:"slug"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"` // never negative
	Stock       int                `bson:"stock" json:"stock"` // never negative
	Images      []string           `bson:"images" json:"images"`
	Category    primitive.ObjectID `bson:"category" json:"category"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`

	// CategoryDoc is filled by an explicit post-read fetch, never stored.
	CategoryDoc *Category `bson:"-" json:"categoryDoc,omitempty"`
}

// Slugify derives the URL-safe slug for a display name. Lowercase and
// strict: every character outside [a-z0-9-] is dropped or transliterated.
func Slugify(name string) string {
	return slug.Make(name)
}
