package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Package is a bookable tour offering. Read-only through the API.
type Package struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	TourType    string             `bson:"tourType" json:"tourType"`
	Price       float64            `bson:"price" json:"price"`
	Images      []string           `bson:"images,omitempty" json:"images,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	TourPlan    []string           `bson:"tourPlan,omitempty" json:"tourPlan,omitempty"`
}

// Guide is a tour guide profile. Read-only through the API.
type Guide struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name         string             `bson:"name" json:"name"`
	PhotoURL     string             `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	Specialty    string             `bson:"specialty,omitempty" json:"specialty,omitempty"`
	ContactEmail string             `bson:"contactEmail,omitempty" json:"contactEmail,omitempty"`
}

// Story is a traveler-authored trip report. AuthorEmail is stamped from the
// verified token, never taken from the request body.
type Story struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Content     string             `bson:"content" json:"content"`
	AuthorName  string             `bson:"authorName,omitempty" json:"authorName,omitempty"`
	AuthorEmail string             `bson:"authorEmail" json:"authorEmail"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}
