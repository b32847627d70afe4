package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Course is the single document type stored in the "courses" collection.
//
// Description is a pointer so an absent description renders as JSON null.
// Timestamps are kept at millisecond precision to match what MongoDB stores.
type Course struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description *string            `bson:"description,omitempty" json:"description"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// CourseTitleMaxLen and CourseDescriptionMaxLen bound the text fields.
const (
	CourseTitleMaxLen       = 200
	CourseDescriptionMaxLen = 5000
)
