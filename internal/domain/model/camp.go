package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// DateLayout is the on-disk format of Camp.Date. Lexical order equals
// chronological order, which the recent-camps query depends on.
const DateLayout = "2006-01-02"

type Camp struct {
	ID                     bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	CampName               string        `bson:"campName" json:"campName"`
	Slug                   string        `bson:"slug" json:"slug"`
	Image                  string        `bson:"image,omitempty" json:"image,omitempty"`
	CampFees               float64       `bson:"campFees" json:"campFees"`
	Date                   string        `bson:"date" json:"date"`
	Time                   string        `bson:"time,omitempty" json:"time,omitempty"`
	Location               string        `bson:"location" json:"location"`
	HealthcareProfessional string        `bson:"healthcareProfessional" json:"healthcareProfessional"`
	Description            string        `bson:"description,omitempty" json:"description,omitempty"`
	ParticipantCount       int           `bson:"participantCount" json:"participantCount"`
	CreatedAt              time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt              *time.Time    `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// CampListQuery carries the raw list parameters of GET /camps.
type CampListQuery struct {
	Home      bool
	Sort      string
	Search    string
	Page      int
	Available bool
}

// CampUpdate is a partial update; nil fields are left untouched.
type CampUpdate struct {
	CampName               *string  `json:"campName,omitempty"`
	Slug                   *string  `json:"-"`
	Image                  *string  `json:"image,omitempty"`
	CampFees               *float64 `json:"campFees,omitempty"`
	Date                   *string  `json:"date,omitempty"`
	Time                   *string  `json:"time,omitempty"`
	Location               *string  `json:"location,omitempty"`
	HealthcareProfessional *string  `json:"healthcareProfessional,omitempty"`
	Description            *string  `json:"description,omitempty"`
}
