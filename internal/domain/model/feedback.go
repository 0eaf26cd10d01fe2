package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Feedback struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	CampID    bson.ObjectID `bson:"campId" json:"campId"`
	Name      string        `bson:"name,omitempty" json:"name,omitempty"`
	Email     string        `bson:"email" json:"email"`
	Photo     string        `bson:"photo,omitempty" json:"photo,omitempty"`
	Rating    int           `bson:"rating" json:"rating"`
	Comment   string        `bson:"comment" json:"comment"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
}
