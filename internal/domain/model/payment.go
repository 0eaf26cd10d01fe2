package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Payment struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	ParticipantID bson.ObjectID `bson:"participantId" json:"participantId"`
	Email         string        `bson:"email" json:"email"`
	CampFees      float64       `bson:"campFees" json:"campFees"`
	TransactionID string        `bson:"transactionId" json:"transactionId"`
	Date          time.Time     `bson:"date" json:"date"`
}

// PaymentView is a payment joined with its participant and that
// participant's camp.
type PaymentView struct {
	ID                 bson.ObjectID  `bson:"_id" json:"_id"`
	ParticipantID      bson.ObjectID  `bson:"participantId" json:"participantId"`
	Email              string         `bson:"email" json:"email"`
	CampFees           float64        `bson:"campFees" json:"campFees"`
	TransactionID      string         `bson:"transactionId" json:"transactionId"`
	Date               time.Time      `bson:"date" json:"date"`
	CampID             *bson.ObjectID `bson:"campId" json:"campId"`
	CampName           *string        `bson:"campName" json:"campName"`
	PaymentStatus      *bool          `bson:"paymentStatus" json:"paymentStatus"`
	ConfirmationStatus *bool          `bson:"confirmationStatus" json:"confirmationStatus"`
}

type PaymentRecord struct {
	Payment       *Payment `json:"payment"`
	StatusUpdated bool     `json:"statusUpdated"`
}
