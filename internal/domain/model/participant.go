package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Participant struct {
	ID                 bson.ObjectID `bson:"_id,omitempty" json:"_id"`
	CampID             bson.ObjectID `bson:"campId" json:"campId"`
	ParticipantName    string        `bson:"participantName" json:"participantName"`
	ParticipantEmail   string        `bson:"participantEmail" json:"participantEmail"`
	Age                int           `bson:"age,omitempty" json:"age,omitempty"`
	Phone              string        `bson:"phone,omitempty" json:"phone,omitempty"`
	Gender             string        `bson:"gender,omitempty" json:"gender,omitempty"`
	EmergencyContact   string        `bson:"emergencyContact,omitempty" json:"emergencyContact,omitempty"`
	PaymentStatus      bool          `bson:"paymentStatus" json:"paymentStatus"`
	ConfirmationStatus bool          `bson:"confirmationStatus" json:"confirmationStatus"`
	CreatedAt          time.Time     `bson:"createdAt" json:"createdAt"`
}

// ParticipantView is a participant row joined with its camp. Camp fields are
// nil when the camp no longer exists.
type ParticipantView struct {
	ID                     bson.ObjectID `bson:"_id" json:"_id"`
	CampID                 bson.ObjectID `bson:"campId" json:"campId"`
	ParticipantName        string        `bson:"participantName" json:"participantName"`
	ParticipantEmail       string        `bson:"participantEmail" json:"participantEmail"`
	PaymentStatus          bool          `bson:"paymentStatus" json:"paymentStatus"`
	ConfirmationStatus     bool          `bson:"confirmationStatus" json:"confirmationStatus"`
	CampName               *string       `bson:"campName" json:"campName"`
	CampFees               *float64      `bson:"campFees" json:"campFees"`
	Location               *string       `bson:"location" json:"location"`
	Date                   *string       `bson:"date" json:"date"`
	HealthcareProfessional *string       `bson:"healthcareProfessional" json:"healthcareProfessional"`
}

// MaxPage is the highest zero-based page index any list view accepts.
// Larger requests are clamped to it and come back empty.
const MaxPage = 1_000_000

// PageQuery carries the parameters shared by joined list views.
type PageQuery struct {
	Email  string // empty means every participant
	Search string
	Page   int
}

// Page is one page of a joined view together with the filtered total.
type Page[T any] struct {
	Items []T `json:"data"`
	Total int `json:"total"`
}

// Registration reports both phases of a registration independently.
type Registration struct {
	Participant      *Participant `json:"participant"`
	CampFound        bool         `json:"campFound"`
	CounterIncreased bool         `json:"counterIncreased"`
}

// Cancellation reports both phases of a cancellation independently.
type Cancellation struct {
	Deleted          bool `json:"deleted"`
	CounterDecreased bool `json:"counterDecreased"`
}
