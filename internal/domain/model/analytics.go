package model

import "go.mongodb.org/mongo-driver/v2/bson"

type CampFeedbackCount struct {
	CampID   bson.ObjectID `bson:"_id" json:"campId"`
	CampName *string       `bson:"campName" json:"campName"`
	Count    int           `bson:"count" json:"count"`
}

type AnalyticsOverview struct {
	TotalParticipants int                 `json:"totalParticipants"`
	TotalRevenue      float64             `json:"totalRevenue"`
	TotalCamps        int                 `json:"totalCamps"`
	FeedbackCounts    []CampFeedbackCount `json:"feedbackCounts"`
}
