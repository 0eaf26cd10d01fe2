package repository

import (
	"medicamp_api/internal/domain/model"
	"medicamp_api/internal/platform/database"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const ViewPageSize = 10

// LookupOne left-outer joins the single document of `from` whose foreignField
// equals localField and flattens it into `as`. Rows without a match are kept
// with `as` missing.
func LookupOne(from, localField, foreignField, as string) []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: from},
			{Key: "localField", Value: localField},
			{Key: "foreignField", Value: foreignField},
			{Key: "as", Value: as},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$" + as},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}

// pageFacet splits the joined rows into one page and the filtered total.
func pageFacet(page int) bson.D {
	page = clampPage(page)
	return bson.D{{Key: "$facet", Value: bson.D{
		{Key: "data", Value: bson.A{
			bson.D{{Key: "$skip", Value: int64(page) * ViewPageSize}},
			bson.D{{Key: "$limit", Value: ViewPageSize}},
		}},
		{Key: "total", Value: bson.A{
			bson.D{{Key: "$count", Value: "count"}},
		}},
	}}}
}

func searchStage(field, search string) bson.D {
	return bson.D{{Key: "$match", Value: bson.D{{Key: field, Value: containsRegex(search)}}}}
}

// ParticipantViewPipeline joins participants with their camps. An empty
// q.Email lists every participant.
func ParticipantViewPipeline(q model.PageQuery) mongo.Pipeline {
	p := mongo.Pipeline{}
	if q.Email != "" {
		p = append(p, bson.D{{Key: "$match", Value: bson.D{{Key: "participantEmail", Value: q.Email}}}})
	}
	p = append(p, LookupOne(database.CampsCollection, "campId", "_id", "camp")...)
	if !IsBlankSearch(q.Search) {
		p = append(p, searchStage("camp.campName", q.Search))
	}
	p = append(p,
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "campId", Value: 1},
			{Key: "participantName", Value: 1},
			{Key: "participantEmail", Value: 1},
			{Key: "paymentStatus", Value: 1},
			{Key: "confirmationStatus", Value: 1},
			{Key: "campName", Value: "$camp.campName"},
			{Key: "campFees", Value: "$camp.campFees"},
			{Key: "location", Value: "$camp.location"},
			{Key: "date", Value: "$camp.date"},
			{Key: "healthcareProfessional", Value: "$camp.healthcareProfessional"},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: -1}}}},
		pageFacet(q.Page),
	)
	return p
}

// PaymentHistoryPipeline joins payments with their participant and, through
// it, the camp.
func PaymentHistoryPipeline(q model.PageQuery) mongo.Pipeline {
	p := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "email", Value: q.Email}}}},
	}
	p = append(p, LookupOne(database.ParticipantsCollection, "participantId", "_id", "participant")...)
	p = append(p, LookupOne(database.CampsCollection, "participant.campId", "_id", "camp")...)
	if !IsBlankSearch(q.Search) {
		p = append(p, searchStage("camp.campName", q.Search))
	}
	p = append(p,
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "participantId", Value: 1},
			{Key: "email", Value: 1},
			{Key: "campFees", Value: 1},
			{Key: "transactionId", Value: 1},
			{Key: "date", Value: 1},
			{Key: "campId", Value: "$participant.campId"},
			{Key: "paymentStatus", Value: "$participant.paymentStatus"},
			{Key: "confirmationStatus", Value: "$participant.confirmationStatus"},
			{Key: "campName", Value: "$camp.campName"},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: -1}}}},
		pageFacet(q.Page),
	)
	return p
}

// facetResult is the decoded shape of a pageFacet stage.
type facetResult[T any] struct {
	Data  []T `bson:"data"`
	Total []struct {
		Count int `bson:"count"`
	} `bson:"total"`
}

// toPage tolerates an empty aggregation result and an empty total array.
func toPage[T any](results []facetResult[T]) *model.Page[T] {
	page := &model.Page[T]{Items: []T{}}
	if len(results) == 0 {
		return page
	}
	if results[0].Data != nil {
		page.Items = results[0].Data
	}
	if len(results[0].Total) > 0 {
		page.Total = results[0].Total[0].Count
	}
	return page
}
