package repository

import (
	"regexp"
	"strings"

	"medicamp_api/internal/domain/model"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const (
	CampPageSize          = 10
	AvailableCampPageSize = 12
	HomeCampLimit         = 6
	RecentCampLimit       = 4
)

// campSearchFields are OR-matched by the free-text search on GET /camps.
var campSearchFields = []string{"campName", "healthcareProfessional", "location", "date"}

// IsBlankSearch reports whether a search value carries no filter. Browsers
// send the literal strings "null" and "undefined" for unset inputs.
func IsBlankSearch(search string) bool {
	s := strings.TrimSpace(search)
	return s == "" || s == "null" || s == "undefined"
}

// containsRegex matches search literally, case-insensitively, anywhere in a field.
func containsRegex(search string) bson.Regex {
	return bson.Regex{Pattern: regexp.QuoteMeta(strings.TrimSpace(search)), Options: "i"}
}

// CampSearchFilter returns an empty filter for blank searches.
func CampSearchFilter(search string) bson.D {
	if IsBlankSearch(search) {
		return bson.D{}
	}
	re := containsRegex(search)
	or := make(bson.A, 0, len(campSearchFields))
	for _, field := range campSearchFields {
		or = append(or, bson.D{{Key: field, Value: re}})
	}
	return bson.D{{Key: "$or", Value: or}}
}

// IsUnsetSort covers the placeholder labels the client sends when no sort
// option was picked.
func IsUnsetSort(label string) bool {
	switch strings.TrimSpace(label) {
	case "", "Sort", "undefined", "null":
		return true
	}
	return false
}

// CampSortSpec maps a sort label to a sort document. _id is always the last
// key so that page boundaries are stable.
func CampSortSpec(label string) bson.D {
	if IsUnsetSort(label) {
		return bson.D{{Key: "_id", Value: 1}}
	}

	key := "campName"
	switch label {
	case "Camp Fees":
		key = "campFees"
	case "Most Registered":
		key = "participantCount"
	}
	direction := -1
	if label == "A-Z Order" {
		direction = 1
	}
	return bson.D{{Key: key, Value: direction}, {Key: "_id", Value: 1}}
}

// CampPageBounds returns skip and limit for a zero-based page.
func CampPageBounds(page int, available bool) (skip, limit int64) {
	page = clampPage(page)
	limit = CampPageSize
	if available {
		limit = AvailableCampPageSize
	}
	return int64(page) * CampPageSize, limit
}

// clampPage keeps page within [0, model.MaxPage] so skip never overflows.
func clampPage(page int) int {
	if page < 0 {
		return 0
	}
	if page > model.MaxPage {
		return model.MaxPage
	}
	return page
}

func HomeCampsPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "participantCount", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: HomeCampLimit}},
	}
}

// RecentCampsFilter selects camps dated strictly before today (model.DateLayout).
func RecentCampsFilter(today string) bson.D {
	return bson.D{{Key: "date", Value: bson.D{{Key: "$lt", Value: today}}}}
}

func RecentCampsSort() bson.D {
	return bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}}
}

// campUpdateDoc builds the $set document for a partial camp update.
func campUpdateDoc(u model.CampUpdate) bson.D {
	set := bson.D{}
	add := func(key string, v interface{}) {
		set = append(set, bson.E{Key: key, Value: v})
	}
	if u.CampName != nil {
		add("campName", *u.CampName)
	}
	if u.Slug != nil {
		add("slug", *u.Slug)
	}
	if u.Image != nil {
		add("image", *u.Image)
	}
	if u.CampFees != nil {
		add("campFees", *u.CampFees)
	}
	if u.Date != nil {
		add("date", *u.Date)
	}
	if u.Time != nil {
		add("time", *u.Time)
	}
	if u.Location != nil {
		add("location", *u.Location)
	}
	if u.HealthcareProfessional != nil {
		add("healthcareProfessional", *u.HealthcareProfessional)
	}
	if u.Description != nil {
		add("description", *u.Description)
	}
	return set
}
