package service

import (
	"go.mongodb.org/mongo-driver/bson"

	"shelterdb/internal/model"
)

// RescueType selects one of the rescue-training candidate profiles. Each
// profile is a breed membership + sex + age-week range over dogs, the query
// shape the idx_rescue_filters index is built for.
type RescueType string

const (
	RescueWater    RescueType = "water"
	RescueMountain RescueType = "mountain"
	RescueDisaster RescueType = "disaster"
)

type rescueProfile struct {
	breeds   []string
	sex      string
	minWeeks int
	maxWeeks int
}

var rescueProfiles = map[RescueType]rescueProfile{
	RescueWater: {
		breeds:   []string{"Labrador Retriever Mix", "Chesapeake Bay Retriever", "Newfoundland"},
		sex:      "Intact Female",
		minWeeks: 26,
		maxWeeks: 156,
	},
	RescueMountain: {
		breeds:   []string{"German Shepherd", "Alaskan Malamute", "Old English Sheepdog", "Siberian Husky", "Rottweiler"},
		sex:      "Intact Male",
		minWeeks: 26,
		maxWeeks: 156,
	},
	RescueDisaster: {
		breeds:   []string{"Doberman Pinscher", "German Shepherd", "Golden Retriever", "Bloodhound", "Rottweiler"},
		sex:      "Intact Male",
		minWeeks: 20,
		maxWeeks: 300,
	},
}

// RescueQuery builds the filter document for a rescue profile.
func RescueQuery(t RescueType) (bson.M, error) {
	p, ok := rescueProfiles[t]
	if !ok {
		return nil, ErrUnknownRescueType
	}
	return bson.M{
		model.FieldAnimalType:     "Dog",
		model.FieldBreed:          bson.M{"$in": p.breeds},
		model.FieldSexUponOutcome: p.sex,
		model.FieldAgeUponOutcomeInWeeks: bson.M{
			"$gte": p.minWeeks,
			"$lte": p.maxWeeks,
		},
	}, nil
}
