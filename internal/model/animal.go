package model

// Animal outcome documents are schemaless; these are the conventional field
// names carried by the dataset. Nothing enforces their presence.
const (
	FieldRecNum                = "rec_num"
	FieldAnimalType            = "animal_type"
	FieldBreed                 = "breed"
	FieldSexUponOutcome        = "sex_upon_outcome"
	FieldAgeUponOutcomeInWeeks = "age_upon_outcome_in_weeks"
	FieldLocationLat           = "location_lat"
	FieldLocationLong          = "location_long"
	FieldPhotoKey              = "photo_key"
)

// BreedCount is one row of the breed aggregation: a breed and how many
// matching documents carry it.
type BreedCount struct {
	Breed string `json:"breed" bson:"_id"`
	Count int64  `json:"count" bson:"count"`
}
