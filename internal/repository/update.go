package repository

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// UpdateSpec is a tagged update payload: either plain field assignments or a
// raw operator document. Making the distinction explicit at construction
// keeps runtime key inspection out of the repository itself.
type UpdateSpec struct {
	doc      bson.M
	operator bool
}

// SetFields builds a spec that assigns the given fields on matching
// documents (a "$set"-style update).
func SetFields(fields bson.M) UpdateSpec {
	return UpdateSpec{doc: fields}
}

// RawOperators builds a spec passed through verbatim as an operator
// document. The caller is responsible for it being a valid update.
func RawOperators(doc bson.M) UpdateSpec {
	return UpdateSpec{doc: doc, operator: true}
}

// InferUpdate keeps the loose call ergonomics of a single map argument:
// when any top-level key carries the operator prefix the document is taken
// verbatim, otherwise it is treated as field assignments.
func InferUpdate(doc bson.M) UpdateSpec {
	for k := range doc {
		if strings.HasPrefix(k, "$") {
			return RawOperators(doc)
		}
	}
	return SetFields(doc)
}

// IsZero reports whether the spec carries no payload.
func (u UpdateSpec) IsZero() bool {
	return len(u.doc) == 0
}

// Document renders the spec as the update document sent to the store.
func (u UpdateSpec) Document() bson.M {
	if u.operator {
		return u.doc
	}
	return bson.M{"$set": u.doc}
}
