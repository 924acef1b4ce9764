package mongostore

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hotel_finder/internal/domain"
)

// toBSON renders f as a find filter: one case-insensitive regex per field,
// OR-ed together when there is more than one field.
func toBSON(f domain.Filter) bson.M {
	if f.MatchAll() {
		return bson.M{}
	}
	re := primitive.Regex{Pattern: f.Pattern, Options: "i"}
	if len(f.Fields) == 1 {
		return bson.M{f.Fields[0]: re}
	}
	or := make(bson.A, 0, len(f.Fields))
	for _, fld := range f.Fields {
		or = append(or, bson.M{fld: re})
	}
	return bson.M{"$or": or}
}

// fromBSON converts a decoded document, exposing _id in hex form.
func fromBSON(m bson.M) domain.Document {
	d := make(domain.Document, len(m))
	for k, v := range m {
		d[k] = v
	}
	if oid, ok := m["_id"].(primitive.ObjectID); ok {
		d[domain.IDField] = oid.Hex()
	}
	return d
}
