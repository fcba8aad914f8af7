package validators

import "go.mongodb.org/mongo-driver/bson"

// BookingValidator mirrors model.Booking. Only type shape is enforced; the
// service owns the remaining input rules.
var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"email",
			"destination",
			"date",
			"travelers",
		},
		"additionalProperties": false,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType": "string",
			},

			"email": bson.M{
				"bsonType": "string",
			},

			"destination": bson.M{
				"bsonType": "string",
			},

			"date": bson.M{
				"bsonType": "string",
			},

			"travelers": bson.M{
				"bsonType": []string{"int", "long"},
			},
		},
	},
}
