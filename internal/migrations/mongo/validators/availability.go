package validators

import "go.mongodb.org/mongo-driver/bson"

var dayWindow = bson.M{
	"bsonType": "object",
	"required": []string{"available"},
	"properties": bson.M{
		"available": bson.M{
			"bsonType": "bool",
		},
		"start_time": bson.M{
			"bsonType": "string",
			"pattern":  "^([01][0-9]|2[0-3]):[0-5][0-9]$",
		},
		"end_time": bson.M{
			"bsonType": "string",
			"pattern":  "^([01][0-9]|2[0-3]):[0-5][0-9]$",
		},
	},
}

var AvailabilityValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"caregiver_id",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"caregiver_id": bson.M{
				"bsonType":  "string",
				"minLength": 24,
				"maxLength": 24,
			},

			"monday":    dayWindow,
			"tuesday":   dayWindow,
			"wednesday": dayWindow,
			"thursday":  dayWindow,
			"friday":    dayWindow,
			"saturday":  dayWindow,
			"sunday":    dayWindow,

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
