package validators

import "go.mongodb.org/mongo-driver/bson"

var ReviewValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"reviewer_name",
			"question1",
			"question2",
			"question3",
			"rating",
			"review_text",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"reviewer_name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 100,
			},

			"question1": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 500,
			},

			"question2": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 500,
			},

			"question3": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 500,
			},

			"rating": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  5,
			},

			"review_text": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 2000,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
