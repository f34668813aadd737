package validators

import "go.mongodb.org/mongo-driver/bson"

var PaymentTransactionValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"amount",
			"method",
			"status",
			"date",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"amount": bson.M{
				"bsonType":         "number",
				"exclusiveMinimum": true,
				"minimum":          0,
			},

			"method": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 50,
			},

			"status": bson.M{
				"bsonType":  "string",
				"maxLength": 50,
			},

			"date": bson.M{
				"bsonType": "date",
			},
		},
	},
}

var PaymentPreferenceValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"method",
			"rate",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"method": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 50,
			},

			"rate": bson.M{
				"bsonType":         "number",
				"exclusiveMinimum": true,
				"minimum":          0,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
