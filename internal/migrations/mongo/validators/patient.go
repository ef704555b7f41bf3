package validators

import "go.mongodb.org/mongo-driver/bson"

var PatientValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"email",
			"phone_number",
			"date_of_birth",
			"gender",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"email": bson.M{
				"bsonType":  "string",
				"maxLength": 254,
			},

			"phone_number": bson.M{
				"bsonType": "string",
				"pattern":  `^\+[1-9]\d{7,14}$`,
			},

			"date_of_birth": bson.M{
				"bsonType": "date",
			},

			"gender": bson.M{
				"bsonType": "string",
				"enum":     []string{"male", "female"},
			},

			"health_info": bson.M{
				"bsonType":  "string",
				"maxLength": 2000,
			},

			"conditions": bson.M{
				"bsonType":  "string",
				"maxLength": 2000,
			},

			"medical_history": bson.M{
				"bsonType":  "string",
				"maxLength": 5000,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
