package server

// JSON schemas for the write endpoints. Shapes only; semantic rules (contact
// formats, score bounds) live in the services so they hold for every caller.

var analyzeSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"userName"},
	"properties": map[string]interface{}{
		"userName":     map[string]interface{}{"type": "string"},
		"userEmail":    map[string]interface{}{"type": "string"},
		"userPhone":    map[string]interface{}{"type": "string"},
		"overallScore": map[string]interface{}{"type": "integer"},
		"topicScoresArray": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type":     "object",
				"required": []interface{}{"name"},
				"properties": map[string]interface{}{
					"name":    map[string]interface{}{"type": "string"},
					"correct": map[string]interface{}{"type": "integer"},
					"total":   map[string]interface{}{"type": "integer"},
				},
			},
		},
	},
}

var assessmentSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"responses"},
	"properties": map[string]interface{}{
		"name":  map[string]interface{}{"type": "string"},
		"email": map[string]interface{}{"type": "string"},
		"phone": map[string]interface{}{"type": "string"},
		"responses": map[string]interface{}{
			"type":     "array",
			"minItems": 1,
			"items": map[string]interface{}{
				"type":     "object",
				"required": []interface{}{"questionId", "section", "answer"},
				"properties": map[string]interface{}{
					"questionId": map[string]interface{}{"type": "string"},
					"section":    map[string]interface{}{"type": "string"},
					"answer":     map[string]interface{}{"type": "string"},
				},
			},
		},
	},
}

var leadSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"name":         map[string]interface{}{"type": "string"},
		"email":        map[string]interface{}{"type": "string"},
		"phone":        map[string]interface{}{"type": "string"},
		"overallScore": map[string]interface{}{"type": "integer"},
		"band":         map[string]interface{}{"type": "string"},
		"source":       map[string]interface{}{"type": "string"},
	},
}

var reportSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"studentName"},
	"properties": map[string]interface{}{
		"studentName":   map[string]interface{}{"type": "string"},
		"weightedIndex": map[string]interface{}{"type": "integer"},
		"readinessBand": map[string]interface{}{"type": "string"},
		"dimensionScores": map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name":   map[string]interface{}{"type": "string"},
					"score":  map[string]interface{}{"type": "integer"},
					"weight": map[string]interface{}{"type": "integer"},
				},
			},
		},
	},
}
