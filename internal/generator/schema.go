package generator

import "google.golang.org/genai"

var namesSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":    {Type: genai.TypeString},
			"meaning": {Type: genai.TypeString},
		},
		Required: []string{"name", "meaning"},
	},
}

var strategySchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"mission": {Type: genai.TypeString},
		"vision":  {Type: genai.TypeString},
		"values":  {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
	Required: []string{"mission", "vision", "values"},
}

var copySchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"slogans":     {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"socialPosts": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"email":       {Type: genai.TypeString},
	},
	Required: []string{"slogans", "socialPosts", "email"},
}

var sentimentSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"label": {
			Type: genai.TypeString,
			Enum: []string{"Positive", "Neutral", "Negative"},
		},
		"score": {Type: genai.TypeNumber},
		"breakdown": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"joy":      {Type: genai.TypeNumber},
				"trust":    {Type: genai.TypeNumber},
				"fear":     {Type: genai.TypeNumber},
				"surprise": {Type: genai.TypeNumber},
			},
		},
	},
	Required: []string{"label", "score", "breakdown"},
}
