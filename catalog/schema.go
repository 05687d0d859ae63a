package catalog

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// documentSchema describes the catalog document
// Any top-level key other than preset_colors and quick_recipes that holds an object is a brand
const documentSchema = `{
  "type": "object",
  "required": ["preset_colors", "quick_recipes"],
  "definitions": {
    "pigment": {
      "type": "object",
      "required": ["rgb"],
      "properties": {
        "rgb": {
          "type": "array",
          "minItems": 3,
          "maxItems": 3,
          "items": {"type": "integer", "minimum": 0, "maximum": 255}
        },
        "hex": {"type": "string"}
      }
    },
    "brand": {
      "type": "object",
      "required": ["colors"],
      "properties": {
        "colors": {
          "type": "object",
          "additionalProperties": {"$ref": "#/definitions/pigment"}
        }
      }
    }
  },
  "properties": {
    "preset_colors": {
      "type": "object",
      "additionalProperties": {"type": "string"}
    },
    "quick_recipes": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "required": ["ingredients"],
        "properties": {
          "name": {"type": "string"},
          "hex": {"type": "string"},
          "ingredients": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["code", "ratio"],
              "properties": {
                "code": {"type": "string"},
                "ratio": {"type": "number"},
                "brand": {"type": "string"}
              }
            }
          }
        }
      }
    }
  },
  "additionalProperties": {
    "anyOf": [
      {"type": ["string", "number", "boolean", "array", "null"]},
      {"$ref": "#/definitions/brand"}
    ]
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(documentSchema)

// validateDocument checks the JSON document structure before it is decoded
func validateDocument(data []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, e := range result.Errors() {
			errs[i] = e.String()
		}
		return fmt.Errorf("invalid catalog document: %v", errs)
	}
	return nil
}
