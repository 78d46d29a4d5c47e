package utils

import (
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// RepairJSON attempts to fix common hand-editing mistakes in JSON data files.
// Uses github.com/RealAlexandreAI/json-repair. Supported repairs:
// - Missing quotes around keys
// - Single quotes instead of double quotes
// - Trailing commas
// - Comments in JSON
func RepairJSON(malformedJSON string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformedJSON)
	if err != nil {
		return "", fmt.Errorf("JSON_REPAIR_FAILED: %v", err)
	}
	return repaired, nil
}

// ParseHJSON parses Human-friendly JSON (Hjson) and returns standard JSON.
// Hjson supports:
// - Comments (# // /* */)
// - Unquoted keys
// - Unquoted strings
// - Optional commas
// - Multiline strings
func ParseHJSON(hjsonData string) (string, error) {
	var result interface{}
	err := hjson.Unmarshal([]byte(hjsonData), &result)
	if err != nil {
		return "", fmt.Errorf("HJSON_PARSE_ERROR: %v", err)
	}

	jsonBytes, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("JSON_MARSHAL_ERROR: %v", err)
	}

	return string(jsonBytes), nil
}

// SmartParse tries multiple parsing strategies to decode a data file into schema.
// Order of attempts:
// 1. Standard JSON parse
// 2. JSON repair
// 3. Hjson parse (most lenient)
func SmartParse(input string, schema interface{}) (string, error) {
	// Try 1: Standard JSON
	if err := json.Unmarshal([]byte(input), schema); err == nil {
		return input, nil
	}

	// Try 2: JSON Repair
	repaired, err := RepairJSON(input)
	if err == nil {
		if err := json.Unmarshal([]byte(repaired), schema); err == nil {
			return repaired, nil
		}
	}

	// Try 3: Hjson (most lenient)
	hjsonResult, err := ParseHJSON(input)
	if err == nil {
		if err := json.Unmarshal([]byte(hjsonResult), schema); err == nil {
			return hjsonResult, nil
		}
	}

	return "", fmt.Errorf("SMART_PARSE_FAILED: all parsing strategies failed for input")
}
