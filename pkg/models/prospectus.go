package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Scenario is one market-capture projection. All amounts are millions CAD.
// GrossProfit is derived from Revenue and Costs right after loading.
type Scenario struct {
	Key            int       `json:"key" yaml:"key"`
	Name           string    `json:"name" yaml:"name"`
	Years          []string  `json:"years" yaml:"years"`
	Revenue        []float64 `json:"revenue" yaml:"revenue"`
	Costs          []float64 `json:"costs" yaml:"costs"`
	GrossProfit    []float64 `json:"grossProfit" yaml:"grossProfit"`
	CumulativeDebt []float64 `json:"cumulativeDebt" yaml:"cumulativeDebt"`
}

// FacilityType is the kind of infrastructure a marker represents.
type FacilityType string

const (
	Refinery    FacilityType = "refinery"
	Terminal    FacilityType = "terminal"
	Storage     FacilityType = "storage"
	Maintenance FacilityType = "maintenance"
	Education   FacilityType = "education"
)

// FacilityTypes lists the known facility types in display order.
var FacilityTypes = []FacilityType{Refinery, Terminal, Storage, Maintenance, Education}

// Known reports whether t is one of FacilityTypes.
func (t FacilityType) Known() bool {
	for _, k := range FacilityTypes {
		if k == t {
			return true
		}
	}
	return false
}

// Coordinates are degrees latitude/longitude.
type Coordinates struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// FacilityDetails are the label/value pairs shown in the facility modal.
// Facility-specific extras (employees, berths, tanks...) land in Extra.
type FacilityDetails struct {
	Capacity    string            `json:"capacity" yaml:"capacity"`
	Function    string            `json:"function" yaml:"function"`
	Cost        string            `json:"cost" yaml:"cost"`
	YearStarted int               `json:"yearStarted" yaml:"yearStarted"`
	Status      string            `json:"status" yaml:"status"`
	Extra       map[string]string `json:"extra,omitempty" yaml:",inline"`
}

// knownDetails are the FacilityDetails keys with a typed field.
var knownDetails = map[string]bool{
	"capacity": true, "function": true, "cost": true,
	"yearStarted": true, "status": true, "extra": true,
}

// UnmarshalJSON decodes the typed keys and collects every other scalar key
// (employees, docking, tanks...) into Extra, so JSON and Hjson files read
// like the YAML ones. Nested objects and arrays are ignored.
func (d *FacilityDetails) UnmarshalJSON(data []byte) error {
	type plain FacilityDetails
	var typed plain
	if err := json.Unmarshal(data, &typed); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key, value := range raw {
		if knownDetails[key] {
			continue
		}
		text, ok, err := scalarText(value)
		if err != nil {
			return fmt.Errorf("details.%s: %w", key, err)
		}
		if !ok {
			continue
		}
		if typed.Extra == nil {
			typed.Extra = make(map[string]string)
		}
		typed.Extra[key] = text
	}

	*d = FacilityDetails(typed)
	return nil
}

// scalarText renders a JSON string, number or bool as display text.
func scalarText(value json.RawMessage) (string, bool, error) {
	dec := json.NewDecoder(bytes.NewReader(value))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return "", false, err
	}
	switch t := v.(type) {
	case string:
		return t, true, nil
	case json.Number:
		return t.String(), true, nil
	case bool:
		return strconv.FormatBool(t), true, nil
	}
	return "", false, nil
}

// Facility is one geo-located infrastructure record.
type Facility struct {
	ID          string          `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Type        FacilityType    `json:"type" yaml:"type"`
	Category    string          `json:"category" yaml:"category"`
	Description string          `json:"description" yaml:"description"`
	Coordinates Coordinates     `json:"coordinates" yaml:"coordinates"`
	Details     FacilityDetails `json:"details" yaml:"details"`
}

// Phase is one roadmap initiative over an inclusive year interval.
// Cost and RevenueImpact are in the smallest currency unit (dollars).
type Phase struct {
	Name          string `json:"phase" yaml:"phase"`
	StartYear     int    `json:"startYear" yaml:"startYear"`
	EndYear       int    `json:"endYear" yaml:"endYear"`
	Cost          int64  `json:"cost" yaml:"cost"`
	RevenueImpact int64  `json:"revenueImpact" yaml:"revenueImpact"`
	Description   string `json:"description" yaml:"description"`
}
