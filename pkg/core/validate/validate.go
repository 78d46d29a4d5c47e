// Package validate checks the static prospectus datasets before any widget
// consumes them. Checks never stop at the first problem: every issue is
// collected into a Report so a hand-edited data file can be fixed in one go.
package validate

import (
	"errors"
	"fmt"
	"math"

	"energy_prospectus/pkg/core/geomap"
	"energy_prospectus/pkg/models"
)

// Horizon is the number of years covered by the roadmap.
const Horizon = 20

// GrossProfitTolerance absorbs float noise in the grossProfit identity.
const GrossProfitTolerance = 1e-9

// Severity of an Issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one failed check.
type Issue struct {
	Severity Severity `json:"severity"`
	Subject  string   `json:"subject"` // e.g. "scenario 75", "phase Cogeneration"
	Message  string   `json:"message"`
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s: %s", i.Subject, i.Message)
}

// Report collects the issues of one or more checks.
type Report struct {
	Issues []Issue `json:"issues,omitempty"`
}

func (r *Report) add(sev Severity, subject, format string, args ...interface{}) {
	r.Issues = append(r.Issues, Issue{Severity: sev, Subject: subject, Message: fmt.Sprintf(format, args...)})
}

// Merge appends the issues of other.
func (r *Report) Merge(other Report) {
	r.Issues = append(r.Issues, other.Issues...)
}

// Errors returns only the error-level issues.
func (r Report) Errors() []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			out = append(out, i)
		}
	}
	return out
}

// Warnings returns only the warning-level issues.
func (r Report) Warnings() []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.Severity == SeverityWarning {
			out = append(out, i)
		}
	}
	return out
}

// AllPassed is true when no error-level issue was found. Warnings do not count.
func (r Report) AllPassed() bool {
	return len(r.Errors()) == 0
}

// Err joins every error-level issue, or returns nil.
func (r Report) Err() error {
	issues := r.Errors()
	if len(issues) == 0 {
		return nil
	}
	errs := make([]error, len(issues))
	for i, issue := range issues {
		errs[i] = issue
	}
	return errors.Join(errs...)
}

// =============================================================================
// SCENARIOS
// =============================================================================

// Scenario checks that the label sequence and all four series have the same
// length and that grossProfit[i] == revenue[i] - costs[i].
func Scenario(s models.Scenario) Report {
	var r Report
	subject := fmt.Sprintf("scenario %d", s.Key)

	n := len(s.Years)
	if n == 0 {
		r.add(SeverityError, subject, "no year labels")
	}
	series := []struct {
		name string
		data []float64
	}{
		{"revenue", s.Revenue},
		{"costs", s.Costs},
		{"grossProfit", s.GrossProfit},
		{"cumulativeDebt", s.CumulativeDebt},
	}
	for _, sr := range series {
		if len(sr.data) != n {
			r.add(SeverityError, subject, "%s has %d points, expected %d", sr.name, len(sr.data), n)
		}
	}
	if !r.AllPassed() {
		return r
	}

	for i := range s.Revenue {
		want := s.Revenue[i] - s.Costs[i]
		if math.Abs(s.GrossProfit[i]-want) > GrossProfitTolerance {
			r.add(SeverityError, subject, "grossProfit[%d] = %v, expected %v", i, s.GrossProfit[i], want)
		}
	}
	return r
}

// Scenarios checks every scenario and that keys are unique.
func Scenarios(scenarios []models.Scenario) Report {
	var r Report
	if len(scenarios) == 0 {
		r.add(SeverityError, "scenarios", "no scenarios defined")
	}
	seen := make(map[int]bool, len(scenarios))
	for _, s := range scenarios {
		if seen[s.Key] {
			r.add(SeverityError, fmt.Sprintf("scenario %d", s.Key), "duplicate key")
		}
		seen[s.Key] = true
		r.Merge(Scenario(s))
	}
	return r
}

// =============================================================================
// ROADMAP PHASES
// =============================================================================

// Phases checks 1 <= start <= end <= Horizon and non-empty, unique names.
func Phases(phases []models.Phase) Report {
	var r Report
	seen := make(map[string]bool, len(phases))
	for i, p := range phases {
		subject := fmt.Sprintf("phase %q", p.Name)
		if p.Name == "" {
			subject = fmt.Sprintf("phase #%d", i)
			r.add(SeverityError, subject, "empty name")
		} else if seen[p.Name] {
			r.add(SeverityError, subject, "duplicate name")
		}
		seen[p.Name] = true

		if p.StartYear < 1 || p.EndYear > Horizon || p.StartYear > p.EndYear {
			r.add(SeverityError, subject, "interval [%d, %d] outside 1..%d or reversed", p.StartYear, p.EndYear, Horizon)
		}
	}
	return r
}

// =============================================================================
// FACILITIES
// =============================================================================

// Facilities checks ids, coordinate ranges and types. An unknown type is a
// warning: the marker still renders with the fallback icon.
func Facilities(facilities []models.Facility) Report {
	var r Report
	seen := make(map[string]bool, len(facilities))
	for i, f := range facilities {
		subject := fmt.Sprintf("facility %q", f.ID)
		if f.ID == "" {
			subject = fmt.Sprintf("facility #%d", i)
			r.add(SeverityError, subject, "empty id")
		} else if seen[f.ID] {
			r.add(SeverityError, subject, "duplicate id")
		}
		seen[f.ID] = true

		if !f.Type.Known() {
			r.add(SeverityWarning, subject, "unknown type %q", f.Type)
		}
		pos := geomap.LatLng{Lat: f.Coordinates.Latitude, Lng: f.Coordinates.Longitude}
		if !pos.Valid() {
			r.add(SeverityError, subject, "coordinates (%v, %v) out of range", pos.Lat, pos.Lng)
		}
	}
	return r
}
