// Package dataset loads the static prospectus data: market-capture
// scenarios, infrastructure facilities and roadmap phases.
//
// Default copies are embedded in the binary. An override directory may
// replace any of the three files; files it does not provide fall back to the
// embedded copy.
package dataset

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"gopkg.in/yaml.v2"

	"energy_prospectus/pkg/core/calc"
	"energy_prospectus/pkg/core/utils"
	"energy_prospectus/pkg/core/validate"
	"energy_prospectus/pkg/models"
)

//go:embed data/*
var embedded embed.FS

// Dataset base names. The extension picks the decoder.
const (
	ScenariosFile  = "scenarios"
	FacilitiesFile = "facilities"
	RoadmapFile    = "roadmap"
)

// Extensions tried, in order, for every dataset.
var Extensions = []string{".hjson", ".json", ".yaml", ".yml"}

// ErrNotFound is returned when no file exists for a dataset.
var ErrNotFound = errors.New("dataset file not found")

type scenarioFile struct {
	Scenarios []models.Scenario `json:"scenarios" yaml:"scenarios"`
}

type facilityFile struct {
	Facilities []models.Facility `json:"facilities" yaml:"facilities"`
}

type roadmapFile struct {
	Phases []models.Phase `json:"phases" yaml:"phases"`
}

// Registry holds one loaded, validated copy of every dataset. It is
// read-only after Load and safe to share.
type Registry struct {
	scenarios  []models.Scenario
	facilities []models.Facility
	phases     []models.Phase
	report     validate.Report
	sources    map[string]string
}

// Scenarios returns the scenarios in file order.
func (r *Registry) Scenarios() []models.Scenario { return r.scenarios }

// Facilities returns the facilities in file order.
func (r *Registry) Facilities() []models.Facility { return r.facilities }

// Phases returns the roadmap phases in file order.
func (r *Registry) Phases() []models.Phase { return r.phases }

// Report returns the validation report, including warnings.
func (r *Registry) Report() validate.Report { return r.report }

// Source returns the file a dataset was read from ("embedded:data/roadmap.yaml").
func (r *Registry) Source(name string) string { return r.sources[name] }

// Default loads the embedded datasets.
func Default() (*Registry, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded data: %w", err)
	}
	return load([]source{{fsys: sub, label: "embedded:data"}})
}

// Load reads every dataset from fsys. All three files must be present.
func Load(fsys fs.FS) (*Registry, error) {
	return load([]source{{fsys: fsys, label: "fs"}})
}

// LoadDir reads datasets from dir, falling back to the embedded copy for
// every file dir does not contain. An empty dir means embedded only.
func LoadDir(dir string) (*Registry, error) {
	if dir == "" {
		return Default()
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("data directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("data directory %s is not a directory", dir)
	}
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded data: %w", err)
	}
	return load([]source{
		{fsys: os.DirFS(dir), label: dir},
		{fsys: sub, label: "embedded:data"},
	})
}

type source struct {
	fsys  fs.FS
	label string
}

func load(sources []source) (*Registry, error) {
	reg := &Registry{sources: make(map[string]string)}

	// 1. Scenarios, with gross profit and year labels derived after parsing
	var sf scenarioFile
	if err := reg.read(sources, ScenariosFile, &sf); err != nil {
		return nil, err
	}
	for i := range sf.Scenarios {
		if err := prepareScenario(&sf.Scenarios[i]); err != nil {
			return nil, fmt.Errorf("scenario %d: %w", sf.Scenarios[i].Key, err)
		}
	}
	reg.scenarios = sf.Scenarios

	// 2. Facilities
	var ff facilityFile
	if err := reg.read(sources, FacilitiesFile, &ff); err != nil {
		return nil, err
	}
	reg.facilities = ff.Facilities

	// 3. Roadmap
	var rf roadmapFile
	if err := reg.read(sources, RoadmapFile, &rf); err != nil {
		return nil, err
	}
	reg.phases = rf.Phases

	// 4. Validate everything together so one run reports every problem
	reg.report.Merge(validate.Scenarios(reg.scenarios))
	reg.report.Merge(validate.Facilities(reg.facilities))
	reg.report.Merge(validate.Phases(reg.phases))
	if err := reg.report.Err(); err != nil {
		return nil, fmt.Errorf("invalid dataset: %w", err)
	}
	return reg, nil
}

// prepareScenario derives grossProfit and fills in missing year labels.
func prepareScenario(s *models.Scenario) error {
	if len(s.GrossProfit) > 0 {
		return fmt.Errorf("grossProfit is derived and must not be supplied")
	}
	gp, err := calc.GrossProfit(s.Revenue, s.Costs)
	if err != nil {
		return err
	}
	s.GrossProfit = gp

	if len(s.Years) == 0 {
		s.Years = YearLabels(len(s.Revenue))
	}
	return nil
}

// YearLabels returns "Year 1" … "Year n".
func YearLabels(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = fmt.Sprintf("Year %d", i+1)
	}
	return labels
}

// read finds the first source holding name.<ext> and decodes it into out.
func (r *Registry) read(sources []source, name string, out interface{}) error {
	for _, src := range sources {
		for _, ext := range Extensions {
			file := name + ext
			data, err := fs.ReadFile(src.fsys, file)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return fmt.Errorf("failed to read %s/%s: %w", src.label, file, err)
			}
			if err := decode(file, data, out); err != nil {
				return fmt.Errorf("failed to parse %s/%s: %w", src.label, file, err)
			}
			r.sources[name] = path.Join(src.label, file)
			return nil
		}
	}
	return fmt.Errorf("%s: %w", name, ErrNotFound)
}

func decode(file string, data []byte, out interface{}) error {
	switch path.Ext(file) {
	case ".yaml", ".yml":
		return yaml.UnmarshalStrict(data, out)
	case ".hjson":
		js, err := utils.ParseHJSON(string(data))
		if err != nil {
			return err
		}
		return json.Unmarshal([]byte(js), out)
	default:
		_, err := utils.SmartParse(string(data), out)
		return err
	}
}
