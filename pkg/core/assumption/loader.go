package assumption

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"circular_platform/pkg/core/utils"

	"gopkg.in/yaml.v2"
)

// Scenario bundles a baseline and its pro forma drivers, as stored in scenario files.
type Scenario struct {
	Name        string            `json:"name,omitempty" yaml:"name,omitempty"`
	Assumptions AssumptionSet     `json:"assumptions" yaml:"assumptions"`
	Growth      GrowthAssumptions `json:"growth" yaml:"growth"`
}

// DefaultScenario returns the baseline scenario with default drivers.
func DefaultScenario() Scenario {
	return Scenario{
		Name:        "baseline",
		Assumptions: Defaults(),
		Growth:      DefaultGrowth(),
	}
}

// LoadScenario reads a scenario file and overlays it onto the defaults.
// Fields missing from the file keep their default values.
// Supported: .yaml/.yml (YAML), .hjson (Hjson), .json (lenient, hand-edited files welcome).
func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("failed to read scenario %s: %w", path, err)
	}
	return ParseScenario(data, filepath.Ext(path))
}

// ParseScenario decodes scenario bytes; ext selects the format (".yaml", ".json", ...).
func ParseScenario(data []byte, ext string) (Scenario, error) {
	sc := DefaultScenario()

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &sc); err != nil {
			return Scenario{}, fmt.Errorf("failed to parse yaml scenario: %w", err)
		}
	case ".hjson":
		normalized, err := utils.ParseHJSON(string(data))
		if err != nil {
			return Scenario{}, fmt.Errorf("failed to parse hjson scenario: %w", err)
		}
		if err := json.Unmarshal([]byte(normalized), &sc); err != nil {
			return Scenario{}, fmt.Errorf("failed to decode scenario: %w", err)
		}
	case ".json", "":
		normalized, err := utils.SmartParse(string(data), &Scenario{})
		if err != nil {
			return Scenario{}, fmt.Errorf("failed to parse json scenario: %w", err)
		}
		if err := json.Unmarshal([]byte(normalized), &sc); err != nil {
			return Scenario{}, fmt.Errorf("failed to decode scenario: %w", err)
		}
	default:
		return Scenario{}, fmt.Errorf("unsupported scenario format %q", ext)
	}

	return sc, nil
}
