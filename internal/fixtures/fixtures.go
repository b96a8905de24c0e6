// Package fixtures loads the YAML-described end-to-end scenarios that this
// package's own test runs through the root package's public API, in the
// teacher's config-loading idiom
// (config.go's os.ReadFile + yaml.Unmarshal) applied to test data instead
// of runtime configuration.
package fixtures

import (
	"os"

	errorutil "github.com/projectdiscovery/utils/errors"
	"gopkg.in/yaml.v3"
)

// Options mirrors the driver's three booleans, named to unmarshal
// directly from scenarios.yaml.
type Options struct {
	EscapeNonASCII     bool `yaml:"escapeNonASCII"`
	UseSurrogatePairs  bool `yaml:"useSurrogatePairs"`
	ConvertRepetitions bool `yaml:"convertRepetitions"`
}

// Scenario is one named end-to-end test case. Want is only populated for
// scenarios simple enough that the exact rendered text can be hand
// verified; an empty Want means only soundness/anchoring is expected to
// be asserted.
type Scenario struct {
	Name    string   `yaml:"name"`
	Inputs  []string `yaml:"inputs"`
	Options Options  `yaml:"options"`
	Want    string   `yaml:"want"`
}

// Load reads and parses a scenarios file such as testdata/scenarios.yaml.
func Load(path string) ([]Scenario, error) {
	bin, err := os.ReadFile(path)
	if err != nil {
		return nil, errorutil.NewWithTag("fixtures", "reading %s: %v", path, err)
	}
	var scenarios []Scenario
	if err := yaml.Unmarshal(bin, &scenarios); err != nil {
		return nil, errorutil.NewWithTag("fixtures", "parsing %s: %v", path, err)
	}
	return scenarios, nil
}
