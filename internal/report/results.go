// Package report names and dispatches test run results.
package report

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ResultSuffix ends every report filename.
const ResultSuffix = "_Results.html"

// TestSetResult is the recorded outcome of one test set. Keys other than
// Success are kept in Extra.
type TestSetResult struct {
	Success bool           `yaml:"Success"`
	Extra   map[string]any `yaml:",inline"`
}

// Filename returns the report filename for a run: "[SUCCESS]" when every
// test set succeeded, "[FAILED]" otherwise, followed by the configuration
// and ResultSuffix. An empty run counts as a success.
func Filename(testSets map[string]TestSetResult, configuration string) string {
	status := "[SUCCESS]"
	for _, r := range testSets {
		if !r.Success {
			status = "[FAILED]"
			break
		}
	}
	return status + configuration + ResultSuffix
}

// LoadResults reads a results summary mapping test-set name to result.
// JSON input is accepted since it parses as YAML.
func LoadResults(path string) (map[string]TestSetResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading results %s: %w", path, err)
	}
	var results map[string]TestSetResult
	if err := yaml.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("parsing results %s: %w", path, err)
	}
	if results == nil {
		results = map[string]TestSetResult{}
	}
	return results, nil
}
