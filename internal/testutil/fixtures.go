package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// CementIndustry is the industry document of the cement fixture
const CementIndustry = `name: Cement industry
short_name: cement
id: cement
type: industry
description: Cement production
version: "1.0"
constants:
  - name: CO2_SHARE
    description: share of the co2 released to the atmosphere
    units: "-"
    value: 1
outcome:
  - name: total_production
    description: Cement produced
    units: kt
    same_result: cement_output
    range: [5, 1000]
    tests: [100]
demands:
  - name: limestone_demand
    description: Limestone required
    units: kt
    operation: total_production * 1.035
    args:
      - name: total_production
        type: outcome
    used: mixing
    tests: [103.5]
outputs:
  - name: co2_overall
    description: Overall CO2 emissions
    units: kt
    operation: co2 * CO2_SHARE
    args:
      - name: co2
        type: outputs
      - name: CO2_SHARE
        type: constants
    tests: [93.15]
`

// CementMixing is the first process of the cement fixture
const CementMixing = `name: Mixing
short_name: mixing
id: mixing
type: process
description: Mixing of raw materials
constants:
  - name: EMISSION_FACTOR
    description: co2 released per kt of limestone
    units: "-"
    value: 0.9
    range: [0, 1]
inputs:
  - name: limestone_demand
    description: Limestone received
    units: kt
outputs:
  - name: co2
    description: CO2 released while mixing
    units: kt
    operation: limestone_demand * EMISSION_FACTOR
    args:
      - name: limestone_demand
        type: inputs
      - name: EMISSION_FACTOR
        type: constants
    tests: [93.15]
  - name: raw_mix
    description: Raw mix sent to milling
    units: kt
    operation: limestone_demand - co2
    args:
      - name: limestone_demand
        type: inputs
      - name: co2
        type: outputs
    tests: [10.35]
`

// CementMilling is the second process of the cement fixture, fed by mixing
const CementMilling = `name: Milling
short_name: milling
id: milling
type: process
description: Milling of the raw mix
inputs:
  - name: raw_mix
    description: Raw mix from mixing
    units: kt
    from: mixing
outputs:
  - name: cement_output
    description: Cement leaving the mill
    units: kt
    operation: raw_mix * 2
    args:
      - name: raw_mix
        type: inputs
    tests: [20.7]
`

// CementDocuments returns the documents of the cement fixture keyed by file name
func CementDocuments() map[string]string {
	return map[string]string{
		"cement.yaml":  CementIndustry,
		"mixing.yaml":  CementMixing,
		"milling.yaml": CementMilling,
	}
}

// WriteIndustry writes docs into root/name and returns the industry directory
func WriteIndustry(t *testing.T, root, name string, docs map[string]string) string {
	t.Helper()

	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create industry directory: %v", err)
	}

	for file, content := range docs {
		if err := os.WriteFile(filepath.Join(dir, file), []byte(content), 0o600); err != nil {
			t.Fatalf("failed to write %s: %v", file, err)
		}
	}

	return dir
}
