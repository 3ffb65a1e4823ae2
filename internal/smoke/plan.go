package smoke

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default_plan.yaml
var defaultPlan []byte

// ParsePlan は YAML からプランを読み込みます
func ParsePlan(data []byte) (*Plan, error) {
	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse plan: %w", err)
	}

	if len(plan.Steps) == 0 {
		return nil, fmt.Errorf("invalid plan %q: no steps", plan.Name)
	}

	seen := make(map[string]bool, len(plan.Steps))
	for i, step := range plan.Steps {
		if step.Name == "" || step.Method == "" || step.Path == "" {
			return nil, fmt.Errorf("invalid step %d: name, method and path are required", i+1)
		}
		if seen[step.Name] {
			return nil, fmt.Errorf("invalid step %d: duplicate name %q", i+1, step.Name)
		}
		seen[step.Name] = true
		plan.Steps[i].Method = strings.ToUpper(step.Method)
	}

	if plan.Variables == nil {
		plan.Variables = make(map[string]interface{})
	}
	return &plan, nil
}

// LoadPlan はファイルからプランを読み込みます
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}
	return ParsePlan(data)
}

// DefaultPlan はタスク API を順に呼び出す組み込みプランを返します
func DefaultPlan() *Plan {
	plan, err := ParsePlan(defaultPlan)
	if err != nil {
		panic(fmt.Sprintf("embedded plan is invalid: %v", err))
	}
	return plan
}
