package mython

import (
	"bytes"
	"context"
	"os"
	"testing"

	"gopkg.in/yaml.v3"
)

type scenario struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	Output string `yaml:"output"`
	Error  bool   `yaml:"error"`
}

func TestScenarios(t *testing.T) {
	data, err := os.ReadFile("testdata/scenarios.yaml")
	if err != nil {
		t.Fatalf("read scenarios: %v", err)
	}
	var scenarios []scenario
	if err := yaml.Unmarshal(data, &scenarios); err != nil {
		t.Fatalf("decode scenarios: %v", err)
	}
	if len(scenarios) == 0 {
		t.Fatalf("no scenarios loaded")
	}

	engine := NewEngine(Config{})
	for _, sc := range scenarios {
		t.Run(sc.Name, func(t *testing.T) {
			script, err := engine.Compile(sc.Source)
			if err != nil {
				t.Fatalf("compile failed: %v", err)
			}
			var out bytes.Buffer
			err = script.Run(context.Background(), &out)
			if sc.Error {
				if err == nil {
					t.Fatalf("expected an execution error, output %q", out.String())
				}
				return
			}
			if err != nil {
				t.Fatalf("run failed: %v", err)
			}
			if out.String() != sc.Output {
				t.Fatalf("output mismatch:\ngot  %q\nwant %q", out.String(), sc.Output)
			}
		})
	}
}
