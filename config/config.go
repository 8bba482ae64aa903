// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package config loads a run's configuration from a YAML (or JSON) file:
// which columns to use, the search target and tolerance, and the mode
// knobs the search package exposes. sigs.k8s.io/yaml is used so the same
// file can be written as either YAML or JSON.
package config

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// Run describes one standalone zero-sum search.
type Run struct {
	InputPath       string   `json:"inputPath"`
	AmountColumn    string   `json:"amountColumn"`
	GroupingColumns []string `json:"groupingColumns"`
	NullSentinel    string   `json:"nullSentinel,omitempty"`

	Target    float64 `json:"target"`
	Tolerance float64 `json:"tolerance"`

	// Ordering is "static" or "min-domain"; empty means "static".
	Ordering string `json:"ordering,omitempty"`
	// Mode is "original" or "new"; empty means "original".
	Mode string `json:"mode,omitempty"`

	Threads int `json:"threads,omitempty"`

	OutputPath string `json:"outputPath,omitempty"`
}

// Recon describes a recon run: cluster rows by a pairs file, then search
// each cluster independently with target 0.
type Recon struct {
	InputPath    string   `json:"inputPath"`
	PairsPath    string   `json:"pairsPath"`
	AmountColumn string   `json:"amountColumn"`
	IDColumn     string   `json:"idColumn"`
	GroupingCols []string `json:"groupingColumns"`
	Tolerance    float64  `json:"tolerance"`
	Threads      int      `json:"threads,omitempty"`
	OutputPath   string   `json:"outputPath,omitempty"`
}

// LoadRun reads and validates a standalone-run configuration file.
func LoadRun(path string) (*Run, error) {
	var r Run
	if err := load(path, &r); err != nil {
		return nil, err
	}
	if r.InputPath == "" {
		return nil, fmt.Errorf("config: inputPath is required")
	}
	if r.AmountColumn == "" {
		return nil, fmt.Errorf("config: amountColumn is required")
	}
	if len(r.GroupingColumns) == 0 {
		return nil, fmt.Errorf("config: at least one grouping column is required")
	}
	return &r, nil
}

// LoadRecon reads and validates a recon-run configuration file.
func LoadRecon(path string) (*Recon, error) {
	var r Recon
	if err := load(path, &r); err != nil {
		return nil, err
	}
	if r.InputPath == "" || r.PairsPath == "" {
		return nil, fmt.Errorf("config: inputPath and pairsPath are required")
	}
	if r.AmountColumn == "" || r.IDColumn == "" {
		return nil, fmt.Errorf("config: amountColumn and idColumn are required")
	}
	if len(r.GroupingCols) == 0 {
		return nil, fmt.Errorf("config: at least one grouping column is required")
	}
	return &r, nil
}

func load(path string, out any) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(buf, out); err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	return nil
}
