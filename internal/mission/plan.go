// Package mission loads scripted flight plans and replays them against a
// simulation, either one at a time or as a parallel sweep.
package mission

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/apogee/internal/flight"
)

// DefaultDuration bounds a plan that does not set one.
const DefaultDuration = 600.0

// Action is one timed control change. Pointer fields distinguish "leave
// as is" from an explicit zero; Stage and Deploy fire once at their
// scheduled time.
type Action struct {
	At       float64  `yaml:"at"`
	Throttle *float64 `yaml:"throttle,omitempty"`
	Turn     *float64 `yaml:"turn,omitempty"`
	Mode     string   `yaml:"mode,omitempty"`
	Warp     *float64 `yaml:"warp,omitempty"`
	Stage    bool     `yaml:"stage,omitempty"`
	Deploy   bool     `yaml:"deploy,omitempty"`
}

// Plan is a scripted mission: a craft, a time limit and a timeline of
// control actions.
type Plan struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Craft       string   `yaml:"craft"`
	Duration    float64  `yaml:"duration"`
	Actions     []Action `yaml:"actions"`
}

// Load reads and validates a plan file.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("mission: parse %s: %w", path, err)
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (p *Plan) Validate() error {
	if p.Duration <= 0 {
		p.Duration = DefaultDuration
	}
	for i, a := range p.Actions {
		if a.At < 0 {
			return fmt.Errorf("mission: action %d scheduled at negative time %g", i, a.At)
		}
		if a.Mode != "" {
			if _, ok := flight.ParseMode(a.Mode); !ok {
				return fmt.Errorf("mission: action %d has unknown mode %q", i, a.Mode)
			}
		}
	}
	sort.SliceStable(p.Actions, func(i, j int) bool {
		return p.Actions[i].At < p.Actions[j].At
	})
	return nil
}
