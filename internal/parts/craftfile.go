package parts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/apogee/internal/astro"
	"github.com/san-kum/apogee/internal/vessel"
)

// craftEntry is one part placement in a craft file.
type craftEntry struct {
	ID         int      `yaml:"id"`
	Part       string   `yaml:"part"`
	Parent     int      `yaml:"parent"`
	ParentNode string   `yaml:"parent_node"`
	X          float64  `yaml:"x"`
	Y          float64  `yaml:"y"`
	Fuel       *float64 `yaml:"fuel"`
}

type craftFile struct {
	Name  string       `yaml:"name"`
	Parts []craftEntry `yaml:"parts"`
}

// LoadCraft reads a craft description from YAML. Part names resolve
// against the catalog, so register overlays before loading craft files
// that use them. Omitted fuel means a full tank; the file name stands in
// when the craft has no name of its own.
func LoadCraft(path string) (string, []*vessel.Part, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	var cf craftFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return "", nil, err
	}
	if len(cf.Parts) == 0 {
		return "", nil, fmt.Errorf("parts: craft file %s has no parts", path)
	}

	name := cf.Name
	if name == "" {
		base := filepath.Base(path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	list := make([]*vessel.Part, 0, len(cf.Parts))
	for _, e := range cf.Parts {
		sp := Get(e.Part)
		if sp == nil {
			return "", nil, fmt.Errorf("parts: craft %s uses unknown part %q", name, e.Part)
		}
		fuel := sp.FuelCapacity
		if e.Fuel != nil {
			fuel = *e.Fuel
		}
		list = append(list, &vessel.Part{
			ID:         e.ID,
			Spec:       sp,
			ParentID:   e.Parent,
			ParentNode: e.ParentNode,
			Pos:        astro.Vec2{X: e.X, Y: e.Y},
			Fuel:       fuel,
		})
	}
	return name, list, nil
}
