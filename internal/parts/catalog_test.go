package parts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/apogee/internal/fuel"
	"github.com/san-kum/apogee/internal/vessel"
)

func TestCatalogSanity(t *testing.T) {
	for name, s := range Catalog {
		if s.Name != name {
			t.Errorf("%s: spec name %q does not match key", name, s.Name)
		}
		if s.Mass <= 0 {
			t.Errorf("%s: mass %.1f should be positive", name, s.Mass)
		}
		if s.Width <= 0 {
			t.Errorf("%s: width %.2f should be positive", name, s.Width)
		}
		if s.Class == vessel.Engine && (s.MaxThrust <= 0 || s.BurnRate <= 0) {
			t.Errorf("%s: engine needs thrust and burn rate", name)
		}
		if s.Class == vessel.Tank && s.FuelCapacity <= 0 {
			t.Errorf("%s: tank needs capacity", name)
		}
	}
}

func TestStockCraftBuild(t *testing.T) {
	for _, name := range CraftNames() {
		t.Run(name, func(t *testing.T) {
			v, err := vessel.Build(GetCraft(name))
			if err != nil {
				t.Fatalf("building %s: %v", name, err)
			}
			if v.Mass() <= 0 {
				t.Errorf("%s: mass %.1f", name, v.Mass())
			}
			if len(v.Engines()) == 0 {
				t.Errorf("%s: no engines", name)
			}
			if _, ok := Blurb[name]; !ok {
				t.Errorf("%s: missing description", name)
			}
		})
	}
}

func TestGetCraftUnknown(t *testing.T) {
	if GetCraft("no-such-craft") != nil {
		t.Error("unknown craft should return nil")
	}
	if Get("no-such-part") != nil {
		t.Error("unknown part should return nil")
	}
}

func TestOrbiterStaging(t *testing.T) {
	v, err := vessel.Build(GetCraft("orbiter"))
	if err != nil {
		t.Fatal(err)
	}

	// The core engine and both boosters light on the pad; the upper
	// stage engine waits behind the stack decoupler.
	for _, eng := range v.Engines() {
		blocked := fuel.StageBlocked(v, eng)
		switch eng.Spec.Name {
		case "sparrow-60":
			if !blocked {
				t.Error("upper stage engine should be blocked on the pad")
			}
		default:
			if blocked {
				t.Errorf("%s should be free to ignite", eng.Spec.Name)
			}
		}
	}

	// Radial booster decouplers sit lowest and fire first.
	d := v.NextDecoupler()
	if d == nil || !d.Spec.Radial {
		t.Fatalf("first staged decoupler should be radial, got %+v", d)
	}
}

func TestLunaExpressFuelIsolation(t *testing.T) {
	v, err := vessel.Build(GetCraft("luna-express"))
	if err != nil {
		t.Fatal(err)
	}
	for _, eng := range v.Engines() {
		sources := fuel.FindSources(v, eng)
		if len(sources) != 1 {
			t.Errorf("%s: expected exactly one reachable tank, got %d", eng.Spec.Name, len(sources))
		}
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "extra.yaml")
	data := `
- name: tank-mini
  title: Mini Tank
  class: tank
  mass: 120
  width: 0.6
  drag: 0.2
  fuel_capacity: 400
- name: ion-5
  title: Ion Drive
  class: engine
  mass: 210
  width: 0.6
  drag: 0.1
  max_thrust: 5000
  burn_rate: 1.5
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	n, err := LoadOverlay(path)
	if err != nil {
		t.Fatalf("loading overlay: %v", err)
	}
	if n != 2 {
		t.Errorf("loaded %d specs, expected 2", n)
	}
	defer func() {
		delete(Catalog, "tank-mini")
		delete(Catalog, "ion-5")
	}()

	s := Get("tank-mini")
	if s == nil || s.FuelCapacity != 400 || s.Class != vessel.Tank {
		t.Errorf("overlay tank not registered correctly: %+v", s)
	}
	if Get("ion-5").MaxThrust != 5000 {
		t.Error("overlay engine thrust wrong")
	}
}

func TestLoadOverlayRejectsAnonymous(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("- mass: 10\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOverlay(path); err == nil {
		t.Error("overlay entry without a name should fail")
	}
}
