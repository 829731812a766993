package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt          = 0.02
	DefaultSubsteps    = 8
	DefaultMaxTimeWarp = 100.0
	DefaultTurnTorque  = 8000.0
	DefaultCrashSpeed  = 12.0
)

type Config struct {
	Physics Physics `yaml:"physics"`
	Flight  Flight  `yaml:"flight"`
}

// Physics holds the constants of the two-body world. The force model reads
// everything from here so nothing depends on package globals.
type Physics struct {
	PlanetName    string  `yaml:"planet_name"`
	PlanetGM      float64 `yaml:"planet_gm"`
	PlanetRadius  float64 `yaml:"planet_radius"`
	MoonName      string  `yaml:"moon_name"`
	MoonGM        float64 `yaml:"moon_gm"`
	MoonRadius    float64 `yaml:"moon_radius"`
	MoonOrbit     float64 `yaml:"moon_orbit"`
	MoonInitAngle float64 `yaml:"moon_init_angle"`

	AtmosphereHeight float64 `yaml:"atmosphere_height"`
	ScaleHeight      float64 `yaml:"scale_height"`
	SeaLevelDensity  float64 `yaml:"sea_level_density"`
	DragFactor       float64 `yaml:"drag_factor"`
	ChuteDragFactor  float64 `yaml:"chute_drag_factor"`
	MinDragSpeed     float64 `yaml:"min_drag_speed"`
}

type Flight struct {
	Dt          float64 `yaml:"dt"`
	Substeps    int     `yaml:"substeps"`
	MaxTimeWarp float64 `yaml:"max_time_warp"`

	TurnTorque    float64 `yaml:"turn_torque"`
	InertiaFactor float64 `yaml:"inertia_factor"`
	MinInertia    float64 `yaml:"min_inertia"`
	MinMass       float64 `yaml:"min_mass"`

	SASKp            float64 `yaml:"sas_kp"`
	SASKd            float64 `yaml:"sas_kd"`
	SASDamping       float64 `yaml:"sas_damping"`
	MinProgradeSpeed float64 `yaml:"min_prograde_speed"`

	ThrottleEpsilon float64 `yaml:"throttle_epsilon"`
	MinSupplyRatio  float64 `yaml:"min_supply_ratio"`

	CrashSpeed        float64 `yaml:"crash_speed"`
	RestSpeed         float64 `yaml:"rest_speed"`
	MinFlightAltitude float64 `yaml:"min_flight_altitude"`
	SeparationSpeed   float64 `yaml:"separation_speed"`

	LaunchAngleDeg float64 `yaml:"launch_angle_deg"`
}

func DefaultConfig() *Config {
	return &Config{
		Physics: Physics{
			PlanetName:    "Terra",
			PlanetGM:      3.5316e12,
			PlanetRadius:  600_000,
			MoonName:      "Luna",
			MoonGM:        6.5138e10,
			MoonRadius:    200_000,
			MoonOrbit:     12_000_000,
			MoonInitAngle: 1.7,

			AtmosphereHeight: 70_000,
			ScaleHeight:      5600,
			SeaLevelDensity:  1.225,
			DragFactor:       1.0,
			ChuteDragFactor:  1500,
			MinDragSpeed:     0.1,
		},
		Flight: Flight{
			Dt:          DefaultDt,
			Substeps:    DefaultSubsteps,
			MaxTimeWarp: DefaultMaxTimeWarp,

			TurnTorque:    DefaultTurnTorque,
			InertiaFactor: 1.0,
			MinInertia:    500,
			MinMass:       1.0,

			SASKp:            6.0,
			SASKd:            12.0,
			SASDamping:       4.0,
			MinProgradeSpeed: 5.0,

			ThrottleEpsilon: 1e-3,
			MinSupplyRatio:  0.01,

			CrashSpeed:        DefaultCrashSpeed,
			RestSpeed:         1.0,
			MinFlightAltitude: 50.0,
			SeparationSpeed:   2.0,

			LaunchAngleDeg: 90.0,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	p := c.Physics
	if p.PlanetGM <= 0 || p.PlanetRadius <= 0 {
		return fmt.Errorf("config: planet gm and radius must be positive")
	}
	if p.MoonGM <= 0 || p.MoonRadius <= 0 {
		return fmt.Errorf("config: moon gm and radius must be positive")
	}
	if p.MoonOrbit <= p.PlanetRadius+p.MoonRadius {
		return fmt.Errorf("config: moon orbit %g inside planet radius %g", p.MoonOrbit, p.PlanetRadius)
	}
	if p.ScaleHeight <= 0 {
		return fmt.Errorf("config: scale height must be positive")
	}
	f := c.Flight
	if f.Dt <= 0 {
		return fmt.Errorf("config: dt must be positive")
	}
	if f.Substeps < 1 {
		return fmt.Errorf("config: substeps must be at least 1")
	}
	if f.MaxTimeWarp < 1 {
		return fmt.Errorf("config: max time warp must be at least 1")
	}
	return nil
}
