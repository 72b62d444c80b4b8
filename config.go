package carpenter

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// Config describes a cupboard and the scene around it. Sizes are in scene
// units (millimetres in the default config).
type Config struct {
	Size    [3]float64 `yaml:"size"`
	MinSize [3]float64 `yaml:"min_size"`
	MaxSize [3]float64 `yaml:"max_size"`

	WallThickness      float64 `yaml:"wall_thickness"`
	PartitionThickness float64 `yaml:"partition_thickness"`
	MinSectionSize     float64 `yaml:"min_section_size"`
	DoorThickness      float64 `yaml:"door_thickness"`

	Bays             int     `yaml:"bays"`
	Shelves          int     `yaml:"shelves"`
	Doors            int     `yaml:"doors"`
	DoorsVisible     bool    `yaml:"doors_visible"`
	DoorSwingSeconds float32 `yaml:"door_swing_seconds"`

	Camera  CameraConfig  `yaml:"camera"`
	Shuffle ShuffleConfig `yaml:"shuffle"`
}

// CameraConfig places the viewing camera.
type CameraConfig struct {
	Position [3]float64 `yaml:"position"`
	Target   [3]float64 `yaml:"target"`
	FovDeg   float64    `yaml:"fov_deg"`
	Width    int        `yaml:"width"`
	Height   int        `yaml:"height"`
}

// NewCamera builds the camera described by c.
func (c CameraConfig) NewCamera() *Camera {
	cam := NewCamera(Rect{Width: float64(c.Width), Height: float64(c.Height)},
		mgl64.Vec3(c.Position), mgl64.Vec3(c.Target))
	if c.FovDeg > 0 {
		cam.FovY = mgl64.DegToRad(c.FovDeg)
	}
	return cam
}

// ShuffleConfig drives the periodic random reconfiguration.
type ShuffleConfig struct {
	Enabled         bool    `yaml:"enabled"`
	IntervalSeconds float64 `yaml:"interval_seconds"`
	Seed            uint64  `yaml:"seed"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Size:               [3]float64{1600, 2000, 600},
		MinSize:            [3]float64{400, 400, 300},
		MaxSize:            [3]float64{4000, 2800, 900},
		WallThickness:      18,
		PartitionThickness: 18,
		MinSectionSize:     150,
		DoorThickness:      18,
		Bays:               3,
		Shelves:            4,
		Doors:              2,
		DoorsVisible:       true,
		DoorSwingSeconds:   DefaultDoorSwing,
		Camera: CameraConfig{
			Position: [3]float64{0, 400, 4000},
			Target:   [3]float64{0, 0, 0},
			FovDeg:   45,
			Width:    1280,
			Height:   720,
		},
		Shuffle: ShuffleConfig{IntervalSeconds: 3},
	}
}

// ParseConfig decodes YAML over DefaultConfig, so omitted keys keep their
// default, and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML file.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := ParseConfig(raw)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every inconsistent field.
func (c Config) Validate() error {
	var errs []error
	for a := AxisX; a <= AxisZ; a++ {
		lim := Limits{Min: c.MinSize[a], Max: c.MaxSize[a]}
		if !lim.Correct() {
			errs = append(errs, fmt.Errorf("%s: min size %v above max size %v", a, lim.Min, lim.Max))
		}
		if c.MinSize[a] <= 0 {
			errs = append(errs, fmt.Errorf("%s: min size must be positive", a))
		}
		if !lim.Contains(c.Size[a]) {
			errs = append(errs, fmt.Errorf("%s: size %v outside [%v, %v]", a, c.Size[a], lim.Min, lim.Max))
		}
	}
	if c.WallThickness <= 0 || c.PartitionThickness < 0 || c.DoorThickness <= 0 {
		errs = append(errs, errors.New("thicknesses must be positive"))
	}
	if c.MinSectionSize < 0 {
		errs = append(errs, errors.New("min_section_size must not be negative"))
	}
	if c.Bays < 1 || c.Doors < 1 {
		errs = append(errs, errors.New("bays and doors must be at least 1"))
	}
	if c.Shelves < 0 {
		errs = append(errs, errors.New("shelves must not be negative"))
	}
	if c.Camera.Width <= 0 || c.Camera.Height <= 0 {
		errs = append(errs, errors.New("camera width and height must be positive"))
	}
	if c.Camera.Position == c.Camera.Target {
		errs = append(errs, errors.New("camera position equals target"))
	}
	if c.Shuffle.Enabled && c.Shuffle.IntervalSeconds <= 0 {
		errs = append(errs, errors.New("shuffle.interval_seconds must be positive"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
