package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TuningEnv names the environment variable holding an optional tuning file path.
const TuningEnv = "HITBOX_TUNING"

// Tuning holds every gameplay constant. The zero-config defaults reproduce
// the prototype exactly; a YAML file may override individual fields.
type Tuning struct {
	// Player
	Acceleration float64 `yaml:"acceleration"` // units/s² added per second of held input
	PlayerSize   float64 `yaml:"player_size"`
	SensorSize   float64 `yaml:"sensor_size"`

	// Mob
	MobSize float64    `yaml:"mob_size"`
	MobPos  [2]float64 `yaml:"mob_position"`

	// Friction: velocity is multiplied by 1 - dt*Friction each frame
	Friction float64 `yaml:"friction"`

	// Camera: world units per view pixel
	CameraScale float64 `yaml:"camera_scale"`

	// Logical view in pixels, scaled onto the terminal
	ViewWidth  float64 `yaml:"view_width"`
	ViewHeight float64 `yaml:"view_height"`

	TargetFPS int `yaml:"target_fps"`
}

// DefaultTuning returns the prototype's built-in values.
func DefaultTuning() Tuning {
	return Tuning{
		Acceleration: 0.4,
		PlayerSize:   1,
		SensorSize:   3,
		MobSize:      1,
		MobPos:       [2]float64{3, 0},
		Friction:     10,
		CameraScale:  1.0 / 50.0,
		ViewWidth:    1280,
		ViewHeight:   720,
		TargetFPS:    60,
	}
}

// LoadTuning reads a YAML tuning file over the defaults.
// Fields missing from the file keep their default value.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()

	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read tuning: %w", err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("parse tuning %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning %s: %w", path, err)
	}
	return t, nil
}

// TuningFromEnv loads the file named by HITBOX_TUNING, or returns the
// defaults when the variable is unset.
func TuningFromEnv() (Tuning, error) {
	path := GetEnv(TuningEnv, "")
	if path == "" {
		return DefaultTuning(), nil
	}
	return LoadTuning(path)
}

// Validate rejects values the renderer or frame loop cannot work with.
// Gameplay values (acceleration, friction) are not range checked.
func (t Tuning) Validate() error {
	if t.CameraScale <= 0 {
		return fmt.Errorf("camera_scale must be positive, got %v", t.CameraScale)
	}
	if t.ViewWidth <= 0 || t.ViewHeight <= 0 {
		return fmt.Errorf("view must be positive, got %vx%v", t.ViewWidth, t.ViewHeight)
	}
	if t.TargetFPS <= 0 {
		return fmt.Errorf("target_fps must be positive, got %d", t.TargetFPS)
	}
	return nil
}
