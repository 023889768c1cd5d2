package engine

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	CameraViewport     = "viewport"
	CameraOrthographic = "orthographic"
	CameraPerspective  = "perspective"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type CameraConfig struct {
	// One of viewport, orthographic or perspective.
	Kind     string     `toml:"kind" yaml:"kind"`
	Position [3]float32 `toml:"position" yaml:"position"`
	Target   [3]float32 `toml:"target" yaml:"target"`
	// Perspective only, in degrees.
	FieldOfView float32 `toml:"field_of_view" yaml:"field_of_view"`
	Near        float32 `toml:"near" yaml:"near"`
	Far         float32 `toml:"far" yaml:"far"`
}

type ApplicationConfig struct {
	// The application name used in windowing, if applicable.
	Name string `toml:"name" yaml:"name"`
	// Window starting position x axis, if applicable.
	StartPosX uint32 `toml:"start_pos_x" yaml:"start_pos_x"`
	// Window starting position y axis, if applicable.
	StartPosY uint32 `toml:"start_pos_y" yaml:"start_pos_y"`
	// Window starting width, if applicable.
	StartWidth uint32 `toml:"start_width" yaml:"start_width"`
	// Window starting height, if applicable.
	StartHeight uint32 `toml:"start_height" yaml:"start_height"`

	LogLevel  string `toml:"log_level" yaml:"log_level"`
	AssetsDir string `toml:"assets_dir" yaml:"assets_dir"`
	// 0 runs the loop as fast as the host allows.
	TargetFPS   int    `toml:"target_fps" yaml:"target_fps"`
	Workers     int    `toml:"workers" yaml:"workers"`
	MaxTextures uint32 `toml:"max_textures" yaml:"max_textures"`
	// Run without a window, drawing into the in-memory recorder.
	Headless bool `toml:"headless" yaml:"headless"`

	Camera CameraConfig `toml:"camera" yaml:"camera"`
}

func DefaultConfig() *ApplicationConfig {
	return &ApplicationConfig{
		Name:        "WOOD",
		StartPosX:   100,
		StartPosY:   100,
		StartWidth:  1280,
		StartHeight: 720,
		LogLevel:    "info",
		AssetsDir:   "assets",
		TargetFPS:   60,
		Workers:     2,
		MaxTextures: 1024,
		Camera: CameraConfig{
			Kind:        CameraViewport,
			FieldOfView: 60,
			Near:        1,
			Far:         2000,
		},
	}
}

// LoadConfig reads a .toml, .yaml or .yml file on top of DefaultConfig and validates the result.
func LoadConfig(path string) (*ApplicationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, config)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, config)
	default:
		return nil, fmt.Errorf("unsupported config format '%s': %w", ext, ErrInvalidConfig)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *ApplicationConfig) Validate() error {
	var errs []error
	if c.Name == "" {
		errs = append(errs, errors.New("name is empty"))
	}
	if c.StartWidth == 0 || c.StartHeight == 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d", c.StartWidth, c.StartHeight))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log level: %w", err))
	}
	if c.TargetFPS < 0 {
		errs = append(errs, fmt.Errorf("target fps %d", c.TargetFPS))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers %d", c.Workers))
	}
	if c.MaxTextures == 0 {
		errs = append(errs, errors.New("max textures is 0"))
	}
	switch c.Camera.Kind {
	case CameraViewport, CameraOrthographic:
	case CameraPerspective:
		if c.Camera.FieldOfView <= 0 || c.Camera.FieldOfView >= 180 {
			errs = append(errs, fmt.Errorf("camera field of view %g", c.Camera.FieldOfView))
		}
		if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
			errs = append(errs, fmt.Errorf("camera clip planes %g..%g", c.Camera.Near, c.Camera.Far))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown camera kind '%s'", c.Camera.Kind))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
