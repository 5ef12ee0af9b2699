package pointers

import (
	"errors"
	"fmt"
	"io"
	"math"
)

const defaultInputPath = "/dev/input"

// Config holds the settings of a Bus.
type Config struct {
	// InputPath is the directory holding the evdev nodes.
	InputPath string `json:"input_path"`

	// ScaleFactor converts device coordinates into logical units.
	ScaleFactor float64 `json:"scale_factor"`

	// Verbose turns on debug logging.
	Verbose bool `json:"verbose"`

	// AutoSubscribe subscribes every pointer device as soon as it is connected.
	AutoSubscribe bool `json:"auto_subscribe"`
}

func DefaultConfig() Config {
	return Config{
		InputPath:   defaultInputPath,
		ScaleFactor: 1,
	}
}

// LoadConfig reads a JSON config. Missing fields keep their default value.
func LoadConfig(r io.Reader) (cfg Config, err error) {
	cfg = DefaultConfig()
	if err = json.NewDecoder(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.InputPath == "" {
		return errors.New(ErrEmptyInputPath)
	}
	if c.ScaleFactor <= 0 || math.IsNaN(c.ScaleFactor) || math.IsInf(c.ScaleFactor, 0) {
		return fmt.Errorf(ErrInvalidScaleFactor, c.ScaleFactor)
	}
	return nil
}
