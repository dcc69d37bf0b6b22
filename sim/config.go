package sim

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"potlcd/core"
)

// Config describes a simulated board and the scenario run on it
type Config struct {
	Firmware FirmwareConfig `yaml:"firmware"`
	Pins     PinConfig      `yaml:"pins"`
	ADC      ADCConfig      `yaml:"adc"`
	Pot      PotConfig      `yaml:"pot"`
	Photo    PhotoConfig    `yaml:"photo"`
	Button   ButtonConfig   `yaml:"button"`
	Display  DisplayConfig  `yaml:"display"`
	Duration time.Duration  `yaml:"duration"`
	Debug    bool           `yaml:"debug"`
}

// FirmwareConfig mirrors the firmware's compile-time settings
type FirmwareConfig struct {
	DebounceWindow time.Duration `yaml:"debounce_window"`
	RefreshPeriod  time.Duration `yaml:"refresh_period"`
	RefreshMode    string        `yaml:"refresh_mode"` // "periodic" or "oneshot"
	SkipRetrigger  bool          `yaml:"skip_retrigger"`
	VRefMillivolts uint32        `yaml:"vref_millivolts"`
	ResolutionBits uint8         `yaml:"resolution_bits"`
}

// PinConfig contains the GPIO assignment
type PinConfig struct {
	Switch uint32   `yaml:"switch"`
	RS     uint32   `yaml:"rs"`
	EN     uint32   `yaml:"en"`
	Data   []uint32 `yaml:"data"` // DB0..DB7
}

// ADCConfig contains converter channels and timing
type ADCConfig struct {
	PotChannel   uint8         `yaml:"pot_channel"`
	PhotoChannel uint8         `yaml:"photo_channel"`
	Conversion   time.Duration `yaml:"conversion"`
}

// PotConfig is the potentiometer wiper position as a conversion code
type PotConfig struct {
	Code uint16 `yaml:"code"`
}

// PhotoConfig is the light model
type PhotoConfig struct {
	Base      float32       `yaml:"base"`
	Amplitude float32       `yaml:"amplitude"`
	Period    time.Duration `yaml:"period"`
}

// ButtonConfig schedules presses of the selection button
type ButtonConfig struct {
	Presses        []time.Duration `yaml:"presses"` // offsets from the end of setup
	Hold           time.Duration   `yaml:"hold"`
	Bounces        int             `yaml:"bounces"`
	BounceInterval time.Duration   `yaml:"bounce_interval"`
}

// DisplayConfig is the character geometry
type DisplayConfig struct {
	Cols uint8 `yaml:"cols"`
	Rows uint8 `yaml:"rows"`
}

// Default returns the course board: pot on A15, photoresistor on A14,
// a 16x2 display and one bouncy press two and a half seconds in.
func Default() *Config {
	return &Config{
		Firmware: FirmwareConfig{
			DebounceWindow: 5 * time.Millisecond,
			RefreshPeriod:  time.Second,
			RefreshMode:    "periodic",
			VRefMillivolts: 3300,
			ResolutionBits: 14,
		},
		Pins: PinConfig{
			Switch: 1,
			RS:     2,
			EN:     3,
			Data:   []uint32{4, 5, 6, 7, 8, 9, 10, 11},
		},
		ADC: ADCConfig{
			PotChannel:   15,
			PhotoChannel: 14,
			Conversion:   4 * time.Microsecond,
		},
		Pot: PotConfig{Code: 8192},
		Photo: PhotoConfig{
			Base:      6000,
			Amplitude: 2000,
			Period:    10 * time.Second,
		},
		Button: ButtonConfig{
			Presses:        []time.Duration{2500 * time.Millisecond},
			Hold:           200 * time.Millisecond,
			Bounces:        3,
			BounceInterval: 300 * time.Microsecond,
		},
		Display:  DisplayConfig{Cols: 16, Rows: 2},
		Duration: 5 * time.Second,
	}
}

// Load loads configuration from a YAML file. A missing file or missing
// fields fall back to defaults.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ensureDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to a YAML file
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Config) ensureDefaults() {
	def := Default()

	if c.Firmware.DebounceWindow == 0 {
		c.Firmware.DebounceWindow = def.Firmware.DebounceWindow
	}
	if c.Firmware.RefreshPeriod == 0 {
		c.Firmware.RefreshPeriod = def.Firmware.RefreshPeriod
	}
	if c.Firmware.RefreshMode == "" {
		c.Firmware.RefreshMode = def.Firmware.RefreshMode
	}
	if c.Firmware.VRefMillivolts == 0 {
		c.Firmware.VRefMillivolts = def.Firmware.VRefMillivolts
	}
	if c.Firmware.ResolutionBits == 0 {
		c.Firmware.ResolutionBits = def.Firmware.ResolutionBits
	}

	if len(c.Pins.Data) == 0 {
		c.Pins.Data = def.Pins.Data
	}
	if c.ADC.PotChannel == c.ADC.PhotoChannel {
		c.ADC.PotChannel = def.ADC.PotChannel
		c.ADC.PhotoChannel = def.ADC.PhotoChannel
	}
	if c.ADC.Conversion == 0 {
		c.ADC.Conversion = def.ADC.Conversion
	}

	if c.Photo.Period == 0 {
		c.Photo.Period = def.Photo.Period
	}
	if c.Button.Hold == 0 {
		c.Button.Hold = def.Button.Hold
	}
	if c.Button.BounceInterval == 0 {
		c.Button.BounceInterval = def.Button.BounceInterval
	}

	if c.Display.Cols == 0 {
		c.Display.Cols = def.Display.Cols
	}
	if c.Display.Rows == 0 {
		c.Display.Rows = def.Display.Rows
	}
	if c.Duration == 0 {
		c.Duration = def.Duration
	}
}

// Validate checks values the defaults cannot repair
func (c *Config) Validate() error {
	if _, err := c.refreshMode(); err != nil {
		return err
	}
	if len(c.Pins.Data) != 8 {
		return fmt.Errorf("pins.data needs 8 pins, got %d", len(c.Pins.Data))
	}
	if c.Firmware.ResolutionBits > 16 {
		return fmt.Errorf("resolution_bits %d out of range", c.Firmware.ResolutionBits)
	}
	if c.Display.Cols == 0 || c.Display.Rows == 0 || c.Display.Cols > hdLineLen || c.Display.Rows > 2 {
		return fmt.Errorf("display %dx%d not supported", c.Display.Cols, c.Display.Rows)
	}
	return nil
}

func (c *Config) refreshMode() (core.RefreshMode, error) {
	switch c.Firmware.RefreshMode {
	case "periodic", "":
		return core.RefreshPeriodic, nil
	case "oneshot":
		return core.RefreshOneShot, nil
	default:
		return 0, fmt.Errorf("unknown refresh_mode %q", c.Firmware.RefreshMode)
	}
}

// CoreConfig converts to the firmware configuration
func (c *Config) CoreConfig() (core.Config, error) {
	mode, err := c.refreshMode()
	if err != nil {
		return core.Config{}, err
	}

	cfg := core.DefaultConfig()
	cfg.SwitchPin = core.GPIOPin(c.Pins.Switch)
	cfg.PotChannel = core.ADCChannelID(c.ADC.PotChannel)
	cfg.PhotoChannel = core.ADCChannelID(c.ADC.PhotoChannel)
	cfg.DebounceWindowUS = micros(c.Firmware.DebounceWindow)
	cfg.RefreshPeriodUS = micros(c.Firmware.RefreshPeriod)
	cfg.RefreshMode = mode
	cfg.RetriggerOnRender = !c.Firmware.SkipRetrigger
	cfg.VRefMillivolts = c.Firmware.VRefMillivolts
	cfg.ResolutionBits = c.Firmware.ResolutionBits
	cfg.DisplayCols = c.Display.Cols
	cfg.DisplayRows = c.Display.Rows
	return cfg, nil
}

func micros(d time.Duration) uint32 {
	return uint32(d / time.Microsecond)
}
