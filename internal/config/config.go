package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/midbel/gridcalc/format"
	"github.com/midbel/gridcalc/grid"
	"github.com/midbel/gridcalc/layout"
)

const EnvFile = "GRIDCALC_CONFIG"

var ErrInvalid = errors.New("invalid configuration")

type Grid struct {
	Lines   int64 `toml:"lines"`
	Columns int64 `toml:"columns"`
	Sparse  bool  `toml:"sparse"`
}

type Print struct {
	Width     int    `toml:"width"`
	Separator string `toml:"separator"`
	Number    string `toml:"number"`
}

type Log struct {
	Level string `toml:"level"`
}

type Config struct {
	Grid  Grid  `toml:"grid"`
	Print Print `toml:"print"`
	Log   Log   `toml:"log"`
}

func Default() Config {
	return Config{
		Grid: Grid{
			Lines:   10,
			Columns: 10,
		},
		Print: Print{
			Width:     12,
			Separator: "|",
		},
		Log: Log{
			Level: "warn",
		},
	}
}

// Locate gives the file to load: file when set, otherwise the file named by
// the GRIDCALC_CONFIG variable. An empty result means defaults only.
func Locate(file string) string {
	if file != "" {
		return file
	}
	return os.Getenv(EnvFile)
}

// Load reads file on top of the defaults. Keys that are not known are
// reported as an error.
func Load(file string) (Config, error) {
	cfg := Default()
	if file == "" {
		return cfg, nil
	}
	meta, err := toml.DecodeFile(file, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("%s: failed to parse TOML: %w", file, err)
	}
	if keys := meta.Undecoded(); len(keys) > 0 {
		var list []string
		for _, k := range keys {
			list = append(list, k.String())
		}
		return cfg, fmt.Errorf("%s: %w: unknown keys %s", file, ErrInvalid, strings.Join(list, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", file, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Grid.Lines <= 0 || c.Grid.Columns <= 0 {
		return fmt.Errorf("%w: [grid] lines and columns must be positive", ErrInvalid)
	}
	if c.Print.Width < 0 {
		return fmt.Errorf("%w: [print] width must not be negative", ErrInvalid)
	}
	if _, err := format.Parse(c.Print.Number); err != nil {
		return fmt.Errorf("%w: [print] number: %w", ErrInvalid, err)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("%w: [log] level: %w", ErrInvalid, err)
	}
	return nil
}

func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(c.Log.Level))
	return level, err
}

func (c Config) Dimension() layout.Dimension {
	return layout.Dimension{
		Lines:   c.Grid.Lines,
		Columns: c.Grid.Columns,
	}
}

// Options gives the options of the sheets created with this configuration.
func (c Config) Options() []grid.Option {
	var opts []grid.Option
	if c.Grid.Sparse {
		opts = append(opts, grid.WithSparseStorage())
	}
	return opts
}

func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
