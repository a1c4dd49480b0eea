package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/goserg/jassrating/internal/elo"
)

var ErrInvalidConfig = errors.New("invalid config")

type Rating struct {
	Baseline float64 `toml:"baseline"`
	K        float64 `toml:"k"`
	Scale    float64 `toml:"scale"`
	Strategy string  `toml:"strategy"`
}

type Storage struct {
	SqliteFile string `toml:"sqlite_file"`
}

type Rebuild struct {
	BatchSize int `toml:"batch_size"`
}

type Server struct {
	Host  string `toml:"host"`
	Port  int    `toml:"port"`
	Debug bool   `toml:"debug_mode"`
}

type Log struct {
	Level string `toml:"level"`
}

type Config struct {
	Rating  Rating
	Storage Storage
	Rebuild Rebuild
	Server  Server
	Log     Log
}

func Default() Config {
	return Config{
		Rating: Rating{
			Baseline: 100,
			K:        15,
			Scale:    1000,
			Strategy: string(elo.ApplyFull),
		},
		Storage: Storage{
			SqliteFile: "rating.sqlite",
		},
		Rebuild: Rebuild{
			BatchSize: 25,
		},
		Server: Server{
			Host: "127.0.0.1",
			Port: 3000,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// New reads the config file over the defaults and applies env overrides.
// A missing file is not an error.
func New(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		_, err := toml.DecodeFile(path, &cfg)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("decode %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("JASS_SQLITE_FILE"); v != "" {
		cfg.Storage.SqliteFile = v
	}
	if v := os.Getenv("JASS_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("JASS_RATING_STRATEGY"); v != "" {
		cfg.Rating.Strategy = v
	}
	if v := os.Getenv("JASS_RATING_K"); v != "" {
		k, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: JASS_RATING_K: %v", ErrInvalidConfig, err)
		}
		cfg.Rating.K = k
	}
	if v := os.Getenv("JASS_RATING_SCALE"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: JASS_RATING_SCALE: %v", ErrInvalidConfig, err)
		}
		cfg.Rating.Scale = scale
	}
	return nil
}

func (c Config) Validate() error {
	var err error
	if c.Rating.K <= 0 {
		err = errors.Join(err, fmt.Errorf("%w: rating.k must be positive", ErrInvalidConfig))
	}
	if c.Rating.Scale <= 0 {
		err = errors.Join(err, fmt.Errorf("%w: rating.scale must be positive", ErrInvalidConfig))
	}
	if _, serr := elo.ParseStrategy(c.Rating.Strategy); serr != nil {
		err = errors.Join(err, fmt.Errorf("%w: %v", ErrInvalidConfig, serr))
	}
	if c.Rebuild.BatchSize <= 0 {
		err = errors.Join(err, fmt.Errorf("%w: rebuild.batch_size must be positive", ErrInvalidConfig))
	}
	if c.Storage.SqliteFile == "" {
		err = errors.Join(err, fmt.Errorf("%w: storage.sqlite_file is empty", ErrInvalidConfig))
	}
	return err
}

// Calculator builds the rating calculator described by the [rating] section.
func (c Config) Calculator() (elo.Calculator, error) {
	strategy, err := elo.ParseStrategy(c.Rating.Strategy)
	if err != nil {
		return elo.Calculator{}, err
	}
	return elo.New(c.Rating.K, c.Rating.Scale, strategy)
}
