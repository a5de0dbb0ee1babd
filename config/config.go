package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	Addr         string
	Limit        int
	SampleSize   int
	DateFormat   string
	StrictDTypes bool
	LogLevel     log.Level
	Width        int
	Height       int
}

var (
	config *Config
	once   sync.Once
)

// GetConfig returns the process wide configuration, loaded once from the
// environment and an optional .env file.
func GetConfig() *Config {
	once.Do(func() {
		err := godotenv.Load()
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.WithError(err).Warn("error loading .env file")
		}
		config = Load(os.Getenv)
	})
	return config
}

// Load builds a configuration from getenv, falling back to defaults for
// unset or malformed values.
func Load(getenv func(string) string) *Config {
	c := &Config{
		Addr:       getenv("PREVIEW_ADDR"),
		Limit:      intValue(getenv, "PREVIEW_LIMIT", 1000),
		SampleSize: intValue(getenv, "PREVIEW_SAMPLE_SIZE", 0),
		DateFormat: getenv("PREVIEW_DATE_FORMAT"),
		Width:      intValue(getenv, "PREVIEW_WIDTH", 168),
		Height:     intValue(getenv, "PREVIEW_HEIGHT", 100),
		LogLevel:   log.InfoLevel,
	}
	if c.Addr == "" {
		c.Addr = ":8005"
	}
	if c.DateFormat == "" {
		c.DateFormat = "YYYYMMDD"
	}
	if v := getenv("PREVIEW_STRICT_DTYPES"); v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			log.WithField("PREVIEW_STRICT_DTYPES", v).Warn("invalid boolean, strict mode off")
		}
		c.StrictDTypes = strict
	}
	if v := getenv("PREVIEW_LOG_LEVEL"); v != "" {
		level, err := log.ParseLevel(v)
		if err != nil {
			log.WithField("PREVIEW_LOG_LEVEL", v).Warn("invalid log level, using info")
		} else {
			c.LogLevel = level
		}
	}
	return c
}

func intValue(getenv func(string) string, key string, def int) int {
	v := getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.WithField(key, v).Warn("invalid number, using default")
		return def
	}
	return n
}
