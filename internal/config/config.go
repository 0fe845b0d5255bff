// Package config loads daemon defaults from the environment, with an
// optional .env overlay. Command-line flags take precedence over
// anything loaded here.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/sweeney/envirocontrol/internal/control"
	"github.com/sweeney/envirocontrol/internal/intent"
	"github.com/sweeney/envirocontrol/internal/link"
	"github.com/sweeney/envirocontrol/internal/store"
)

// Config holds daemon configuration.
type Config struct {
	// Serial link
	Device string
	Baud   int

	// MQTT ("off" disables the broker entirely)
	Broker string

	// Persistence
	DBPath     string
	QueueDepth int

	// HTTP status page
	HTTPAddr string

	// Control
	Threshold float64
	Band      float64

	// Voice
	WakeWord string

	// System
	Heartbeat time.Duration
	Forecast  bool
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first if present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Device: getEnv("ENVIRO_DEVICE", "/dev/ttyUSB0"),
		Baud:   getEnvInt("ENVIRO_BAUD", link.DefaultBaudRate),

		Broker: getEnv("ENVIRO_BROKER", "tcp://localhost:1883"),

		DBPath:     getEnv("ENVIRO_DB", "envirocontrol.db"),
		QueueDepth: getEnvInt("ENVIRO_QUEUE_DEPTH", store.DefaultQueueDepth),

		HTTPAddr: getEnv("ENVIRO_HTTP", ":8080"),

		Threshold: getEnvFloat("ENVIRO_THRESHOLD", control.DefaultThreshold),
		Band:      getEnvFloat("ENVIRO_BAND", control.DefaultBand),

		WakeWord: getEnv("ENVIRO_WAKE_WORD", intent.DefaultWakeWord),

		Heartbeat: getEnvDuration("ENVIRO_HEARTBEAT", 15*time.Minute),
		Forecast:  getEnvBool("ENVIRO_FORECAST", false),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: failed to parse %s as int, using default: %v", key, err)
		return defaultValue
	}
	return intValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Warning: failed to parse %s as float, using default: %v", key, err)
		return defaultValue
	}
	return floatValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Warning: failed to parse %s as bool, using default: %v", key, err)
		return defaultValue
	}
	return boolValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: failed to parse %s as duration, using default: %v", key, err)
		return defaultValue
	}
	return d
}
