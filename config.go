package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

var (
	configFile string = getEnv("CONFIG_FILE", "config.json")
)

// Default column keyword sets cover the Portuguese headers of the
// source spreadsheets plus their English equivalents.
var (
	defaultNameKeywords     = []string{"nome", "paciente", "name", "patient"}
	defaultBirthKeywords    = []string{"nascimento", "birth", "data", "date"}
	defaultPhoneKeywords    = []string{"tel", "cel", "contato", "phone"}
	defaultGuardianKeywords = []string{"mae", "pai", "resp", "guardian"}
)

func readConfig() (*Config, error) {
	// Get config file
	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("error reading config file:%s", err)
	}

	// Parse JSON data
	var config Config
	err = json.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("error parsing JSON:%s", err)
	}

	// Fill in keyword sets not set by the deployment
	if len(config.ImportColumns.Name) == 0 {
		config.ImportColumns.Name = defaultNameKeywords
	}
	if len(config.ImportColumns.BirthDate) == 0 {
		config.ImportColumns.BirthDate = defaultBirthKeywords
	}
	if len(config.ImportColumns.Phone) == 0 {
		config.ImportColumns.Phone = defaultPhoneKeywords
	}
	if len(config.ImportColumns.Guardian) == 0 {
		config.ImportColumns.Guardian = defaultGuardianKeywords
	}

	if config.PatientsKey == "" {
		config.PatientsKey = "puericultura:patients"
	}

	return &config, nil
}

// referenceTime resolves the injected "now" all computations use. When
// the config leaves it unset, the clock is read once at startup; the
// engine itself only ever sees the resolved value.
func (c *Config) referenceTime() (time.Time, error) {
	if c.ReferenceDate == "" {
		y, m, d := time.Now().UTC().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}

	t, err := parseDate(c.ReferenceDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid reference date: %v", err)
	}
	return t, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
