// Package config содержит логику чтения конфигурации системы учёта животных-спасателей.
package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config содержит параметры подключения к хранилищу и начальной настройки.
type Config struct {
	MongoURI         string `env:"MONGO_URI"`
	DatabaseName     string `env:"DATABASE_NAME"`
	AnimalCollection string `env:"ANIMAL_COLLECTION"`
	UserCollection   string `env:"USER_COLLECTION"`
	AdminPassword    string `env:"ADMIN_PASSWORD"`
	SampleDataFile   string `env:"SAMPLE_DATA_FILE"`
}

// Parse считывает конфигурацию из флагов командной строки и переменных
// окружения; переменные окружения имеют приоритет.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envMongoURI := cfg.MongoURI
	envDatabaseName := cfg.DatabaseName
	envAnimalCollection := cfg.AnimalCollection
	envUserCollection := cfg.UserCollection
	envAdminPassword := cfg.AdminPassword
	envSampleDataFile := cfg.SampleDataFile

	flag.StringVar(&cfg.MongoURI, "m", "mongodb://localhost:27017", "store connection URI")
	flag.StringVar(&cfg.DatabaseName, "d", "rescue_animals_db", "database name")
	flag.StringVar(&cfg.AnimalCollection, "c", "animals", "animal collection name")
	flag.StringVar(&cfg.UserCollection, "u", "users", "user collection name")
	flag.StringVar(&cfg.AdminPassword, "p", "admin1234", "default admin bootstrap password")
	flag.StringVar(&cfg.SampleDataFile, "s", "", "sample data JSON file (optional)")

	flag.Parse()

	if envMongoURI != "" {
		cfg.MongoURI = envMongoURI
	}
	if envDatabaseName != "" {
		cfg.DatabaseName = envDatabaseName
	}
	if envAnimalCollection != "" {
		cfg.AnimalCollection = envAnimalCollection
	}
	if envUserCollection != "" {
		cfg.UserCollection = envUserCollection
	}
	if envAdminPassword != "" {
		cfg.AdminPassword = envAdminPassword
	}
	if envSampleDataFile != "" {
		cfg.SampleDataFile = envSampleDataFile
	}

	return cfg, nil
}
