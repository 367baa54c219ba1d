package config

import (
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string `env:"SERVER_PORT" envDefault:"8080"`

	// DBDriver selects the storage backend: mysql, sqlite or memory.
	DBDriver   string `env:"DB_DRIVER" envDefault:"sqlite"`
	MySQLDSN   string `env:"MYSQL_DSN" envDefault:"hbnb:hbnb@tcp(localhost:3306)/hbnb?charset=utf8mb4&parseTime=True&loc=Local"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"hbnb.db"`

	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`
	RedisPass string `env:"REDIS_PASSWORD"`

	JWTSecret string `env:"JWT_SECRET" envDefault:"change-me"`

	// Bootstrap admin created by cmd/seed.
	AdminEmail    string `env:"ADMIN_EMAIL" envDefault:"admin@hbnb.io"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"admin1234"`

	SwaggerHost string `env:"SWAGGER_HOST"`
}

// Load builds Config from the environment, honoring a .env file when present.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("loaded configuration from .env")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("parse config: %v", err)
	}
	return cfg
}
