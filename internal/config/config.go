package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type HTTPServer struct {
	Host string
	Port string
}

type RedisCache struct {
	Host     string
	Port     string
	Password string
}

type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// Catalog configures the external movie-catalog client.
type Catalog struct {
	BaseURL  string
	Token    string
	Language string
	Region   string
}

// Matching bounds the materializer and the non-host wait loop.
type Matching struct {
	Pages        int
	PollInterval time.Duration
}

type Config struct {
	HTTP     HTTPServer
	Redis    RedisCache
	Postgres Postgres
	Catalog  Catalog
	Matching Matching
}

const logtag = "[config]"

func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Printf("%s using env from .env", logtag)
	}

	cfg := &Config{
		HTTP:     *newHTTP(),
		Redis:    *newRedis(),
		Postgres: *newPostgres(),
		Catalog:  *newCatalog(),
		Matching: *newMatching(),
	}

	return cfg
}

func newHTTP() *HTTPServer {
	return &HTTPServer{
		Port: getenv("HTTP_PORT", "8080"),
		Host: getenv("HTTP_HOST", "localhost"),
	}
}

func newRedis() *RedisCache {
	return &RedisCache{
		Port:     getenv("REDIS_PORT", "6379"),
		Host:     getenv("REDIS_HOST", "redis"),
		Password: getenv("REDIS_PASSWORD", ""),
	}
}

func newPostgres() *Postgres {
	return &Postgres{
		Host:     getenv("DB_HOST", "localhost"),
		Port:     getenv("DB_PORT", "5432"),
		User:     getenv("DB_USER", "admin"),
		Password: getenv("DB_PASSWORD", "shared"),
		DBName:   getenv("DB_NAME", "reelmatch"),
		SSLMode:  getenv("DB_SSLMODE", "disable"),
	}
}

func newCatalog() *Catalog {
	return &Catalog{
		BaseURL:  getenv("CATALOG_BASE_URL", "https://api.themoviedb.org/3"),
		Token:    getenv("CATALOG_TOKEN", ""),
		Language: getenv("CATALOG_LANGUAGE", "da-DK"),
		Region:   getenv("CATALOG_REGION", "DK"),
	}
}

func newMatching() *Matching {
	pages, err := strconv.Atoi(getenv("MATCHING_PAGES", "4"))
	if err != nil || pages <= 0 {
		pages = 4
	}
	pollSeconds, err := strconv.Atoi(getenv("MATCHING_POLL_SECONDS", "2"))
	if err != nil || pollSeconds <= 0 {
		pollSeconds = 2
	}
	return &Matching{
		Pages:        pages,
		PollInterval: time.Duration(pollSeconds) * time.Second,
	}
}

// DatabaseURL builds the postgres URL golang-migrate expects.
func (p Postgres) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		p.User, url.QueryEscape(p.Password), p.Host, p.Port, p.DBName, p.SSLMode)
}

func getenv(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	return val
}
