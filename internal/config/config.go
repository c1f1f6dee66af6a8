package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	JWTSecret          string
	TokenExpireMinutes int

	AdminAPIToken string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioPublicURL string
	MinioUseSSL    bool

	MaxImageSizeMB    int
	AllowedImageTypes []string

	OverpassURL  string
	NominatimURL string
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getint(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func Load() *Config {
	_ = godotenv.Load(".env")

	c := &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "roadwatch"),
		MySQLUser: getenv("MYSQL_USER", "roadwatch"),
		MySQLPass: getenv("MYSQL_PASS", "roadwatch"),

		RedisAddr: getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:   getint("REDIS_DB", 0),

		JWTSecret:          os.Getenv("JWT_SECRET"),
		TokenExpireMinutes: getint("ACCESS_TOKEN_EXPIRE_MINUTES", 30),

		AdminAPIToken: os.Getenv("ADMIN_API_TOKEN"),

		MinioEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY_ID"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_ACCESS_KEY"),
		MinioBucket:    getenv("MINIO_BUCKET_NAME", "roadwatch-images"),
		MinioPublicURL: os.Getenv("MINIO_PUBLIC_URL"),
		MinioUseSSL:    os.Getenv("MINIO_USE_SSL") == "true",

		MaxImageSizeMB: getint("MAX_IMAGE_SIZE_MB", 10),

		OverpassURL:  os.Getenv("OVERPASS_URL"),
		NominatimURL: os.Getenv("NOMINATIM_URL"),
	}

	types := getenv("ALLOWED_IMAGE_TYPES", "image/jpeg,image/jpg,image/png,image/webp")
	for _, t := range strings.Split(types, ",") {
		if t = strings.TrimSpace(t); t != "" {
			c.AllowedImageTypes = append(c.AllowedImageTypes, t)
		}
	}
	return c
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.JWTSecret == "" {
		return errors.New("missing JWT_SECRET")
	}
	if c.AdminAPIToken == "" {
		return errors.New("missing ADMIN_API_TOKEN")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

func (c *Config) MaxImageSizeBytes() int64 {
	return int64(c.MaxImageSizeMB) * 1024 * 1024
}
