package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Folder mapping backends.
const (
	MappingBackendFile      = "file"
	MappingBackendRedis     = "redis"
	MappingBackendFirestore = "firestore"
)

// Photo storage backends.
const (
	StorageBackendLocal = "local"
	StorageBackendS3    = "s3"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	Port           string
	GinMode        string
	LogLevel       string
	LogFormat      string
	AllowedOrigins string
	AutoMigrate    bool

	DBDriver    string
	DatabaseURL string
	DBHost      string
	DBPort      int
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	DBIAMAuth   bool

	AWSRegion  string
	AWSProfile string

	FolderMappingBackend string
	FolderMappingFile    string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	FirebaseProjectID   string
	FirebaseCredsBase64 string
	FirebaseCredsFile   string

	PhotoStorageBackend string
	PublicStorageRoot   string
	PublicStorageURL    string
	S3Bucket            string
	S3PublicBaseURL     string
	PhotoWorkers        int

	SnapshotEnabled bool
	SnapshotCron    string
}

// Load reads environment variables into a Config with sensible defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:                 getEnv("PORT", "8080"),
		GinMode:              getEnv("GIN_MODE", "release"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		LogFormat:            getEnv("LOG_FORMAT", "json"),
		AllowedOrigins:       strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")),
		DBDriver:             getEnv("DB_DRIVER", "postgres"),
		DatabaseURL:          strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DBHost:               getEnv("DB_HOST", "localhost"),
		DBUser:               strings.TrimSpace(os.Getenv("DB_USER")),
		DBPassword:           os.Getenv("DB_PASSWORD"),
		DBName:               strings.TrimSpace(os.Getenv("DB_NAME")),
		DBSSLMode:            getEnv("DB_SSLMODE", "disable"),
		AWSRegion:            strings.TrimSpace(os.Getenv("AWS_REGION")),
		AWSProfile:           strings.TrimSpace(os.Getenv("AWS_PROFILE")),
		FolderMappingBackend: getEnv("FOLDER_MAPPING_BACKEND", MappingBackendFile),
		FolderMappingFile:    getEnv("FOLDER_MAPPING_FILE", "storage/app/unit_folder_mappings.json"),
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:        os.Getenv("REDIS_PASSWORD"),
		FirebaseProjectID:    strings.TrimSpace(os.Getenv("FIREBASE_PROJECT_ID")),
		FirebaseCredsBase64:  strings.TrimSpace(os.Getenv("FIREBASE_CREDS_BASE64")),
		FirebaseCredsFile:    strings.TrimSpace(os.Getenv("FIREBASE_CREDS_FILE")),
		PhotoStorageBackend:  getEnv("PHOTO_STORAGE_BACKEND", StorageBackendLocal),
		PublicStorageRoot:    getEnv("PUBLIC_STORAGE_ROOT", "storage/app/public"),
		PublicStorageURL:     getEnv("PUBLIC_STORAGE_URL", "/storage"),
		S3Bucket:             strings.TrimSpace(os.Getenv("S3_BUCKET")),
		S3PublicBaseURL:      strings.TrimSpace(os.Getenv("S3_PUBLIC_BASE_URL")),
		SnapshotCron:         getEnv("SNAPSHOT_CRON", "0 0 1 * *"),
	}

	var err error
	if cfg.DBPort, err = parseIntEnv("DB_PORT", 5432); err != nil {
		return Config{}, fmt.Errorf("parse DB_PORT: %w", err)
	}
	if cfg.PhotoWorkers, err = parseIntEnv("PHOTO_WORKERS", 8); err != nil {
		return Config{}, fmt.Errorf("parse PHOTO_WORKERS: %w", err)
	}
	if cfg.RedisDB, err = parseIntEnv("REDIS_DB", 0); err != nil {
		return Config{}, fmt.Errorf("parse REDIS_DB: %w", err)
	}
	if cfg.DBIAMAuth, err = parseBoolEnv("DB_IAM_AUTH", false); err != nil {
		return Config{}, fmt.Errorf("parse DB_IAM_AUTH: %w", err)
	}
	if cfg.AutoMigrate, err = parseBoolEnv("AUTO_MIGRATE", true); err != nil {
		return Config{}, fmt.Errorf("parse AUTO_MIGRATE: %w", err)
	}
	if cfg.SnapshotEnabled, err = parseBoolEnv("SNAPSHOT_ENABLED", false); err != nil {
		return Config{}, fmt.Errorf("parse SNAPSHOT_ENABLED: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate ensures required fields are present.
func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}

	switch c.DBDriver {
	case "postgres":
		if c.DatabaseURL == "" && (c.DBUser == "" || c.DBName == "") {
			return errors.New("provide DATABASE_URL or DB_USER and DB_NAME for postgres")
		}
		if c.DBIAMAuth && c.AWSRegion == "" {
			return errors.New("AWS_REGION is required when DB_IAM_AUTH is enabled")
		}
	case "sqlite":
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for sqlite (file path or :memory:)")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	switch c.FolderMappingBackend {
	case MappingBackendFile:
		if c.FolderMappingFile == "" {
			return errors.New("FOLDER_MAPPING_FILE is required for the file mapping backend")
		}
	case MappingBackendRedis:
		if c.RedisAddr == "" {
			return errors.New("REDIS_ADDR is required for the redis mapping backend")
		}
	case MappingBackendFirestore:
		if err := c.validateFirestore(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported FOLDER_MAPPING_BACKEND %q", c.FolderMappingBackend)
	}

	switch c.PhotoStorageBackend {
	case StorageBackendLocal:
		if c.PublicStorageRoot == "" {
			return errors.New("PUBLIC_STORAGE_ROOT is required for local photo storage")
		}
	case StorageBackendS3:
		if c.S3Bucket == "" || c.AWSRegion == "" {
			return errors.New("S3_BUCKET and AWS_REGION are required for s3 photo storage")
		}
	default:
		return fmt.Errorf("unsupported PHOTO_STORAGE_BACKEND %q", c.PhotoStorageBackend)
	}

	if c.SnapshotEnabled {
		if err := c.validateFirestore(); err != nil {
			return fmt.Errorf("snapshots need firestore: %w", err)
		}
	}
	return nil
}

// FirestoreEnabled reports whether any component needs a Firestore client.
func (c Config) FirestoreEnabled() bool {
	return c.FolderMappingBackend == MappingBackendFirestore || c.SnapshotEnabled || c.FirebaseProjectID != ""
}

func (c Config) validateFirestore() error {
	if c.FirebaseProjectID == "" {
		return errors.New("FIREBASE_PROJECT_ID is required")
	}
	if c.FirebaseCredsBase64 == "" && c.FirebaseCredsFile == "" {
		return errors.New("provide FIREBASE_CREDS_BASE64 or FIREBASE_CREDS_FILE for Firestore auth")
	}
	return nil
}

// FirebaseCredentialsJSON returns the service account JSON bytes and the source used.
func (c Config) FirebaseCredentialsJSON() ([]byte, string, error) {
	if c.FirebaseCredsBase64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(c.FirebaseCredsBase64)
		if err != nil {
			return nil, "base64", fmt.Errorf("decode FIREBASE_CREDS_BASE64: %w", err)
		}
		return decoded, "base64", nil
	}
	if c.FirebaseCredsFile != "" {
		data, err := os.ReadFile(c.FirebaseCredsFile)
		if err != nil {
			return nil, "file", fmt.Errorf("read FIREBASE_CREDS_FILE: %w", err)
		}
		return data, "file", nil
	}
	return nil, "", errors.New("no firebase credentials found")
}

func getEnv(key, defaultVal string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultVal
}

func parseBoolEnv(key string, defaultVal bool) (bool, error) {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return defaultVal, nil
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return false, err
	}
	return parsed, nil
}

func parseIntEnv(key string, defaultVal int) (int, error) {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(val)
}
