package config

import (
	"os"
	"path/filepath"
)

// Config carries everything read from the environment at boot. Load is
// called once from main after godotenv has run; nothing else touches the
// environment except the auth package (JWT_SECRET/JWT_EXPIRES_IN) and the
// logger (LOG_LEVEL).
type Config struct {
	HTTPPort        string
	DataDir         string
	UploadDir       string
	GCSBucket       string
	GCSPrefix       string
	CalendarID      string
	CredentialsFile string
}

func Load() Config {
	cfg := Config{
		HTTPPort:        getenv("HTTP_PORT", "8080"),
		DataDir:         getenv("DATA_DIR", "data"),
		UploadDir:       getenv("UPLOAD_DIR", "uploads"),
		GCSBucket:       os.Getenv("GCS_BUCKET"),
		GCSPrefix:       os.Getenv("GCS_PREFIX"),
		CalendarID:      os.Getenv("GOOGLE_CALENDAR_ID"),
		CredentialsFile: os.Getenv("GOOGLE_CREDENTIALS_FILE"),
	}
	return cfg
}

// SnapshotPath is the durable blob holding all six tables.
func (c Config) SnapshotPath() string {
	return filepath.Join(c.DataDir, "inanis_garage_data.json")
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
