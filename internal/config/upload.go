package config

import (
	"log"
	"os"
	"strconv"
	"sync"
)

type UploadConfig struct {
	Dir        string
	MaxSizeMB  int
	CVMaxChars int
}

var (
	uploadConfig *UploadConfig
	uploadOnce   sync.Once
)

func LoadUploadConfig() *UploadConfig {
	uploadOnce.Do(func() {
		uploadConfig = loadUploadConfig()
	})
	return uploadConfig
}

func loadUploadConfig() *UploadConfig {
	return &UploadConfig{
		Dir:        getEnv("UPLOAD_DIR", "./uploads/cv"),
		MaxSizeMB:  getEnvInt("UPLOAD_MAX_SIZE_MB", 5),
		CVMaxChars: getEnvInt("CV_MAX_CHARS", 20000),
	}
}

// MaxSizeBytes is the upload limit in bytes.
func (c *UploadConfig) MaxSizeBytes() int64 {
	return int64(c.MaxSizeMB) * 1024 * 1024
}

// BodyLimit is the HTTP request body limit: the upload limit plus room for
// the multipart envelope and the other form fields.
func (c *UploadConfig) BodyLimit() int {
	return int(c.MaxSizeBytes()) + 1<<20
}

func getEnvInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		log.Printf("Warning: invalid %s=%q, defaulting to %d", key, raw, fallback)
		return fallback
	}
	return v
}
