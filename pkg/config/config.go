package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Values are read from the environment once at startup and are read-only
// afterwards; all request handlers may read them without synchronization.
var (
	// BaseURL is the public base URL of this server, used to mint all ids
	// embedded in presentation documents.
	BaseURL = getEnv("ARCHIVE_BASE_URL", "http://localhost:3333")

	// ImageServerURL is the base URL of the IIIF Image API implementation
	// that tiled image requests are redirected to.
	ImageServerURL = getEnv("ARCHIVE_IMAGE_SERVER_URL", BaseURL)

	// DataRoot is the filesystem root under which all collection containers live.
	DataRoot = getEnv("ARCHIVE_DATA_ROOT", "/data/collections")

	// LogoRelativePath enables the logo on presentation documents when non-empty.
	LogoRelativePath = os.Getenv("ARCHIVE_LOGO_PATH")

	// LogoDimensions holds the logo width and height, from "width,height".
	LogoDimensions = getDimensions("ARCHIVE_LOGO_DIMENSIONS")

	// Attribution is attached to every full presentation document when non-empty.
	Attribution = os.Getenv("ARCHIVE_ATTRIBUTION")

	// ImageTierSeparator joins an item id and an image tier in Image API ids.
	ImageTierSeparator = getEnv("ARCHIVE_IMAGE_TIER_SEPARATOR", "__")

	// RedisAddress is the address of the redis instance backing the task queues.
	RedisAddress = getEnv("ARCHIVE_REDIS_ADDRESS", "localhost:6379")

	// EnrichmentTimeout bounds the metadata enrichment call on the build path.
	EnrichmentTimeout = getDuration("ARCHIVE_ENRICHMENT_TIMEOUT", 10*time.Second)

	// JWTSecret verifies bearer tokens carrying elevated access claims.
	JWTSecret = os.Getenv("ARCHIVE_JWT_SECRET")
)

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getDimensions(key string) [2]int {
	parts := strings.SplitN(os.Getenv(key), ",", 2)
	if len(parts) != 2 {
		return [2]int{}
	}
	w, _ := strconv.Atoi(strings.TrimSpace(parts[0]))
	h, _ := strconv.Atoi(strings.TrimSpace(parts[1]))
	return [2]int{w, h}
}
