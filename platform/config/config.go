// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
	GetRateLimitRPS() float64
	GetRateLimitBurst() int
}

// GeoConfig provides settings for the geocoding resolver.
type GeoConfig interface {
	GetNominatimBaseURL() string
	GetGeoRadiusKm() float64
	GetGeoCacheSize() int
}

// SourcesConfig provides base URLs and timeouts for upstream data providers.
type SourcesConfig interface {
	GetGBIFBaseURL() string
	GetWikipediaBaseURL() string
	GetINaturalistBaseURL() string
	GetXenoCantoBaseURL() string
	GetNewsFeedBaseURL() string
	GetGBIFTimeout() time.Duration
	GetWikipediaTimeout() time.Duration
	GetINaturalistTimeout() time.Duration
	GetXenoCantoTimeout() time.Duration
	GetNewsFeedTimeout() time.Duration
	GetTaxonDenylistFile() string
	GetSpeciesCacheSize() int
}

// ExploreConfig provides settings for the explore fan-out pipeline.
type ExploreConfig interface {
	GetSpeciesLimit() int
	GetFanOutConcurrency() int
	GetExploreDeadline() time.Duration
}

// GeminiConfig provides settings for the narration text-generation provider.
type GeminiConfig interface {
	GetGeminiAPIKey() string
	GetGeminiModel() string
	IsNarrationEnabled() bool
}

// AudioConfig provides settings for the TTS and audio-mixing boundary.
type AudioConfig interface {
	GetTTSBaseURL() string
	GetTTSVoice() string
	GetBackgroundMusicDir() string
	GetAudioOutputDir() string
	GetAudioWorkers() int
	IsAudioEnabled() bool
}

// SchedulerConfig provides settings for the asynq background worker.
type SchedulerConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
}

// ProfilesConfig provides settings for the profile-validation module.
type ProfilesConfig interface {
	GetProfileCacheSize() int
	GetProfileProbeTimeout() time.Duration
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                 string
	HTTPAddr            string
	CORSAllowAll        bool
	CORSOrigins         []string
	CORSAllowCreds      bool
	RateLimitRPS        float64
	RateLimitBurst      int
	NominatimBaseURL    string
	GeoRadiusKm         float64
	GeoCacheSize        int
	GBIFBaseURL         string
	WikipediaBaseURL    string
	INaturalistBaseURL  string
	XenoCantoBaseURL    string
	NewsFeedBaseURL     string
	GBIFTimeout         time.Duration
	WikipediaTimeout    time.Duration
	INaturalistTimeout  time.Duration
	XenoCantoTimeout    time.Duration
	NewsFeedTimeout     time.Duration
	TaxonDenylistFile   string
	SpeciesCacheSize    int
	SpeciesLimit        int
	FanOutConcurrency   int
	ExploreDeadline     time.Duration
	GeminiAPIKey        string
	GeminiModel         string
	TTSBaseURL          string
	TTSVoice            string
	BackgroundMusicDir  string
	AudioOutputDir      string
	AudioWorkers        int
	RedisURL            string
	RedisTLSInsecure    bool
	AsynqQueueName      string
	AsynqConcurrency    int
	ProfileCacheSize    int
	ProfileProbeTimeout time.Duration
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }
func (c *Config) GetRateLimitRPS() float64 { return c.RateLimitRPS }
func (c *Config) GetRateLimitBurst() int   { return c.RateLimitBurst }

// GeoConfig implementation
func (c *Config) GetNominatimBaseURL() string { return c.NominatimBaseURL }
func (c *Config) GetGeoRadiusKm() float64     { return c.GeoRadiusKm }
func (c *Config) GetGeoCacheSize() int        { return c.GeoCacheSize }

// SourcesConfig implementation
func (c *Config) GetGBIFBaseURL() string             { return c.GBIFBaseURL }
func (c *Config) GetWikipediaBaseURL() string        { return c.WikipediaBaseURL }
func (c *Config) GetINaturalistBaseURL() string      { return c.INaturalistBaseURL }
func (c *Config) GetXenoCantoBaseURL() string        { return c.XenoCantoBaseURL }
func (c *Config) GetNewsFeedBaseURL() string         { return c.NewsFeedBaseURL }
func (c *Config) GetGBIFTimeout() time.Duration      { return c.GBIFTimeout }
func (c *Config) GetWikipediaTimeout() time.Duration { return c.WikipediaTimeout }
func (c *Config) GetINaturalistTimeout() time.Duration {
	return c.INaturalistTimeout
}
func (c *Config) GetXenoCantoTimeout() time.Duration { return c.XenoCantoTimeout }
func (c *Config) GetNewsFeedTimeout() time.Duration  { return c.NewsFeedTimeout }
func (c *Config) GetTaxonDenylistFile() string       { return c.TaxonDenylistFile }
func (c *Config) GetSpeciesCacheSize() int           { return c.SpeciesCacheSize }

// ExploreConfig implementation
func (c *Config) GetSpeciesLimit() int               { return c.SpeciesLimit }
func (c *Config) GetFanOutConcurrency() int          { return c.FanOutConcurrency }
func (c *Config) GetExploreDeadline() time.Duration  { return c.ExploreDeadline }

// GeminiConfig implementation
func (c *Config) GetGeminiAPIKey() string { return c.GeminiAPIKey }
func (c *Config) GetGeminiModel() string  { return c.GeminiModel }
func (c *Config) IsNarrationEnabled() bool {
	return c.GeminiAPIKey != ""
}

// AudioConfig implementation
func (c *Config) GetTTSBaseURL() string         { return c.TTSBaseURL }
func (c *Config) GetTTSVoice() string           { return c.TTSVoice }
func (c *Config) GetBackgroundMusicDir() string { return c.BackgroundMusicDir }
func (c *Config) GetAudioOutputDir() string     { return c.AudioOutputDir }
func (c *Config) GetAudioWorkers() int          { return c.AudioWorkers }
func (c *Config) IsAudioEnabled() bool          { return c.TTSBaseURL != "" }

// SchedulerConfig implementation
func (c *Config) GetRedisURL() string       { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int  { return c.AsynqConcurrency }

// ProfilesConfig implementation
func (c *Config) GetProfileCacheSize() int { return c.ProfileCacheSize }
func (c *Config) GetProfileProbeTimeout() time.Duration {
	return c.ProfileProbeTimeout
}

// =============================================================================
// Loading
// =============================================================================

// Load reads configuration from the environment, with .env support for
// local development.
func Load() (*Config, error) {
	// Ignore error: .env is optional outside development
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", ""))

	cfg := &Config{
		Env:                 getEnv("ENV", "development"),
		HTTPAddr:            getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:        strings.EqualFold(getEnv("CORS_ALLOW_ALL", "true"), "true"),
		CORSOrigins:         corsOrigins,
		CORSAllowCreds:      strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "false"), "true"),
		RateLimitRPS:        mustFloat(getEnv("RATE_LIMIT_RPS", "10")),
		RateLimitBurst:      mustInt(getEnv("RATE_LIMIT_BURST", "20")),
		NominatimBaseURL:    getEnv("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
		GeoRadiusKm:         mustFloat(getEnv("GEO_RADIUS_KM", "100")),
		GeoCacheSize:        mustInt(getEnv("GEO_CACHE_SIZE", "256")),
		GBIFBaseURL:         getEnv("GBIF_BASE_URL", "https://api.gbif.org"),
		WikipediaBaseURL:    getEnv("WIKIPEDIA_BASE_URL", "https://en.wikipedia.org"),
		INaturalistBaseURL:  getEnv("INATURALIST_BASE_URL", "https://api.inaturalist.org"),
		XenoCantoBaseURL:    getEnv("XENO_CANTO_BASE_URL", "https://www.xeno-canto.org"),
		NewsFeedBaseURL:     getEnv("NEWS_FEED_BASE_URL", "https://news.google.com"),
		GBIFTimeout:         mustDuration(getEnv("GBIF_TIMEOUT", "15s")),
		WikipediaTimeout:    mustDuration(getEnv("WIKIPEDIA_TIMEOUT", "5s")),
		INaturalistTimeout:  mustDuration(getEnv("INATURALIST_TIMEOUT", "5s")),
		XenoCantoTimeout:    mustDuration(getEnv("XENO_CANTO_TIMEOUT", "10s")),
		NewsFeedTimeout:     mustDuration(getEnv("NEWS_FEED_TIMEOUT", "10s")),
		TaxonDenylistFile:   getEnv("TAXON_DENYLIST_FILE", ""),
		SpeciesCacheSize:    mustInt(getEnv("SPECIES_CACHE_SIZE", "256")),
		SpeciesLimit:        mustInt(getEnv("SPECIES_LIMIT", "8")),
		FanOutConcurrency:   mustInt(getEnv("FANOUT_CONCURRENCY", "10")),
		ExploreDeadline:     mustDuration(getEnv("EXPLORE_DEADLINE", "60s")),
		GeminiAPIKey:        getEnv("GEMINI_API_KEY", ""),
		GeminiModel:         getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		TTSBaseURL:          getEnv("TTS_BASE_URL", ""),
		TTSVoice:            getEnv("TTS_VOICE", "en-CA-LiamNeural"),
		BackgroundMusicDir:  getEnv("BACKGROUND_MUSIC_DIR", "./assets/background"),
		AudioOutputDir:      getEnv("AUDIO_OUTPUT_DIR", "./tmp/mixed"),
		AudioWorkers:        mustInt(getEnv("AUDIO_WORKERS", "2")),
		RedisURL:            getEnv("REDIS_URL", ""),
		RedisTLSInsecure:    strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:      getEnv("ASYNQ_QUEUE_NAME", "default"),
		AsynqConcurrency:    mustInt(getEnv("ASYNQ_CONCURRENCY", "10")),
		ProfileCacheSize:    mustInt(getEnv("PROFILE_CACHE_SIZE", "256")),
		ProfileProbeTimeout: mustDuration(getEnv("PROFILE_PROBE_TIMEOUT", "5s")),
	}

	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}
	if cfg.SpeciesLimit < 1 {
		return nil, fmt.Errorf("SPECIES_LIMIT must be at least 1")
	}
	if cfg.FanOutConcurrency < 1 {
		return nil, fmt.Errorf("FANOUT_CONCURRENCY must be at least 1")
	}
	if cfg.GeoRadiusKm <= 0 {
		return nil, fmt.Errorf("GEO_RADIUS_KM must be positive")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}
