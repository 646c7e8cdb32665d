package config

import (
	"log"
	"os"
	"strings"
	"time"
)

// Record and storage backends selectable through RECORD_BACKEND / STORAGE_BACKEND.
const (
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
	BackendSupabase = "supabase"
	BackendGridFS   = "gridfs"
)

// JWTConfig defines issuer/secret pair for auth verification.
type JWTConfig struct {
	Issuer string
	Secret []byte
}

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr                  string
	AllowedOrigins        []string
	MongoURI              string
	MongoDatabase         string
	Timeout               time.Duration
	ApplicationCollection string
	OrphanCollection      string
	RecordBackend         string
	DatabaseURL           string
	StorageBackend        string
	SupabaseURL           string
	SupabaseServiceKey    string
	StorageBucket         string
	TurnstileSecret       string
	TurnstileVerifyURL    string
	VerifyTimeout         time.Duration
	StorageTimeout        time.Duration
	DatabaseTimeout       time.Duration
	PostingsFile          string
	Postings              *Postings
	MessengerEndpoint     string
	DiscordDestination    string
	SlackDestination      string
	MessengerTimeout      time.Duration
	AdminBaseURL          string
	JWTConfigs            []JWTConfig
	JWTAudience           string
	Timezone              string
	ServerLog             *log.Logger
}

// UsesMongo reports whether any configured backend needs a MongoDB connection.
func (c Config) UsesMongo() bool {
	return c.RecordBackend == BackendMongo || c.StorageBackend == BackendGridFS
}

// UsesPostgres reports whether records go to Postgres.
func (c Config) UsesPostgres() bool {
	return c.RecordBackend == BackendPostgres
}

// AdminEnabled reports whether the admin read API should be mounted.
func (c Config) AdminEnabled() bool {
	return len(c.JWTConfigs) > 0
}

// Load reads environment variables and returns a fully populated Config.
func Load() Config {
	logger := log.New(os.Stdout, "[careers-api] ", log.LstdFlags|log.Lshortfile)

	recordBackend := strings.ToLower(envOrDefault("RECORD_BACKEND", BackendMongo))
	if recordBackend != BackendMongo && recordBackend != BackendPostgres {
		log.Fatalf("RECORD_BACKEND must be %q or %q, got %q", BackendMongo, BackendPostgres, recordBackend)
	}
	storageBackend := strings.ToLower(envOrDefault("STORAGE_BACKEND", BackendSupabase))
	if storageBackend != BackendSupabase && storageBackend != BackendGridFS {
		log.Fatalf("STORAGE_BACKEND must be %q or %q, got %q", BackendSupabase, BackendGridFS, storageBackend)
	}

	databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if recordBackend == BackendPostgres && databaseURL == "" {
		log.Fatal("DATABASE_URL must be configured when RECORD_BACKEND=postgres")
	}

	turnstileSecret := strings.TrimSpace(os.Getenv("TURNSTILE_SECRET_KEY"))
	if turnstileSecret == "" {
		logger.Printf("TURNSTILE_SECRET_KEY is not set; submissions will be rejected as misconfigured")
	}

	supabaseURL := strings.TrimRight(strings.TrimSpace(os.Getenv("SUPABASE_URL")), "/")
	supabaseKey := strings.TrimSpace(os.Getenv("SUPABASE_SERVICE_ROLE_KEY"))
	if storageBackend == BackendSupabase && (supabaseURL == "" || supabaseKey == "") {
		logger.Printf("SUPABASE_URL or SUPABASE_SERVICE_ROLE_KEY is not set; submissions will be rejected as misconfigured")
	}

	var jwtConfigs []JWTConfig
	issuer := envOrDefault("ADMIN_JWT_ISSUER", "careers-admin")
	if secret := strings.TrimSpace(os.Getenv("ADMIN_JWT_SECRET")); secret != "" {
		jwtConfigs = append(jwtConfigs, JWTConfig{Issuer: issuer, Secret: []byte(secret)})
	}
	if secret := strings.TrimSpace(os.Getenv("ADMIN_JWT_PREVIOUS_SECRET")); secret != "" && len(jwtConfigs) > 0 {
		jwtConfigs = append(jwtConfigs, JWTConfig{Issuer: issuer, Secret: []byte(secret)})
	}

	postingsFile := strings.TrimSpace(os.Getenv("POSTINGS_FILE"))
	postings, err := LoadPostings(postingsFile)
	if err != nil {
		log.Fatalf("posting catalogue: %v", err)
	}

	cfg := Config{
		Addr:                  envOrDefault("HTTP_ADDR", ":8080"),
		AllowedOrigins:        parseList("API_ALLOWED_ORIGINS", []string{"*"}),
		MongoURI:              envOrDefault("MONGO_URI", "mongodb://mongo:27017"),
		MongoDatabase:         envOrDefault("MONGO_DB", "careers"),
		Timeout:               durationOrDefault("MONGO_CONNECT_TIMEOUT", 10*time.Second),
		ApplicationCollection: envOrDefault("APPLICATION_COLLECTION", "applications"),
		OrphanCollection:      envOrDefault("ORPHAN_COLLECTION", "orphaned_attachments"),
		RecordBackend:         recordBackend,
		DatabaseURL:           databaseURL,
		StorageBackend:        storageBackend,
		SupabaseURL:           supabaseURL,
		SupabaseServiceKey:    supabaseKey,
		StorageBucket:         envOrDefault("STORAGE_BUCKET", "applications"),
		TurnstileSecret:       turnstileSecret,
		TurnstileVerifyURL:    envOrDefault("TURNSTILE_VERIFY_URL", "https://challenges.cloudflare.com/turnstile/v0/siteverify"),
		VerifyTimeout:         durationOrDefault("VERIFY_TIMEOUT", 5*time.Second),
		StorageTimeout:        durationOrDefault("STORAGE_TIMEOUT", 15*time.Second),
		DatabaseTimeout:       durationOrDefault("DATABASE_TIMEOUT", 5*time.Second),
		PostingsFile:          postingsFile,
		Postings:              postings,
		MessengerEndpoint:     strings.TrimSpace(os.Getenv("MESSENGER_ENDPOINT")),
		DiscordDestination:    strings.TrimSpace(os.Getenv("MESSENGER_DISCORD_DESTINATION")),
		SlackDestination:      strings.TrimSpace(os.Getenv("MESSENGER_SLACK_DESTINATION")),
		MessengerTimeout:      durationOrDefault("MESSENGER_TIMEOUT", 5*time.Second),
		AdminBaseURL:          strings.TrimSpace(os.Getenv("ADMIN_APPLICATION_BASE_URL")),
		JWTConfigs:            jwtConfigs,
		JWTAudience:           strings.TrimSpace(os.Getenv("ADMIN_JWT_AUDIENCE")),
		Timezone:              envOrDefault("TIMEZONE", "Asia/Kolkata"),
		ServerLog:             logger,
	}

	cfg.ServerLog.Printf("loaded config: records=%s storage=%s bucket=%q postings=%d admin=%t",
		cfg.RecordBackend, cfg.StorageBackend, cfg.StorageBucket, len(postings.All()), cfg.AdminEnabled())

	return cfg
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
