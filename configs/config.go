package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
	// Endpoint overrides the R2 endpoint derived from AccountID, for any
	// other S3-compatible service.
	Endpoint  string
	PublicURL string
}

type Gemini struct {
	APIKey string
	Model  string
}

type Bulk struct {
	Delay           time.Duration
	GenerationDelay time.Duration
	Retries         int
}

type Config struct {
	ListenAddr  string
	DataDir     string
	PostgresURI string
	RedisURI    string
	FrontendURL string
	R2          R2
	Gemini      Gemini
	Bulk        Bulk
	SecretKey   string
	CookieName  string
}

// RemoteEnabled reports whether the database and object storage are both
// configured, including the public base URL media links are built from. It
// never changes for the lifetime of a process.
func (c Config) RemoteEnabled() bool {
	return c.PostgresURI != "" &&
		c.R2.AccessKey != "" &&
		c.R2.SecretKey != "" &&
		c.R2.BucketName != "" &&
		c.R2.PublicURL != "" &&
		(c.R2.AccountID != "" || c.R2.Endpoint != "")
}

var defaults = map[string]any{
	"LISTEN_ADDR":      ":3000",
	"DATA_DIR":         "./data",
	"FRONTEND_URL":     "http://localhost:5173",
	"R2_BUCKET_NAME":   "media",
	"COOKIE_NAME":      "socialflow_session",
	"GEMINI_MODEL":     "gemini-2.0-flash",
	"BULK_DELAY":       "0s",
	"GENERATION_DELAY": "100ms",
	"BULK_RETRIES":     0,
}

// LoadConfig reads .env, an optional config.yaml in the working directory and
// the process environment, in increasing order of precedence.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment only")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("Ignoring unreadable config.yaml: %v", err)
		}
	}

	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance.
// Keys are environment names; config.yaml uses the same names in any case
// (postgres_uri, bulk_delay).
func FromViper(v *viper.Viper) *Config {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	return &Config{
		ListenAddr:  v.GetString("LISTEN_ADDR"),
		DataDir:     v.GetString("DATA_DIR"),
		PostgresURI: v.GetString("POSTGRES_URI"),
		RedisURI:    v.GetString("REDIS_URI"),
		FrontendURL: v.GetString("FRONTEND_URL"),
		R2: R2{
			AccountID:  v.GetString("R2_ACCOUNT_ID"),
			AccessKey:  v.GetString("R2_ACCESS_KEY"),
			SecretKey:  v.GetString("R2_SECRET_KEY"),
			BucketName: v.GetString("R2_BUCKET_NAME"),
			Endpoint:   v.GetString("R2_ENDPOINT"),
			PublicURL:  v.GetString("MEDIA_PUBLIC_URL"),
		},
		Gemini: Gemini{
			APIKey: v.GetString("GEMINI_API_KEY"),
			Model:  v.GetString("GEMINI_MODEL"),
		},
		Bulk: Bulk{
			Delay:           v.GetDuration("BULK_DELAY"),
			GenerationDelay: v.GetDuration("GENERATION_DELAY"),
			Retries:         v.GetInt("BULK_RETRIES"),
		},
		SecretKey:  v.GetString("SECRET_KEY"),
		CookieName: v.GetString("COOKIE_NAME"),
	}
}
