package config

import (
	"github.com/joho/godotenv"

	"github.com/convocoach/coach-service/internal/envconfig"
)

type Config struct {
	Port         string `validate:"required"`
	GCPProjectID string `validate:"required"`
	DataStore    string `validate:"required,oneof=firestore memory"`
	RotateOnRead bool
	Auth         AuthConfig
	Firestore    FirestoreConfig
}

type AuthConfig struct {
	Mode     string `validate:"required"`
	JWKSURL  string
	Audience string
	Issuer   string
}

type FirestoreConfig struct {
	EmulatorHost string
}

func Load() (Config, error) {
	// Optional .env for local development; ignored when absent.
	_ = godotenv.Load()

	cfg := Config{
		Port:         envconfig.Get("PORT", "8080"),
		GCPProjectID: envconfig.Get("GCP_PROJECT_ID", "coach-dev"),
		DataStore:    envconfig.Get("DATASTORE", "firestore"),
		RotateOnRead: envconfig.GetBool("ROTATE_ON_READ", true),
		Auth: AuthConfig{
			Mode:     envconfig.Get("AUTH_MODE", "firebase"),
			JWKSURL:  envconfig.Get("AUTH_JWKS_URL", ""),
			Audience: envconfig.Get("AUTH_AUDIENCE", ""),
			Issuer:   envconfig.Get("AUTH_ISSUER", ""),
		},
		Firestore: FirestoreConfig{
			EmulatorHost: envconfig.Get("FIRESTORE_EMULATOR_HOST", ""),
		},
	}
	return cfg, envconfig.Validate(cfg)
}
