package config

import "time"

type AuthConfig struct {
	// Provider selects the token verifier: "firebase" or "jwt".
	Provider string `yaml:"provider"`

	FirebaseProjectID       string `yaml:"firebase_project_id"`
	FirebaseCredentialsFile string `yaml:"firebase_credentials_file"`

	JWTSecret         string        `yaml:"jwt_secret"`
	JWTAccessTokenTTL time.Duration `yaml:"jwt_access_token_ttl"`
}

func loadAuthConfig() *AuthConfig {
	return &AuthConfig{
		Provider:                getEnv("AUTH_PROVIDER", "jwt"),
		FirebaseProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseCredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", ""),
		JWTSecret:               getEnv("JWT_SECRET", "dev-only-secret"),
		JWTAccessTokenTTL:       getEnvAsDuration("JWT_ACCESS_TOKEN_TTL", 24*time.Hour),
	}
}
