package config

import (
	"os"
	"strings"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr          string
	DatabaseURL   string
	RedisAddr     string
	KafkaBrokers  []string
	ArtifactDir   string
	JWTSigningKey string
}

// VerificationCacheTTL bounds how long a verification lookup may serve a
// cached record before falling back to the store.
var VerificationCacheTTL = 5 * time.Minute

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("ATTESTA_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	artifactDir := os.Getenv("ATTESTA_ARTIFACT_DIR")
	if artifactDir == "" {
		artifactDir = "artifacts"
	}

	jwtSigningKey := os.Getenv("ATTESTA_JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Development default - must be overridden in production.
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	var brokers []string
	if raw := os.Getenv("ATTESTA_KAFKA_BROKERS"); raw != "" {
		brokers = strings.Split(raw, ",")
	}

	return Server{
		Addr:          addr,
		DatabaseURL:   os.Getenv("ATTESTA_DATABASE_URL"),
		RedisAddr:     os.Getenv("ATTESTA_REDIS_ADDR"),
		KafkaBrokers:  brokers,
		ArtifactDir:   artifactDir,
		JWTSigningKey: jwtSigningKey,
	}
}
