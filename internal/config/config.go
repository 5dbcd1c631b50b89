package config

import (
	"os"
	"strconv"
	"strings"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode     Mode
	HTTPAddr string

	DBDriver string
	DBDSN    string

	AssetDir string // question image storage

	// Test shape.
	MCQPerTest     int
	WrittenPerTest int

	// Written answer acceptance thresholds, 0..1.
	AcceptFullAt    float64
	AcceptPartialAt float64
	FuzzyDefault    bool

	// List questions: none|one|ratio, plus the ratio used when a question
	// does not carry its own.
	RevealMode         string
	RevealRatioDefault float64

	SessionTimeLimitSec int // 0 = unlimited

	AuthSecret    string
	AdminUser     string
	AdminPassHash string // bcrypt

	CORSOriginsOnline  []string
	CORSOriginsOffline []string
}

func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		Mode:     mode,
		HTTPAddr: addr,
		DBDriver: envOr("DB_DRIVER", "sqlite"),
		DBDSN:    envOr("DB_DSN", ""),
		AssetDir: envOr("ASSET_DIR", "./data/assets"),

		MCQPerTest:     envInt("MCQ_PER_TEST", 25),
		WrittenPerTest: envInt("WRITTEN_PER_TEST", 10),

		AcceptFullAt:    envFloat("ACCEPT_FULL_AT", 0.85),
		AcceptPartialAt: envFloat("ACCEPT_PARTIAL_AT", 0.60),
		FuzzyDefault:    envBool("FUZZY_DEFAULT", true),

		RevealMode:         envOr("REVEAL_MODE", "one"),
		RevealRatioDefault: envFloat("REVEAL_RATIO_DEFAULT", 0.25),

		SessionTimeLimitSec: envInt("SESSION_TIME_LIMIT_SEC", 7200),

		AuthSecret:    envOr("AUTH_HMAC_SECRET", "dev-secret-change-me"),
		AdminUser:     envOr("ADMIN_USER", "admin"),
		AdminPassHash: envOr("ADMIN_PASS_HASH", "$2y$12$pyZAiWaTfVtM7UElIRStvOC3gNbnp70nmQU4eYopLGBfCJr1DOvji"),

		CORSOriginsOnline:  csvOr("CORS_ORIGINS_ONLINE", "https://quiz.quizforge.dev"),
		CORSOriginsOffline: csvOr("CORS_ORIGINS_OFFLINE", "http://localhost:3000,http://localhost:5173"),
	}
}
func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}
func envInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
func envFloat(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
