// Command token prints a signed bearer token for an owner, for local use
// against a running server. It reads JWT_SECRET (and .env) the same way the
// server does.
//
//	go run ./cmd/token -owner alice -ttl 1h
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mmynk/billwise/internal/auth"
	"github.com/mmynk/billwise/internal/config"
	"github.com/mmynk/billwise/pkg/logging"
)

func main() {
	owner := flag.String("owner", "", "owner ID to issue the token for")
	ttl := flag.Duration("ttl", 0, "token lifetime (default TOKEN_TTL)")
	flag.Parse()

	logging.Setup("warn")

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET not set")
		os.Exit(1)
	}
	if *owner == "" {
		flag.Usage()
		os.Exit(2)
	}

	lifetime := cfg.TokenTTL
	if *ttl > 0 {
		lifetime = *ttl
	}
	token, err := auth.NewJWTManager(cfg.JWTSecret, lifetime).Generate(*owner)
	if err != nil {
		slog.Error("Failed to generate token", "error", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
