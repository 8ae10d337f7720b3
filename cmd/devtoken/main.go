// cmd/devtoken: prints an admin session token for local development.
// Uso: go run ./cmd/devtoken -sub admin -ttl 8h
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/config"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/middleware"
)

func main() {
	sub := flag.String("sub", "dev-admin", "token subject")
	email := flag.String("email", "", "email claim")
	ttl := flag.Duration("ttl", 8*time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if cfg.JWTSecret == "" {
		fmt.Fprintln(os.Stderr, "AUTH_JWT_SECRET is empty")
		os.Exit(1)
	}
	if cfg.IsProduction() {
		fmt.Fprintln(os.Stderr, "refusing to mint tokens with APP_ENV=production")
		os.Exit(1)
	}

	tok, err := middleware.IssueSession(cfg.JWTSecret, *sub, *email, cfg.JWTAudience, *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, "sign:", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
