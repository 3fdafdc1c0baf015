package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/auth"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/shared/config"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/shared/utils"
)

// Issues an admin API token signed with ADMIN_JWT_SECRET.
//
//	go run ./cmd/token -subject ops -role operator
//	go run ./cmd/token -subject amani -role tenant_admin -tenant <tenant-id> -ttl 168h
func main() {
	subject := flag.String("subject", "", "Who the token is for")
	role := flag.String("role", auth.RoleOperator, "operator or tenant_admin")
	tenantID := flag.String("tenant", "", "Tenant ID (tenant_admin only)")
	ttl := flag.Duration("ttl", 0, "Token lifetime (default ADMIN_TOKEN_TTL)")
	flag.Parse()

	cfg := config.LoadConfig()
	utils.InitLogger(cfg.LogLevel)

	if cfg.AdminJWTSecret == "" {
		log.Fatal().Msg("❌ ADMIN_JWT_SECRET is not set")
	}
	if *subject == "" {
		log.Fatal().Msg("❌ -subject is required")
	}
	if *ttl <= 0 {
		*ttl = cfg.AdminTokenTTL
	}

	token, expiresAt, err := auth.NewJWTService(cfg.AdminJWTSecret, *ttl).Issue(*subject, *role, *tenantID)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to issue token")
	}

	log.Info().
		Str("subject", *subject).
		Str("role", *role).
		Str("expires_at", expiresAt.Format(time.RFC3339)).
		Msg("🔑 Token issued")
	fmt.Fprintln(os.Stdout, token)
}
