package whatsapp

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/types"
)

// keepAlive sends an "available" presence on every tick so the device
// session stays warm. It returns when ctx is cancelled.
func keepAlive(ctx context.Context, tenantID string, client *whatsmeow.Client, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	log.Debug().Str("tenant_id", tenantID).Dur("every", every).Msg("🔄 Keep-alive started")

	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("tenant_id", tenantID).Msg("🛑 Keep-alive stopped")
			return
		case <-ticker.C:
			if !client.IsConnected() {
				continue
			}
			if err := client.SendPresence(ctx, types.PresenceAvailable); err != nil {
				log.Warn().Err(err).Str("tenant_id", tenantID).Msg("⚠️ Keep-alive ping failed")
			} else {
				log.Debug().Str("tenant_id", tenantID).Msg("💓 Keep-alive ping sent")
			}
		}
	}
}
