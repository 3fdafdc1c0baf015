// Package whatsapp owns one whatsmeow device connection per tenant and
// turns inbound events into InboundMessage values.
package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	qrcode "github.com/skip2/go-qrcode"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	"google.golang.org/protobuf/proto"
)

var (
	ErrNotPaired    = errors.New("whatsapp: device not paired")
	ErrNotConnected = errors.New("whatsapp: tenant not connected")
	ErrQRTimeout    = errors.New("whatsapp: qr code timeout")
)

type Config struct {
	// StoreURL is a Postgres DSN for the device store. Empty means SQLite.
	StoreURL   string
	SQLitePath string
	// TypingDelay shows "typing..." for this long before each reply.
	TypingDelay time.Duration
	KeepAlive   time.Duration
}

// Handler receives every accepted inbound message.
type Handler func(ctx context.Context, msg InboundMessage)

// PairedFunc is called once a tenant device finishes QR pairing.
type PairedFunc func(tenantID, number, deviceJID string)

type tenantClient struct {
	client *whatsmeow.Client
	cancel context.CancelFunc
}

type Manager struct {
	ctx       context.Context
	cancel    context.CancelFunc
	cfg       Config
	container *sqlstore.Container

	mu       sync.RWMutex
	clients  map[string]*tenantClient
	handler  Handler
	onPaired PairedFunc
}

func NewManager(ctx context.Context, cfg Config) (*Manager, error) {
	if cfg.KeepAlive <= 0 {
		cfg.KeepAlive = 60 * time.Second
	}
	container, err := openContainer(ctx, cfg)
	if err != nil {
		return nil, err
	}
	mctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		ctx:       mctx,
		cancel:    cancel,
		cfg:       cfg,
		container: container,
		clients:   make(map[string]*tenantClient),
	}, nil
}

func (m *Manager) OnMessage(h Handler) {
	m.mu.Lock()
	m.handler = h
	m.mu.Unlock()
}

func (m *Manager) OnPaired(f PairedFunc) {
	m.mu.Lock()
	m.onPaired = f
	m.mu.Unlock()
}

func (m *Manager) GetProviderName() string {
	return "Whatsmeow"
}

// StartTenant reconnects an already paired device.
func (m *Manager) StartTenant(ctx context.Context, tenantID, deviceJID string) error {
	if deviceJID == "" {
		return ErrNotPaired
	}
	jid, err := types.ParseJID(deviceJID)
	if err != nil {
		return fmt.Errorf("parse device jid: %w", err)
	}
	device, err := m.container.GetDevice(ctx, jid)
	if err != nil {
		return fmt.Errorf("load device: %w", err)
	}
	if device == nil {
		return ErrNotPaired
	}

	m.StopTenant(tenantID)

	client := whatsmeow.NewClient(device, newLogger("Client/"+tenantID, zerolog.InfoLevel))
	client.AddEventHandler(m.eventHandler(tenantID))
	if err := client.Connect(); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	m.track(tenantID, client)

	log.Info().Str("tenant_id", tenantID).Str("device", deviceJID).Msg("✅ Reconnected to WhatsApp")
	return nil
}

// PairingQR starts a fresh device for the tenant and returns the first QR
// code as a PNG. The client keeps waiting for the scan in the background.
func (m *Manager) PairingQR(ctx context.Context, tenantID string) ([]byte, error) {
	m.StopTenant(tenantID)

	device := m.container.NewDevice()
	client := whatsmeow.NewClient(device, newLogger("Client/"+tenantID, zerolog.InfoLevel))
	client.AddEventHandler(m.eventHandler(tenantID))

	qrChan, err := client.GetQRChannel(m.ctx)
	if err != nil {
		return nil, fmt.Errorf("qr channel: %w", err)
	}
	if err := client.Connect(); err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	select {
	case <-ctx.Done():
		client.Disconnect()
		return nil, ctx.Err()
	case evt, ok := <-qrChan:
		if !ok || evt.Event != "code" {
			client.Disconnect()
			if ok && evt.Event == "timeout" {
				return nil, ErrQRTimeout
			}
			return nil, fmt.Errorf("qr generation failed: %s", evt.Event)
		}

		png, err := qrcode.Encode(evt.Code, qrcode.Medium, 256)
		if err != nil {
			client.Disconnect()
			return nil, fmt.Errorf("encode qr png: %w", err)
		}

		m.track(tenantID, client)
		go m.watchPairing(tenantID, client, qrChan)

		log.Info().Str("tenant_id", tenantID).Msg("🔗 Pairing QR generated")
		return png, nil
	}
}

func (m *Manager) watchPairing(tenantID string, client *whatsmeow.Client, qrChan <-chan whatsmeow.QRChannelItem) {
	for evt := range qrChan {
		switch evt.Event {
		case "code":
			// rotated code; the admin re-requests the QR to see it
		case "success":
			log.Info().Str("tenant_id", tenantID).Msg("✅ WhatsApp login succeeded")
			return
		default:
			log.Warn().Str("tenant_id", tenantID).Str("event", evt.Event).Msg("⚠️ Pairing ended without login")
			m.stopIf(tenantID, client)
			return
		}
	}
}

func (m *Manager) track(tenantID string, client *whatsmeow.Client) {
	ctx, cancel := context.WithCancel(m.ctx)
	m.mu.Lock()
	m.clients[tenantID] = &tenantClient{client: client, cancel: cancel}
	m.mu.Unlock()
	go keepAlive(ctx, tenantID, client, m.cfg.KeepAlive)
}

func (m *Manager) eventHandler(tenantID string) func(interface{}) {
	return func(evt interface{}) {
		switch v := evt.(type) {
		case *events.Message:
			msg, ok := inboundFrom(tenantID, v)
			if !ok {
				return
			}
			m.mu.RLock()
			h := m.handler
			m.mu.RUnlock()
			if h != nil {
				go h(m.ctx, msg)
			}

		case *events.PairSuccess:
			log.Info().Str("tenant_id", tenantID).Str("jid", v.ID.String()).Msg("📱 Device paired")
			m.mu.RLock()
			f := m.onPaired
			m.mu.RUnlock()
			if f != nil {
				f(tenantID, v.ID.User, v.ID.String())
			}

		case *events.Connected:
			log.Info().Str("tenant_id", tenantID).Msg("🟢 WhatsApp connected")

		case *events.Disconnected:
			log.Warn().Str("tenant_id", tenantID).Msg("🔌 WhatsApp disconnected")

		case *events.LoggedOut:
			log.Warn().Str("tenant_id", tenantID).Msg("🚪 WhatsApp logged out")
			go m.StopTenant(tenantID)
		}
	}
}

// SendMessage delivers a text reply from the tenant's device.
func (m *Manager) SendMessage(ctx context.Context, tenantID, to, message string) error {
	client := m.client(tenantID)
	if client == nil || !client.IsConnected() {
		return ErrNotConnected
	}
	jid, err := recipientJID(to)
	if err != nil {
		return err
	}

	if m.cfg.TypingDelay > 0 {
		if err := client.SendChatPresence(ctx, jid, types.ChatPresenceComposing, types.ChatPresenceMediaText); err != nil {
			log.Debug().Err(err).Str("tenant_id", tenantID).Msg("typing indicator failed")
		}
		t := time.NewTimer(m.cfg.TypingDelay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		defer func() {
			_ = client.SendChatPresence(ctx, jid, types.ChatPresencePaused, types.ChatPresenceMediaText)
		}()
	}

	if _, err := client.SendMessage(ctx, jid, &waE2E.Message{Conversation: proto.String(message)}); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

func (m *Manager) client(tenantID string) *whatsmeow.Client {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if tc, ok := m.clients[tenantID]; ok {
		return tc.client
	}
	return nil
}

func (m *Manager) IsConnected(tenantID string) bool {
	client := m.client(tenantID)
	return client != nil && client.IsConnected()
}

// StopTenant disconnects the tenant's device. The pairing stays in the store.
func (m *Manager) StopTenant(tenantID string) {
	m.mu.Lock()
	tc, ok := m.clients[tenantID]
	delete(m.clients, tenantID)
	m.mu.Unlock()
	if !ok {
		return
	}
	tc.cancel()
	tc.client.Disconnect()
	log.Info().Str("tenant_id", tenantID).Msg("🔌 WhatsApp client stopped")
}

func (m *Manager) stopIf(tenantID string, client *whatsmeow.Client) {
	m.mu.RLock()
	tc, ok := m.clients[tenantID]
	m.mu.RUnlock()
	if ok && tc.client == client {
		m.StopTenant(tenantID)
	}
}

// ReapTenant is called when a tenant is deactivated.
func (m *Manager) ReapTenant(_ context.Context, tenantID string) error {
	m.StopTenant(tenantID)
	return nil
}

// Close disconnects every tenant.
func (m *Manager) Close() {
	m.mu.RLock()
	ids := make([]string, 0, len(m.clients))
	for id := range m.clients {
		ids = append(ids, id)
	}
	m.mu.RUnlock()

	for _, id := range ids {
		m.StopTenant(id)
	}
	m.cancel()
}
