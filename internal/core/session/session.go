package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/lang"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/pricing"
)

// State is a node of the booking conversation.
type State string

const (
	StateIdle              State = "idle"
	StateMainMenu          State = "main_menu"
	StateSelectingPickup   State = "selecting_pickup"
	StateSelectingOffering State = "selecting_offering"
	StateSelectingPackage  State = "selecting_package"
	StateEnteringPartySize State = "entering_party_size"
	StateEnteringDate      State = "entering_date"
	StateAIChat            State = "ai_chat"
)

// Valid reports whether s is a known state.
func (s State) Valid() bool {
	switch s {
	case StateIdle, StateMainMenu, StateSelectingPickup, StateSelectingOffering,
		StateSelectingPackage, StateEnteringPartySize, StateEnteringDate, StateAIChat:
		return true
	}
	return false
}

var (
	ErrInvalidKey     = errors.New("session: tenant and customer are required")
	ErrInvalidSession = errors.New("session: invalid session")
)

// Key identifies one conversation: a customer talking to one tenant.
type Key struct {
	TenantID   string `json:"tenant_id"`
	CustomerID string `json:"customer_id"`
}

func (k Key) String() string {
	return k.TenantID + ":" + k.CustomerID
}

func (k Key) Valid() bool {
	return k.TenantID != "" && k.CustomerID != ""
}

// Pickup is the location context chosen before browsing offerings.
type Pickup struct {
	ID    string `json:"id"`
	Zone  string `json:"zone"`
	Label string `json:"label"`
}

// Draft is the booking being assembled. Fields fill in the order the flow
// visits them: offering, then party size with prices, then date.
type Draft struct {
	OfferingID string        `json:"offering_id,omitempty"`
	Name       string        `json:"name,omitempty"`
	Emoji      string        `json:"emoji,omitempty"`
	Group      string        `json:"group,omitempty"`
	Pricing    pricing.Table `json:"pricing,omitempty"`
	FixedPrice int64         `json:"fixed_price,omitempty"`
	Pickup     string        `json:"pickup,omitempty"`
	PartySize  int           `json:"party_size,omitempty"`
	UnitPrice  int64         `json:"unit_price,omitempty"`
	TotalPrice int64         `json:"total_price,omitempty"`
	Date       string        `json:"date,omitempty"`
}

func (d Draft) Empty() bool {
	return d.OfferingID == "" && d.PartySize == 0 && d.Date == ""
}

// SetPartySize stores the party size and its prices. The total is always
// derived here.
func (d *Draft) SetPartySize(size int, unitPrice int64) {
	d.PartySize = size
	d.UnitPrice = unitPrice
	d.TotalPrice = unitPrice * int64(size)
}

func (d Draft) clone() Draft {
	if d.Pricing != nil {
		d.Pricing = append(pricing.Table(nil), d.Pricing...)
	}
	return d
}

// Session is the live state of one (tenant, customer) conversation.
type Session struct {
	TenantID     string        `json:"tenant_id"`
	CustomerID   string        `json:"customer_id"`
	State        State         `json:"state"`
	Language     lang.Language `json:"language,omitempty"`
	// LanguageSticky is set once the customer has written Swahili during the flow.
	LanguageSticky bool      `json:"language_sticky,omitempty"`
	Pickup         *Pickup   `json:"pickup,omitempty"`
	Draft          Draft     `json:"draft"`
	LastActivity   time.Time `json:"last_activity"`
}

// New returns an idle session for key.
func New(key Key, now time.Time) *Session {
	return &Session{
		TenantID:     key.TenantID,
		CustomerID:   key.CustomerID,
		State:        StateIdle,
		LastActivity: now,
	}
}

func (s *Session) Key() Key {
	return Key{TenantID: s.TenantID, CustomerID: s.CustomerID}
}

// Clone returns a deep copy.
func (s *Session) Clone() *Session {
	c := *s
	if s.Pickup != nil {
		p := *s.Pickup
		c.Pickup = &p
	}
	c.Draft = s.Draft.clone()
	return &c
}

// Reset clears the draft and location context and moves to state.
func (s *Session) Reset(state State) {
	s.State = state
	s.Pickup = nil
	s.Draft = Draft{}
}

// Validate checks the draft against the current state.
func (s *Session) Validate() error {
	if !s.Key().Valid() {
		return ErrInvalidKey
	}
	if !s.State.Valid() {
		return fmt.Errorf("%w: unknown state %q", ErrInvalidSession, s.State)
	}

	d := s.Draft
	if d.PartySize > 0 && d.OfferingID == "" {
		return fmt.Errorf("%w: party size without offering", ErrInvalidSession)
	}
	if d.Date != "" && d.PartySize == 0 {
		return fmt.Errorf("%w: date without party size", ErrInvalidSession)
	}
	if d.TotalPrice != d.UnitPrice*int64(d.PartySize) {
		return fmt.Errorf("%w: total %d != %d x %d", ErrInvalidSession, d.TotalPrice, d.UnitPrice, d.PartySize)
	}

	switch s.State {
	case StateIdle, StateMainMenu, StateSelectingPickup, StateSelectingOffering, StateSelectingPackage:
		if d.OfferingID != "" {
			return fmt.Errorf("%w: offering set in %s", ErrInvalidSession, s.State)
		}
	case StateEnteringPartySize:
		if d.OfferingID == "" || d.PartySize != 0 {
			return fmt.Errorf("%w: %s needs an offering and no party size", ErrInvalidSession, s.State)
		}
	case StateEnteringDate:
		if d.PartySize == 0 || d.Date != "" {
			return fmt.Errorf("%w: %s needs a party size and no date", ErrInvalidSession, s.State)
		}
	}
	return nil
}

// Store keeps one session per (tenant, customer).
type Store interface {
	// Get returns a copy of the session, creating an idle one when absent.
	// Every call refreshes LastActivity.
	Get(ctx context.Context, key Key) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Reset(ctx context.Context, key Key) error
	// Sweep removes sessions idle for longer than maxAge and returns their keys.
	Sweep(ctx context.Context, maxAge time.Duration) ([]Key, error)
	// ReapTenant removes every session of a tenant.
	ReapTenant(ctx context.Context, tenantID string) ([]Key, error)
}
