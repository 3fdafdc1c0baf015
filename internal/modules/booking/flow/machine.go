// Package flow is the menu-driven booking conversation. A Machine takes one
// inbound message and the customer's session, moves the session along the
// booking funnel and returns the reply to send.
package flow

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/lang"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/pricing"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/session"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/models"
)

var (
	errDateFormat = errors.New("invalid date format")
	errDatePast   = errors.New("date is in the past")
)

var datePattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)

// Ledger persists finalized bookings. The write is part of finalization:
// no confirmation is sent unless it succeeds.
type Ledger interface {
	Create(ctx context.Context, tenant *models.Tenant, order *models.Order) (*models.Order, error)
}

type Config struct {
	MaxPartySize     int
	DefaultUnitPrice int64
	// Location decides what "today" means for date validation.
	Location *time.Location
}

type Machine struct {
	ledger Ledger
	cfg    Config
}

func NewMachine(ledger Ledger, cfg Config) *Machine {
	if cfg.MaxPartySize <= 0 {
		cfg.MaxPartySize = 50
	}
	if cfg.DefaultUnitPrice <= 0 {
		cfg.DefaultUnitPrice = 50
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	return &Machine{ledger: ledger, cfg: cfg}
}

type Input struct {
	Tenant    *models.Tenant
	Knowledge *models.KnowledgeBase
	// Session is mutated in place. Callers pass a copy and save it on success.
	Session *session.Session
	Text    string
	Now     time.Time
}

type Result struct {
	// Reply is empty when the message needs no answer.
	Reply string
	// Escalate hands the message to the AI/fallback responder.
	Escalate bool
	// ClearHistory asks the caller to drop the AI history of the conversation.
	ClearHistory bool
	// Order is set when the message finalized a booking.
	Order *models.Order
}

// Handle applies one message to the session.
func (m *Machine) Handle(ctx context.Context, in Input) (Result, error) {
	s := in.Session
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return Result{}, nil
	}
	if in.Knowledge == nil {
		in.Knowledge = &models.KnowledgeBase{}
	}
	if in.Now.IsZero() {
		in.Now = time.Now()
	}

	if lang.IsSwahili(text) {
		s.Language = lang.Swahili
		s.LanguageSticky = true
	}

	// restart beats every state-specific parse
	if lang.IsRestartKeyword(text) {
		s.Reset(session.StateMainMenu)
		return Result{Reply: mainMenu(in.Tenant, s.Language), ClearHistory: true}, nil
	}

	switch s.State {
	case session.StateIdle:
		if lang.IsEntryKeyword(text) {
			return m.start(in, text), nil
		}
		if lang.ShouldUseAI(text) {
			s.State = session.StateAIChat
			return Result{Escalate: true}, nil
		}
		return Result{}, nil

	case session.StateAIChat:
		return Result{Escalate: true}, nil

	case session.StateMainMenu, session.StateSelectingPickup, session.StateSelectingOffering,
		session.StateSelectingPackage, session.StateEnteringPartySize, session.StateEnteringDate:
		if lang.IsEntryKeyword(text) {
			return m.start(in, text), nil
		}
	}

	switch s.State {
	case session.StateMainMenu:
		return m.mainMenu(in, text), nil
	case session.StateSelectingPickup:
		return m.selectPickup(in, text), nil
	case session.StateSelectingOffering:
		return m.selectOffering(in, text, models.OfferingGroup(s.Draft.Group)), nil
	case session.StateSelectingPackage:
		return m.selectOffering(in, text, models.GroupPackage), nil
	case session.StateEnteringPartySize:
		return m.enterPartySize(in, text), nil
	case session.StateEnteringDate:
		return m.enterDate(ctx, in, text)
	default:
		log.Warn().Str("state", string(s.State)).Msg("⚠️ Unknown session state, restarting flow")
		return m.start(in, text), nil
	}
}

// start opens the main menu in the language of the message that started it.
// A customer who already wrote Swahili keeps Swahili.
func (m *Machine) start(in Input, text string) Result {
	s := in.Session
	switch {
	case lang.IsSwahili(text):
		s.Language = lang.Swahili
	case !s.LanguageSticky:
		s.Language = lang.English
	}
	s.Reset(session.StateMainMenu)
	return Result{Reply: mainMenu(in.Tenant, s.Language)}
}

func (m *Machine) mainMenu(in Input, text string) Result {
	s, kb, l := in.Session, in.Knowledge, in.Session.Language
	cat := in.Tenant.Category()

	choice, err := strconv.Atoi(text)
	if err != nil {
		return Result{Reply: errSelectMenu(l)}
	}

	switch choice {
	case 1:
		if len(kb.OfferingsIn(models.GroupMain)) == 0 {
			return Result{Reply: nothingAvailable(l)}
		}
		s.Pickup = nil
		s.Draft = session.Draft{Group: string(models.GroupMain)}
		if len(kb.Locations) > 0 {
			s.State = session.StateSelectingPickup
			return Result{Reply: pickupMenu(kb.Locations, l)}
		}
		s.State = session.StateSelectingOffering
		return Result{Reply: offeringMenu(cat, kb, models.GroupMain, nil, l)}

	case 2:
		if len(kb.OfferingsIn(models.GroupPackage)) == 0 {
			return Result{Reply: nothingAvailable(l)}
		}
		s.Pickup = nil
		s.Draft = session.Draft{Group: string(models.GroupPackage)}
		s.State = session.StateSelectingPackage
		return Result{Reply: packageMenu(kb, l)}

	case 3:
		if len(kb.OfferingsIn(models.GroupExtended)) == 0 {
			return Result{Reply: nothingAvailable(l)}
		}
		s.Pickup = nil
		s.Draft = session.Draft{Group: string(models.GroupExtended)}
		s.State = session.StateSelectingOffering
		return Result{Reply: offeringMenu(cat, kb, models.GroupExtended, nil, l)}

	case 4:
		s.State = session.StateAIChat
		return Result{Reply: chatMode(l)}
	}

	return Result{Reply: errSelectMenu(l)}
}

func (m *Machine) selectPickup(in Input, text string) Result {
	s, kb, l := in.Session, in.Knowledge, in.Session.Language

	choice, err := strconv.Atoi(text)
	if err != nil || choice < 1 || choice > len(kb.Locations) {
		return Result{Reply: errSelectPickup(len(kb.Locations), l)}
	}

	loc := kb.Locations[choice-1]
	s.Pickup = &session.Pickup{ID: loc.ID, Zone: loc.Zone, Label: loc.Label.In(l)}
	s.Draft = session.Draft{Group: string(models.GroupMain)}
	s.State = session.StateSelectingOffering
	return Result{Reply: offeringMenu(in.Tenant.Category(), kb, models.GroupMain, s.Pickup, l)}
}

func (m *Machine) selectOffering(in Input, text string, group models.OfferingGroup) Result {
	s, kb, l := in.Session, in.Knowledge, in.Session.Language
	if !group.Valid() {
		group = models.GroupMain
	}

	offerings := kb.OfferingsIn(group)
	idx, err := strconv.Atoi(text)
	if err != nil || idx < 1 || idx > len(offerings) {
		return Result{Reply: errInvalidSelection(l)}
	}

	o := offerings[idx-1]
	zone, pickup := "", ""
	if s.Pickup != nil {
		zone, pickup = s.Pickup.Zone, s.Pickup.Label
	}

	s.Draft = session.Draft{
		OfferingID: o.ID,
		Name:       o.Name,
		Emoji:      o.Emoji,
		Group:      string(group),
		Pricing:    append(pricing.Table(nil), o.PricingFor(zone)...),
		FixedPrice: o.FixedPrice,
		Pickup:     pickup,
	}
	s.State = session.StateEnteringPartySize
	return Result{Reply: offeringDetails(o, s.Draft, kb.Currency(), l)}
}

func (m *Machine) enterPartySize(in Input, text string) Result {
	s, l := in.Session, in.Session.Language

	size, err := strconv.Atoi(text)
	if err != nil || size < 1 || size > m.cfg.MaxPartySize {
		return Result{Reply: errInvalidNumber(m.cfg.MaxPartySize, l)}
	}

	s.Draft.SetPartySize(size, m.unitPrice(s, size))
	s.State = session.StateEnteringDate
	return Result{Reply: partySizeEcho(s.Draft, in.Knowledge.Currency(), l)}
}

// unitPrice prefers a fixed price, then the tier table, then the configured default.
func (m *Machine) unitPrice(s *session.Session, size int) int64 {
	d := s.Draft
	if d.FixedPrice > 0 {
		return d.FixedPrice
	}
	if len(d.Pricing) > 0 {
		price, err := pricing.Resolve(d.Pricing, size)
		if err == nil {
			return price
		}
		log.Error().Err(err).
			Str("tenant_id", s.TenantID).
			Str("offering", d.OfferingID).
			Int("party_size", size).
			Msg("❌ Pricing table did not resolve, using default unit price")
	}
	return m.cfg.DefaultUnitPrice
}

func (m *Machine) enterDate(ctx context.Context, in Input, text string) (Result, error) {
	s, l := in.Session, in.Session.Language

	date, err := ParseDate(text, in.Now.In(m.cfg.Location))
	switch {
	case errors.Is(err, errDatePast):
		return Result{Reply: errPastDate(l)}, nil
	case err != nil:
		return Result{Reply: errInvalidDate(l)}, nil
	}

	d := s.Draft
	order := &models.Order{
		CustomerPhone: s.CustomerID,
		OfferingID:    d.OfferingID,
		OfferingName:  d.Name,
		PartySize:     d.PartySize,
		UnitPrice:     d.UnitPrice,
		TotalPrice:    d.TotalPrice,
		Currency:      in.Knowledge.Currency(),
		Date:          date,
		Pickup:        d.Pickup,
	}

	created, err := m.ledger.Create(ctx, in.Tenant, order)
	if err != nil {
		return Result{}, fmt.Errorf("finalize booking: %w", err)
	}

	s.Reset(session.StateIdle)
	return Result{
		Reply: confirmation(created, in.Tenant.Category(), l),
		Order: created,
	}, nil
}

// ParseDate validates a DD/MM/YYYY date against today and returns it zero-padded.
// Day or month overflow is a format error; today is accepted.
func ParseDate(text string, today time.Time) (string, error) {
	match := datePattern.FindStringSubmatch(strings.TrimSpace(text))
	if match == nil {
		return "", errDateFormat
	}

	day, _ := strconv.Atoi(match[1])
	month, _ := strconv.Atoi(match[2])
	year, _ := strconv.Atoi(match[3])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", errDateFormat
	}

	loc := today.Location()
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if date.Day() != day || int(date.Month()) != month {
		return "", errDateFormat
	}

	startOfToday := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc)
	if date.Before(startOfToday) {
		return "", errDatePast
	}

	return fmt.Sprintf("%02d/%02d/%d", day, month, year), nil
}
