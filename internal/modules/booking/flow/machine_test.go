package flow

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/catalog"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/lang"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/pricing"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/session"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/models"
)

// Wednesday 17 June 2026, 10:00 UTC
var testNow = time.Date(2026, 6, 17, 10, 0, 0, 0, time.UTC)

type fakeLedger struct {
	mu     sync.Mutex
	orders []*models.Order
	err    error
}

func (l *fakeLedger) Create(_ context.Context, tenant *models.Tenant, order *models.Order) (*models.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return nil, l.err
	}
	o := *order
	o.TenantID = tenant.ID
	o.OrderNumber = "ZT-TEST1"
	o.Status = models.StatusPending
	l.orders = append(l.orders, &o)
	return &o, nil
}

func tourTable() pricing.Table {
	return pricing.Table{
		{Bucket: "1", Price: 100},
		{Bucket: "2", Price: 80},
		{Bucket: "3", Price: 70},
		{Bucket: "4", Price: 60},
		{Bucket: "5+", Price: 55},
	}
}

func testTenant() *models.Tenant {
	return &models.Tenant{
		ID:           uuid.New(),
		CompanyName:  "Zanzibar Tours",
		BusinessType: catalog.Tourism,
		Language:     lang.English,
		OrderPrefix:  "ZT",
	}
}

func testKnowledge() *models.KnowledgeBase {
	kb := &models.KnowledgeBase{}
	kb.Business = datatypes.NewJSONType(models.BusinessInfo{Name: "Zanzibar Tours", Currency: "USD"})
	kb.Locations = []models.Location{
		{ID: "stone_town", Zone: "stone_town", Label: lang.Text{EN: "Stone Town", SW: "Mji Mkongwe"}},
		{ID: "nungwi", Zone: "north", Label: lang.Text{EN: "Nungwi", SW: "Nungwi"}},
	}
	kb.Offerings = []models.Offering{
		{
			ID: "prison-island", Name: "Prison Island", Emoji: "🐢", Group: models.GroupMain,
			Duration: "Half day", Pricing: tourTable(),
			ZonePricing: map[string]pricing.Table{"north": {{Bucket: "1", Price: 150}, {Bucket: "2", Price: 130}, {Bucket: "5+", Price: 110}}},
		},
		{ID: "spice-farm", Name: "Spice Farm", Emoji: "🌿", Group: models.GroupMain, FixedPrice: 35},
		{ID: "no-table", Name: "Sunset Walk", Emoji: "🌅", Group: models.GroupMain},
		{ID: "combo", Name: "Combo Day", Emoji: "📦", Group: models.GroupPackage, Pricing: pricing.Table{{Bucket: "1", Price: 90}, {Bucket: "2+", Price: 80}}},
	}
	return kb
}

func newTestMachine(ledger Ledger) *Machine {
	return NewMachine(ledger, Config{MaxPartySize: 50, DefaultUnitPrice: 50, Location: time.UTC})
}

func newTestSession(tenant *models.Tenant, phone string) *session.Session {
	s := session.New(session.Key{TenantID: tenant.ID.String(), CustomerID: phone}, testNow)
	s.Language = tenant.Language
	return s
}

type conversation struct {
	t       *testing.T
	machine *Machine
	tenant  *models.Tenant
	kb      *models.KnowledgeBase
	session *session.Session
}

func newConversation(t *testing.T, ledger Ledger) *conversation {
	tenant := testTenant()
	return &conversation{
		t:       t,
		machine: newTestMachine(ledger),
		tenant:  tenant,
		kb:      testKnowledge(),
		session: newTestSession(tenant, "255712345678"),
	}
}

func (c *conversation) send(text string) Result {
	c.t.Helper()
	res, err := c.machine.Handle(context.Background(), Input{
		Tenant:    c.tenant,
		Knowledge: c.kb,
		Session:   c.session,
		Text:      text,
		Now:       testNow,
	})
	require.NoError(c.t, err)
	require.NoError(c.t, c.session.Validate())
	return res
}

func (c *conversation) sendAll(texts ...string) Result {
	c.t.Helper()
	var res Result
	for _, text := range texts {
		res = c.send(text)
	}
	return res
}

func TestFullBookingFromStoneTown(t *testing.T) {
	ledger := &fakeLedger{}
	c := newConversation(t, ledger)

	res := c.send("hi")
	assert.Equal(t, session.StateMainMenu, c.session.State)
	assert.Contains(t, res.Reply, "*WELCOME TO ZANZIBAR TOURS*")
	assert.Contains(t, res.Reply, "4️⃣ Chat with Assistant 💬")

	res = c.send("1")
	assert.Equal(t, session.StateSelectingPickup, c.session.State)
	assert.Contains(t, res.Reply, "1️⃣ Stone Town")
	assert.Contains(t, res.Reply, "2️⃣ Nungwi")

	res = c.send("1")
	assert.Equal(t, session.StateSelectingOffering, c.session.State)
	require.NotNil(t, c.session.Pickup)
	assert.Equal(t, "stone_town", c.session.Pickup.Zone)
	assert.Contains(t, res.Reply, "📍 Stone Town")
	assert.Contains(t, res.Reply, "1. 🐢 *Prison Island*\n   💰 $55 - $100/person")
	assert.Contains(t, res.Reply, "2. 🌿 *Spice Farm*\n   💰 $35/person")

	res = c.send("1")
	assert.Equal(t, session.StateEnteringPartySize, c.session.State)
	assert.Equal(t, "prison-island", c.session.Draft.OfferingID)
	assert.Contains(t, res.Reply, "👥 5+ PAX: *$55*")
	assert.Contains(t, res.Reply, "How many people?")

	res = c.send("4")
	assert.Equal(t, session.StateEnteringDate, c.session.State)
	assert.Equal(t, int64(60), c.session.Draft.UnitPrice)
	assert.Equal(t, int64(240), c.session.Draft.TotalPrice)
	assert.Contains(t, res.Reply, "💵 Total: *$240*")

	res = c.send("25/12/2026")
	require.NotNil(t, res.Order)
	assert.Equal(t, session.StateIdle, c.session.State)
	assert.True(t, c.session.Draft.Empty())
	assert.Nil(t, c.session.Pickup)

	require.Len(t, ledger.orders, 1)
	order := ledger.orders[0]
	assert.Equal(t, c.tenant.ID, order.TenantID)
	assert.Equal(t, "255712345678", order.CustomerPhone)
	assert.Equal(t, "Prison Island", order.OfferingName)
	assert.Equal(t, 4, order.PartySize)
	assert.Equal(t, int64(60), order.UnitPrice)
	assert.Equal(t, int64(240), order.TotalPrice)
	assert.Equal(t, "USD", order.Currency)
	assert.Equal(t, "25/12/2026", order.Date)
	assert.Equal(t, "Stone Town", order.Pickup)
	assert.Equal(t, models.StatusPending, order.Status)

	assert.Contains(t, res.Reply, "✅ *BOOKING CONFIRMED!*")
	assert.Contains(t, res.Reply, "🎯 Tour Booking: *Prison Island*")
	assert.Contains(t, res.Reply, "🔖 Booking ID: *ZT-TEST1*")
	assert.Contains(t, res.Reply, "💵 Total: *$240*")
}

func TestZonePricingFollowsPickup(t *testing.T) {
	c := newConversation(t, &fakeLedger{})
	c.sendAll("hi", "1", "2", "1")
	assert.Equal(t, pricing.Table{{Bucket: "1", Price: 150}, {Bucket: "2", Price: 130}, {Bucket: "5+", Price: 110}}, c.session.Draft.Pricing)

	c.send("2")
	assert.Equal(t, int64(130), c.session.Draft.UnitPrice)
	assert.Equal(t, int64(260), c.session.Draft.TotalPrice)
	assert.Equal(t, "Nungwi", c.session.Draft.Pickup)
}

func TestUnitPriceSources(t *testing.T) {
	tests := []struct {
		name     string
		offering string
		size     string
		unit     int64
		total    int64
	}{
		{"table open bucket", "1", "7", 55, 385},
		{"fixed price", "2", "3", 35, 105},
		{"no pricing uses default", "3", "2", 50, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newConversation(t, &fakeLedger{})
			c.sendAll("hi", "1", "1", tt.offering, tt.size)
			assert.Equal(t, session.StateEnteringDate, c.session.State)
			assert.Equal(t, tt.unit, c.session.Draft.UnitPrice)
			assert.Equal(t, tt.total, c.session.Draft.TotalPrice)
		})
	}
}

func TestPartySizeRejectsInvalidInput(t *testing.T) {
	c := newConversation(t, &fakeLedger{})
	c.sendAll("hi", "1", "1", "1")
	require.Equal(t, session.StateEnteringPartySize, c.session.State)

	for _, input := range []string{"-1", "abc", "51", "2.5", "1e2", "four"} {
		res := c.send(input)
		assert.Equal(t, "❌ Please enter a valid number of people (1-50).", res.Reply, input)
		assert.Equal(t, session.StateEnteringPartySize, c.session.State, input)
		assert.Zero(t, c.session.Draft.PartySize, input)
	}

	c.send(" 50 ")
	assert.Equal(t, session.StateEnteringDate, c.session.State)
	assert.Equal(t, 50, c.session.Draft.PartySize)
}

func TestDateValidation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		reply string
		ok    bool
		date  string
	}{
		{"february overflow", "31/02/2026", "valid date", false, ""},
		{"day out of range", "32/01/2027", "valid date", false, ""},
		{"month out of range", "10/13/2026", "valid date", false, ""},
		{"iso format", "2026-12-25", "valid date", false, ""},
		{"yesterday", "16/06/2026", "future date", false, ""},
		{"today", "17/06/2026", "", true, "17/06/2026"},
		{"zero padded", "5/7/2026", "", true, "05/07/2026"},
		{"leap day", "29/02/2028", "", true, "29/02/2028"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := &fakeLedger{}
			c := newConversation(t, ledger)
			c.sendAll("hi", "1", "1", "1", "2")

			res := c.send(tt.input)
			if !tt.ok {
				assert.Contains(t, res.Reply, tt.reply)
				assert.Equal(t, session.StateEnteringDate, c.session.State)
				assert.Empty(t, ledger.orders)
				return
			}
			require.Len(t, ledger.orders, 1)
			assert.Equal(t, tt.date, ledger.orders[0].Date)
			assert.Contains(t, res.Reply, "📅 Date: *"+tt.date+"*")
		})
	}
}

func TestParseDateUsesTodayInLocation(t *testing.T) {
	eat := time.FixedZone("EAT", 3*3600)
	// 22:30 UTC on the 16th is already the 17th in Dar es Salaam
	now := time.Date(2026, 6, 16, 22, 30, 0, 0, time.UTC).In(eat)

	_, err := ParseDate("16/06/2026", now)
	assert.ErrorIs(t, err, errDatePast)

	date, err := ParseDate("17/06/2026", now)
	require.NoError(t, err)
	assert.Equal(t, "17/06/2026", date)
}

func TestLedgerFailureKeepsDraft(t *testing.T) {
	ledger := &fakeLedger{err: errors.New("db down")}
	c := newConversation(t, ledger)
	c.sendAll("hi", "1", "1", "1", "4")

	res, err := c.machine.Handle(context.Background(), Input{
		Tenant: c.tenant, Knowledge: c.kb, Session: c.session, Text: "25/12/2026", Now: testNow,
	})
	require.Error(t, err)
	assert.Empty(t, res.Reply)
	assert.Nil(t, res.Order)
	assert.Equal(t, session.StateEnteringDate, c.session.State)
	assert.Equal(t, int64(240), c.session.Draft.TotalPrice)
}

func TestRestartFromEveryState(t *testing.T) {
	setups := map[session.State][]string{
		session.StateIdle:              nil,
		session.StateMainMenu:          {"hi"},
		session.StateSelectingPickup:   {"hi", "1"},
		session.StateSelectingOffering: {"hi", "1", "1"},
		session.StateSelectingPackage:  {"hi", "2"},
		session.StateEnteringPartySize: {"hi", "1", "1", "1"},
		session.StateEnteringDate:      {"hi", "1", "1", "1", "4"},
		session.StateAIChat:            {"hi", "4"},
	}

	for state, setup := range setups {
		for _, keyword := range []string{"menu", "0", "START", "menyu", "anza"} {
			t.Run(string(state)+"/"+keyword, func(t *testing.T) {
				c := newConversation(t, &fakeLedger{})
				c.sendAll(setup...)
				require.Equal(t, state, c.session.State)

				res := c.send(keyword)
				assert.Equal(t, session.StateMainMenu, c.session.State)
				assert.True(t, c.session.Draft.Empty())
				assert.Nil(t, c.session.Pickup)
				assert.True(t, res.ClearHistory)
				assert.False(t, res.Escalate)
				assert.Contains(t, res.Reply, "ZANZIBAR TOURS")
			})
		}
	}
}

func TestRestartFromDateEntryDropsDraft(t *testing.T) {
	ledger := &fakeLedger{}
	c := newConversation(t, ledger)
	c.sendAll("hi", "1", "1", "1", "4")
	require.Equal(t, int64(240), c.session.Draft.TotalPrice)

	res := c.send("menu")
	assert.Contains(t, res.Reply, "1️⃣ Tours")
	assert.Equal(t, session.Draft{}, c.session.Draft)

	// a date typed now is just a bad menu choice
	res = c.send("25/12/2026")
	assert.Equal(t, "❌ Please select 1-4", res.Reply)
	assert.Empty(t, ledger.orders)
}

func TestSameCustomerTwoTenants(t *testing.T) {
	ledger := &fakeLedger{}
	m := newTestMachine(ledger)
	phone := "255700000001"

	tenantA, tenantB := testTenant(), testTenant()
	tenantB.CompanyName = "Arusha Safaris"
	kbA, kbB := testKnowledge(), testKnowledge()
	sessA, sessB := newTestSession(tenantA, phone), newTestSession(tenantB, phone)

	step := func(tenant *models.Tenant, kb *models.KnowledgeBase, s *session.Session, text string) Result {
		res, err := m.Handle(context.Background(), Input{Tenant: tenant, Knowledge: kb, Session: s, Text: text, Now: testNow})
		require.NoError(t, err)
		return res
	}

	for _, text := range []string{"hi", "1", "1", "1"} {
		step(tenantA, kbA, sessA, text)
	}
	res := step(tenantB, kbB, sessB, "hi")
	assert.Contains(t, res.Reply, "ARUSHA SAFARIS")

	assert.Equal(t, session.StateEnteringPartySize, sessA.State)
	assert.Equal(t, session.StateMainMenu, sessB.State)

	step(tenantA, kbA, sessA, "2")
	step(tenantA, kbA, sessA, "25/12/2026")
	require.Len(t, ledger.orders, 1)
	assert.Equal(t, tenantA.ID, ledger.orders[0].TenantID)
	assert.Equal(t, session.StateMainMenu, sessB.State)
}

func TestMainMenuChoices(t *testing.T) {
	t.Run("invalid choice", func(t *testing.T) {
		c := newConversation(t, &fakeLedger{})
		c.send("hi")
		for _, input := range []string{"9", "one", "1.0"} {
			assert.Equal(t, "❌ Please select 1-4", c.send(input).Reply)
			assert.Equal(t, session.StateMainMenu, c.session.State)
		}
	})

	t.Run("packages", func(t *testing.T) {
		c := newConversation(t, &fakeLedger{})
		res := c.sendAll("hi", "2")
		assert.Equal(t, session.StateSelectingPackage, c.session.State)
		assert.Contains(t, res.Reply, "📦 *PACKAGES*")
		assert.Contains(t, res.Reply, "1. 📦 *Combo Day*")

		c.send("1")
		assert.Equal(t, "combo", c.session.Draft.OfferingID)
		assert.Empty(t, c.session.Draft.Pickup)
	})

	t.Run("empty extended group", func(t *testing.T) {
		c := newConversation(t, &fakeLedger{})
		res := c.sendAll("hi", "3")
		assert.Equal(t, session.StateMainMenu, c.session.State)
		assert.Contains(t, res.Reply, "Nothing is available")
	})

	t.Run("chat mode", func(t *testing.T) {
		c := newConversation(t, &fakeLedger{})
		res := c.sendAll("hi", "4")
		assert.Equal(t, session.StateAIChat, c.session.State)
		assert.Contains(t, res.Reply, "Chat Mode")

		res = c.send("is lunch included?")
		assert.True(t, res.Escalate)
		assert.Empty(t, res.Reply)
		assert.Equal(t, session.StateAIChat, c.session.State)
	})

	t.Run("no locations skips pickup", func(t *testing.T) {
		c := newConversation(t, &fakeLedger{})
		c.kb.Locations = nil
		res := c.sendAll("hi", "1")
		assert.Equal(t, session.StateSelectingOffering, c.session.State)
		assert.Nil(t, c.session.Pickup)
		assert.Contains(t, res.Reply, "1. 🐢 *Prison Island*")
	})
}

func TestSelectionErrors(t *testing.T) {
	dateErr := "❌ Please enter a valid date in format DD/MM/YYYY\n\n_Example: 20/02/2026_"
	partyErr := "❌ Please enter a valid number of people (1-50)."

	states := []struct {
		state  session.State
		setup  []string
		reply  string
		inputs []string
	}{
		{session.StateMainMenu, []string{"hi"}, "❌ Please select 1-4", []string{"abc", "0", "5", "-1", "2.5"}},
		{session.StateSelectingPickup, []string{"hi", "1"}, "❌ Select 1-2", []string{"abc", "0", "3", "-1", "2.5"}},
		{session.StateSelectingOffering, []string{"hi", "1", "1"}, "❌ Invalid selection", []string{"abc", "0", "4", "-1", "2.5"}},
		{session.StateSelectingPackage, []string{"hi", "2"}, "❌ Invalid selection", []string{"abc", "0", "2", "-1", "2.5"}},
		{session.StateEnteringPartySize, []string{"hi", "1", "1", "1"}, partyErr, []string{"abc", "0", "51", "-1", "2.5"}},
		{session.StateEnteringDate, []string{"hi", "1", "1", "1", "2"}, dateErr, []string{"abc", "0", "32/01/2027", "-1", "2.5"}},
	}

	for _, st := range states {
		t.Run(string(st.state), func(t *testing.T) {
			ledger := &fakeLedger{}
			c := newConversation(t, ledger)
			c.sendAll(st.setup...)
			require.Equal(t, st.state, c.session.State)

			draft := c.session.Draft
			var pickup *session.Pickup
			if c.session.Pickup != nil {
				p := *c.session.Pickup
				pickup = &p
			}

			for _, input := range st.inputs {
				res := c.send(input)
				assert.Equal(t, st.reply, res.Reply, input)
				assert.Nil(t, res.Order, input)
				assert.Equal(t, st.state, c.session.State, input)
				assert.Equal(t, draft, c.session.Draft, input)
				assert.Equal(t, pickup, c.session.Pickup, input)
			}

			for _, input := range []string{"", "   "} {
				res := c.send(input)
				assert.Equal(t, Result{}, res, "%q", input)
				assert.Equal(t, st.state, c.session.State, "%q", input)
				assert.Equal(t, draft, c.session.Draft, "%q", input)
			}

			assert.Empty(t, ledger.orders)
		})
	}
}

func TestIdleMessages(t *testing.T) {
	c := newConversation(t, &fakeLedger{})

	res := c.send("ok")
	assert.Empty(t, res.Reply)
	assert.False(t, res.Escalate)
	assert.Equal(t, session.StateIdle, c.session.State)

	res = c.send("what time do you open?")
	assert.True(t, res.Escalate)
	assert.Equal(t, session.StateAIChat, c.session.State)

	res = c.send("   ")
	assert.Equal(t, Result{}, res)
}

func TestSwahiliIsSticky(t *testing.T) {
	c := newConversation(t, &fakeLedger{})

	res := c.send("habari")
	assert.Equal(t, lang.Swahili, c.session.Language)
	assert.Contains(t, res.Reply, "*KARIBU ZANZIBAR TOURS*")

	res = c.send("hi")
	assert.Equal(t, lang.Swahili, c.session.Language)
	assert.Contains(t, res.Reply, "KARIBU")

	res = c.send("1")
	assert.Contains(t, res.Reply, "1️⃣ Mji Mkongwe")

	res = c.sendAll("1", "1", "2")
	assert.Contains(t, res.Reply, "Tarehe gani?")
}

func TestEnglishEntryResetsNonStickyLanguage(t *testing.T) {
	c := newConversation(t, &fakeLedger{})
	c.session.Language = lang.Swahili

	res := c.send("hello")
	assert.Equal(t, lang.English, c.session.Language)
	assert.Contains(t, res.Reply, "WELCOME")
}
