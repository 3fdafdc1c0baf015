package responder

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"

	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/catalog"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/lang"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/models"
)

func TestFallbackByIntent(t *testing.T) {
	tenant := testTenant()
	kb := testKnowledge()

	tests := []struct {
		text string
		l    lang.Language
		want []string
	}{
		{"hello", lang.English, []string{"Hello! 🌴 Welcome to Zanzibar Tours! I'm Safari Guide"}},
		{"jambo", lang.Swahili, []string{"Habari! 🌴 Karibu Zanzibar Tours! Mimi ni Safari Guide"}},
		{"how much does it cost", lang.English, []string{"💰 *Our Prices:*", "• Prison Island: *$55 - $100*", "• Spice Farm: *$35*"}},
		{"show me your services", lang.English, []string{"🌴 *Our Tours:*", "1. *Prison Island* - $55 - $100", "2. *Spice Farm* - $35"}},
		{"where are you located", lang.English, []string{"📍 Location: Stone Town", "📱 Phone: +255 777 000 111"}},
		{"opening hours", lang.English, []string{"🕐 *Opening Hours:*", "• Monday: 08:00 - 18:00", "• Sunday: CLOSED"}},
		{"opening hours", lang.Swahili, []string{"• Jumatatu: 08:00 - 18:00", "• Jumapili: IMEFUNGWA"}},
		{"I want to book", lang.English, []string{"🎯 *How to Book a Tour:*"}},
		{"thank you", lang.English, []string{"Thank you so much! 🙏", "- Zanzibar Tours"}},
		{"bye", lang.Swahili, []string{"Kwaheri! 👋 Asante kwa kuwasiliana na Zanzibar Tours."}},
		{"help", lang.English, []string{"• View our Tours"}},
		{"xyz", lang.English, []string{"Sorry, I didn't quite understand", "Or call us: +255 777 000 111"}},
		{"explain please", lang.English, []string{"Sorry, I didn't quite understand"}},
	}

	for _, tt := range tests {
		t.Run(tt.text+"/"+string(tt.l), func(t *testing.T) {
			reply := Fallback(tenant, kb, tt.text, tt.l)
			for _, want := range tt.want {
				assert.Contains(t, reply, want)
			}
		})
	}
}

func TestFallbackDegradesWithoutData(t *testing.T) {
	tenant := testTenant()
	kb := &models.KnowledgeBase{}

	assert.Equal(t, "💰 Please contact us for pricing. Number: admin", Fallback(tenant, kb, "price", lang.English))
	assert.Equal(t, "📍 Please contact admin for location details.", Fallback(tenant, kb, "where", lang.English))
	assert.Equal(t, "🕐 We are open daily. Contact us for exact hours.", Fallback(tenant, kb, "hours", lang.English))
	assert.Contains(t, Fallback(tenant, kb, "services", lang.English), "we don't have a Tours list")
	assert.NotContains(t, Fallback(tenant, kb, "xyz", lang.English), "Or call us")
	assert.Contains(t, Fallback(tenant, nil, "hello", lang.English), "Welcome to Zanzibar Tours")
}

func TestFallbackServiceListIsCapped(t *testing.T) {
	kb := &models.KnowledgeBase{}
	for i := 1; i <= 12; i++ {
		kb.Offerings = append(kb.Offerings, models.Offering{ID: fmt.Sprint(i), Name: fmt.Sprintf("Tour %d", i), FixedPrice: int64(10 * i)})
	}

	services := Fallback(testTenant(), kb, "services", lang.English)
	assert.Contains(t, services, "10. *Tour 10*")
	assert.NotContains(t, services, "Tour 11")
	assert.Contains(t, services, "...and 2 more!")

	prices := Fallback(testTenant(), kb, "price", lang.English)
	assert.Equal(t, 8, strings.Count(prices, "• "))
}

func TestFallbackBookingPerCategory(t *testing.T) {
	tenant := testTenant()

	tenant.BusinessType = catalog.Hotel
	assert.Contains(t, Fallback(tenant, nil, "book", lang.English), "How to Book a Room")

	tenant.BusinessType = catalog.Education
	assert.Contains(t, Fallback(tenant, nil, "book", lang.English), "How to Get Service")
}

func TestBuildSystemPrompt(t *testing.T) {
	tenant := testTenant()
	tenant.CustomInstructions = "Never quote prices in TZS."
	kb := testKnowledge()

	prompt := BuildSystemPrompt(tenant, kb, lang.English)
	assert.Contains(t, prompt, "You are Safari Guide, a friendly, warm, HUMAN-LIKE assistant for Zanzibar Tours 🌴.")
	assert.Contains(t, prompt, "- You are friendly and helpful")
	assert.Contains(t, prompt, "BUSINESS TYPE: Tourism & Travel")
	assert.Contains(t, prompt, "TOUR BOOKING ASSISTANT ROLE:")
	assert.Contains(t, prompt, "========== BUSINESS KNOWLEDGE ==========")
	assert.Contains(t, prompt, "- Prison Island: $55 - $100 per person")
	assert.Contains(t, prompt, "INFORMATION TO COLLECT:\n1. Which tour they want")
	assert.Contains(t, prompt, "CUSTOM INSTRUCTIONS:\nNever quote prices in TZS.")
	assert.NotContains(t, prompt, "CUSTOM FAREWELL")
	assert.True(t, strings.HasSuffix(prompt, "Keep messages concise and suitable for WhatsApp"))
}

func TestBuildSystemPromptUsesAISettings(t *testing.T) {
	tenant := testTenant()
	tenant.CustomInstructions = "tenant level"
	kb := testKnowledge()
	kb.AI = datatypes.NewJSONType(models.AISettings{
		BotName:            "Amina",
		Personality:        "calm and precise",
		CustomInstructions: "knowledge level",
		Farewell:           "Safari njema!",
	})

	prompt := BuildSystemPrompt(tenant, kb, lang.Swahili)
	assert.Contains(t, prompt, "You are Amina")
	assert.Contains(t, prompt, "- You are calm and precise")
	assert.Contains(t, prompt, "BUSINESS TYPE: Utalii na Safari")
	assert.Contains(t, prompt, "knowledge level")
	assert.NotContains(t, prompt, "tenant level")
	assert.Contains(t, prompt, `CUSTOM FAREWELL: End conversations with: "Safari njema!"`)
	assert.Contains(t, prompt, "1. Safari wanayoitaka")
}
