package responder

import (
	"fmt"
	"strings"

	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/catalog"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/lang"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/session"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/models"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/services"
)

const defaultPersonality = "friendly and helpful"

// businessName prefers the knowledge base name over the registered company name.
func businessName(tenant *models.Tenant, kb *models.KnowledgeBase) string {
	if name := kb.Info().Name; name != "" {
		return name
	}
	if tenant.CompanyName != "" {
		return tenant.CompanyName
	}
	return "Business"
}

func botName(tenant *models.Tenant, kb *models.KnowledgeBase) string {
	if name := kb.Settings().BotName; name != "" {
		return name
	}
	return tenant.DisplayBotName()
}

// BuildSystemPrompt renders the persona prompt for one tenant.
func BuildSystemPrompt(tenant *models.Tenant, kb *models.KnowledgeBase, l lang.Language) string {
	if kb == nil {
		kb = &models.KnowledgeBase{}
	}
	cat := tenant.Category()
	ai := kb.Settings()
	bot := botName(tenant, kb)
	business := businessName(tenant, kb)

	personality := ai.Personality
	if personality == "" {
		personality = defaultPersonality
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, a friendly, warm, HUMAN-LIKE assistant for %s %s.\n", bot, business, cat.Icon)
	fmt.Fprintf(&b, "You are a real person working at this %s.\n\n", cat.Name.In(l))

	b.WriteString(`CRITICAL - CONVERSATION MEMORY:
- You MUST remember EVERYTHING the customer told you in previous messages
- If they mentioned their name, use it! Don't ask again.
- Reference previous parts of the conversation naturally
- NEVER start fresh - always continue the existing conversation
- If they mentioned preferences, remember them!

`)

	b.WriteString("YOUR PERSONALITY:\n")
	fmt.Fprintf(&b, "- You are %s\n", personality)
	b.WriteString(`- You take time to understand what the customer wants
- You write naturally, not like a robot or menu system
- You show genuine interest in helping
- You can handle informal greetings and casual conversation

LANGUAGE:
- Respond in the same language the customer uses
- If they write in Swahili, respond in Swahili
- If they write in English, respond in English
- Use natural, conversational language

`)

	fmt.Fprintf(&b, "BUSINESS TYPE: %s\n", cat.Name.In(l))
	b.WriteString(cat.ID.Instructions())

	if knowledge := services.KnowledgeContext(kb, cat.Section, l); knowledge != "" {
		b.WriteString("\n\n========== BUSINESS KNOWLEDGE ==========\n")
		b.WriteString(knowledge)
		b.WriteString("\n==========================================\n")
	}

	b.WriteString("\n\nINFORMATION TO COLLECT:")
	fields := cat.CollectInfo
	if len(fields) == 0 {
		fields = []string{"name", "phone"}
	}
	for i, field := range fields {
		fmt.Fprintf(&b, "\n%d. %s", i+1, catalog.FieldLabel(field, l))
	}
	b.WriteString("\n\nCollect this information naturally through conversation, not as a form.\n")
	b.WriteString("Confirm all details before finalizing any booking/order.")

	instructions := ai.CustomInstructions
	if instructions == "" {
		instructions = tenant.CustomInstructions
	}
	if instructions != "" {
		fmt.Fprintf(&b, "\n\nCUSTOM INSTRUCTIONS:\n%s", instructions)
	}

	greeting := ai.Greeting
	if greeting == "" {
		greeting = tenant.CustomGreeting
	}
	if greeting != "" {
		fmt.Fprintf(&b, "\n\nCUSTOM GREETING: Use this greeting style: %q", greeting)
	}
	if ai.Farewell != "" {
		fmt.Fprintf(&b, "\nCUSTOM FAREWELL: End conversations with: %q", ai.Farewell)
	}

	fmt.Fprintf(&b, `

REMEMBER:
- You are %s, a real person at %s
- Be warm, helpful, and professional
- Always use the information provided above
- If asked about something not in your data, say you'll check with the team
- Complete every response fully
- Keep messages concise and suitable for WhatsApp`, bot, business)

	return b.String()
}

// draftContext describes a booking the customer started but has not finished.
func draftContext(d *session.Draft, kb *models.KnowledgeBase) string {
	if d == nil || d.Empty() {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\nBOOKING IN PROGRESS:")
	if d.Name != "" {
		fmt.Fprintf(&b, "\n- Offering: %s", d.Name)
	}
	if d.Pickup != "" {
		fmt.Fprintf(&b, "\n- Pickup: %s", d.Pickup)
	}
	if d.PartySize > 0 {
		fmt.Fprintf(&b, "\n- People: %d", d.PartySize)
	}
	if d.Date != "" {
		fmt.Fprintf(&b, "\n- Date: %s", d.Date)
	}
	if d.TotalPrice > 0 {
		fmt.Fprintf(&b, "\n- Total: %s %d", kb.Currency(), d.TotalPrice)
	}
	b.WriteString("\nThe booking is only saved once the customer confirms it through the menu.")
	return b.String()
}
