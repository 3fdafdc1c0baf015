package flow

import (
	"fmt"
	"strings"

	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/catalog"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/lang"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/session"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/models"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/shared/utils"
)

const divider = "━━━━━━━━━━━━━━━━━━━━━"

var numberEmoji = []string{"0️⃣", "1️⃣", "2️⃣", "3️⃣", "4️⃣", "5️⃣", "6️⃣", "7️⃣", "8️⃣", "9️⃣", "🔟"}

func numberLabel(n int) string {
	if n >= 0 && n < len(numberEmoji) {
		return numberEmoji[n]
	}
	return fmt.Sprintf("%d.", n)
}

func mainMenu(tenant *models.Tenant, l lang.Language) string {
	cat := tenant.Category()
	service := cat.ServiceLabel.In(l)

	var b strings.Builder
	if l == lang.Swahili {
		fmt.Fprintf(&b, "%s *KARIBU %s*\n\n", cat.Icon, strings.ToUpper(tenant.CompanyName))
		b.WriteString("Chagua huduma:\n\n")
	} else {
		fmt.Fprintf(&b, "%s *WELCOME TO %s*\n\n", cat.Icon, strings.ToUpper(tenant.CompanyName))
		b.WriteString("Choose an option:\n\n")
	}

	fmt.Fprintf(&b, "1️⃣ %s %s\n", service, cat.Icon)
	fmt.Fprintf(&b, "2️⃣ %s 📦\n", lang.Pick(l, "Packages", "Pakiti"))
	fmt.Fprintf(&b, "3️⃣ %s 🗺️\n", lang.Pick(l, "Multi-day "+service, service+" za Siku Nyingi"))
	fmt.Fprintf(&b, "4️⃣ %s 💬\n\n", lang.Pick(l, "Chat with Assistant", "Ongea na Msaidizi"))
	b.WriteString(lang.Pick(l, "📝 Reply with your choice", "📝 Jibu na nambari yako"))
	return b.String()
}

func pickupMenu(locations []models.Location, l lang.Language) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📍 *%s*\n\n", lang.Pick(l, "Where is your pickup location?", "Wapi Unaishi?"))
	for i, loc := range locations {
		fmt.Fprintf(&b, "%s %s\n", numberLabel(i+1), loc.Label.In(l))
	}
	b.WriteString("\n")
	b.WriteString(lang.Pick(l, "Reply with number", "Jibu na nambari"))
	return b.String()
}

func listTitle(cat catalog.Category, group models.OfferingGroup, l lang.Language) string {
	service := strings.ToUpper(cat.ServiceLabel.In(l))
	if group == models.GroupExtended {
		return "🗺️ *" + lang.Pick(l, "MULTI-DAY "+service, service+" ZA SIKU NYINGI") + "*"
	}
	return cat.Icon + " *" + service + "*"
}

func offeringMenu(cat catalog.Category, kb *models.KnowledgeBase, group models.OfferingGroup, pickup *session.Pickup, l lang.Language) string {
	zone := ""
	var b strings.Builder
	b.WriteString(listTitle(cat, group, l))
	if pickup != nil {
		zone = pickup.Zone
		fmt.Fprintf(&b, "\n📍 %s", pickup.Label)
	}
	b.WriteString("\n\n")

	currency := kb.Currency()
	for i, o := range kb.OfferingsIn(group) {
		min, max := o.PriceBounds(zone)
		fmt.Fprintf(&b, "%d. %s *%s*\n   💰 %s/%s\n\n", i+1, o.Emoji, o.Name,
			utils.FormatMoneyRange(currency, min, max), lang.Pick(l, "person", "mtu"))
	}

	b.WriteString(lang.Pick(l, "📝 Reply with number", "📝 Jibu na nambari"))
	return b.String()
}

func packageMenu(kb *models.KnowledgeBase, l lang.Language) string {
	var b strings.Builder
	if l == lang.Swahili {
		b.WriteString("📦 *PAKITI*\n\n")
	} else {
		b.WriteString("📦 *PACKAGES*\n_Best value combinations_\n\n")
	}

	currency := kb.Currency()
	for i, o := range kb.OfferingsIn(models.GroupPackage) {
		min, max := o.PriceBounds("")
		fmt.Fprintf(&b, "%d. %s *%s*\n   💰 %s/%s\n", i+1, o.Emoji, o.Name,
			utils.FormatMoneyRange(currency, min, max), lang.Pick(l, "person", "mtu"))
		if o.Description != "" {
			fmt.Fprintf(&b, "   📝 %s\n", o.Description)
		}
		b.WriteString("\n")
	}

	b.WriteString(lang.Pick(l, "💬 Reply with number", "💬 Jibu na nambari"))
	return b.String()
}

func offeringDetails(o models.Offering, d session.Draft, currency string, l lang.Language) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s *%s*\n%s\n\n", o.Emoji, o.Name, divider)

	if o.Description != "" {
		fmt.Fprintf(&b, "📝 %s\n", o.Description)
	}
	if o.Duration != "" {
		fmt.Fprintf(&b, "⏱️ %s: %s\n", lang.Pick(l, "Duration", "Muda"), o.Duration)
	}

	fmt.Fprintf(&b, "\n💰 *%s (%s/%s)*:\n", lang.Pick(l, "Pricing", "Bei"), currency, lang.Pick(l, "person", "mtu"))
	if d.FixedPrice > 0 {
		fmt.Fprintf(&b, "   *%s* %s\n", utils.FormatMoney(currency, d.FixedPrice), lang.Pick(l, "per person", "kwa mtu"))
	} else {
		for _, tier := range d.Pricing {
			fmt.Fprintf(&b, "   👥 %s PAX: *%s*\n", tier.Bucket, utils.FormatMoney(currency, tier.Price))
		}
	}

	if len(o.Highlights) > 0 {
		fmt.Fprintf(&b, "\n✨ *%s*:\n", lang.Pick(l, "Highlights", "Yaliyomo"))
		for _, h := range o.Highlights {
			fmt.Fprintf(&b, "   • %s\n", h)
		}
	}

	b.WriteString("\n" + divider)
	fmt.Fprintf(&b, "\n\n👥 *%s*", lang.Pick(l, "How many people?", "Watu wangapi?"))
	return b.String()
}

func partySizeEcho(d session.Draft, currency string, l lang.Language) string {
	people := lang.Pick(l, "people", "watu")
	if d.PartySize == 1 {
		people = lang.Pick(l, "person", "mtu")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "👥 *%d %s*\n", d.PartySize, people)
	fmt.Fprintf(&b, "💰 %s: *%s*\n", lang.Pick(l, "Price per person", "Bei kwa mtu"), utils.FormatMoney(currency, d.UnitPrice))
	fmt.Fprintf(&b, "💵 %s: *%s*\n\n", lang.Pick(l, "Total", "Jumla"), utils.FormatMoney(currency, d.TotalPrice))
	fmt.Fprintf(&b, "📅 *%s*\n", lang.Pick(l, "What date?", "Tarehe gani?"))
	fmt.Fprintf(&b, "_%s: DD/MM/YYYY_", lang.Pick(l, "Format", "Muundo"))
	return b.String()
}

func confirmation(order *models.Order, cat catalog.Category, l lang.Language) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✅ *%s*\n\n", lang.Pick(l, "BOOKING CONFIRMED!", "UHIFADHI UMEKAMILIKA!"))
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "🎯 %s: *%s*\n", cat.OrderTypeLabel.In(l), order.OfferingName)
	fmt.Fprintf(&b, "👥 %s: *%d*\n", lang.Pick(l, "People", "Watu"), order.PartySize)
	fmt.Fprintf(&b, "📅 %s: *%s*\n", lang.Pick(l, "Date", "Tarehe"), order.Date)
	if order.Pickup != "" {
		fmt.Fprintf(&b, "📍 Pickup: *%s*\n", order.Pickup)
	}
	fmt.Fprintf(&b, "💰 %s: *%s*\n", lang.Pick(l, "Price/person", "Bei/mtu"), utils.FormatMoney(order.Currency, order.UnitPrice))
	fmt.Fprintf(&b, "💵 %s: *%s*\n", lang.Pick(l, "Total", "Jumla"), utils.FormatMoney(order.Currency, order.TotalPrice))
	fmt.Fprintf(&b, "🔖 Booking ID: *%s*\n", order.OrderNumber)
	b.WriteString(divider + "\n\n")
	fmt.Fprintf(&b, "📞 %s\n", lang.Pick(l, "Our agent will contact you shortly.", "Wakala wetu atawasiliana nawe hivi karibuni."))
	b.WriteString("🙏 Asante sana!")
	return b.String()
}

func chatMode(l lang.Language) string {
	return lang.Pick(l,
		"💬 *Chat Mode*\n\nYou can now ask me anything about our services, pricing, or bookings. I'm here to help!\n\n_Type \"menu\" to return to main menu_",
		"💬 *Hali ya Mazungumzo*\n\nSasa unaweza kuuliza swali lolote kuhusu huduma zetu, bei, au uhifadhi. Nitakusaidia!\n\n_Andika \"menu\" kurudi kwenye menyu_",
	)
}

func nothingAvailable(l lang.Language) string {
	return lang.Pick(l,
		"😔 Nothing is available in this section yet. Please choose another option (1-4).",
		"😔 Hakuna kinachopatikana hapa bado. Tafadhali chagua chaguo lingine (1-4).",
	)
}

func errSelectMenu(l lang.Language) string {
	return lang.Pick(l, "❌ Please select 1-4", "❌ Tafadhali chagua 1-4")
}

func errSelectPickup(n int, l lang.Language) string {
	return lang.Pick(l, fmt.Sprintf("❌ Select 1-%d", n), fmt.Sprintf("❌ Chagua 1-%d", n))
}

func errInvalidSelection(l lang.Language) string {
	return lang.Pick(l, "❌ Invalid selection", "❌ Nambari si sahihi")
}

func errInvalidNumber(max int, l lang.Language) string {
	return lang.Pick(l,
		fmt.Sprintf("❌ Please enter a valid number of people (1-%d).", max),
		fmt.Sprintf("❌ Tafadhali ingiza idadi sahihi ya watu (1-%d).", max),
	)
}

func errInvalidDate(l lang.Language) string {
	return lang.Pick(l,
		"❌ Please enter a valid date in format DD/MM/YYYY\n\n_Example: 20/02/2026_",
		"❌ Tafadhali ingiza tarehe sahihi kwa muundo DD/MM/YYYY\n\n_Mfano: 20/02/2026_",
	)
}

func errPastDate(l lang.Language) string {
	return lang.Pick(l, "❌ Please enter a future date.", "❌ Tafadhali ingiza tarehe ijayo.")
}
