package responder

import (
	"fmt"
	"strings"

	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/catalog"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/lang"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/models"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/modules/booking/services"
	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/shared/utils"
)

const (
	maxListedServices = 10
	maxListedPrices   = 8
)

// greetings take the business name then the bot name
var greetings = map[catalog.Type]lang.Text{
	catalog.Tourism: {
		EN: "Hello! 🌴 Welcome to %s! I'm %s, your tour assistant. We help you plan amazing tours in Zanzibar. How can I help you today?",
		SW: "Habari! 🌴 Karibu %s! Mimi ni %s, msaidizi wako wa safari. Tunakusaidia kupanga safari nzuri za Zanzibar. Unataka kusaidiwa na nini leo?",
	},
	catalog.Hotel: {
		EN: "Hello! 🏨 Welcome to %s! I'm %s. Are you looking for accommodation? We have beautiful rooms available. How can I assist you?",
		SW: "Habari! 🏨 Karibu %s! Mimi ni %s. Je, unatafuta chumba cha kulala? Tuna vyumba vizuri sana. Naweza kukusaidia vipi?",
	},
	catalog.Restaurant: {
		EN: "Hello! 🍽️ Welcome to %s! I'm %s. We have delicious food! Would you like to order or see our menu?",
		SW: "Habari! 🍽️ Karibu %s! Mimi ni %s. Tuna chakula kitamu sana! Unataka kuagiza au kujua menyu yetu?",
	},
	catalog.Salon: {
		EN: "Hello! 💇 Welcome to %s! I'm %s. We offer great beauty and hair services. Would you like to book an appointment?",
		SW: "Habari! 💇 Karibu %s! Mimi ni %s. Tuna huduma za urembo na nywele bora. Unahitaji appointment?",
	},
	catalog.Retail: {
		EN: "Hello! 🛒 Welcome to %s! I'm %s. We have many great products. What are you looking for today?",
		SW: "Habari! 🛒 Karibu %s! Mimi ni %s. Tuna bidhaa nyingi nzuri. Unatafuta nini leo?",
	},
	catalog.Healthcare: {
		EN: "Hello! 🏥 Welcome to %s! I'm %s. Do you need medical assistance or would you like to book an appointment?",
		SW: "Habari! 🏥 Karibu %s! Mimi ni %s. Je, unahitaji msaada wa kiafya au appointment na daktari?",
	},
	catalog.Fitness: {
		EN: "Hello! 💪 Welcome to %s! I'm %s. We have great fitness programs. Would you like to join?",
		SW: "Habari! 💪 Karibu %s! Mimi ni %s. Tuna programu nzuri za mazoezi. Unataka kujiunga?",
	},
	catalog.Education: {
		EN: "Hello! 📚 Welcome to %s! I'm %s. We have excellent courses. What would you like to learn?",
		SW: "Habari! 📚 Karibu %s! Mimi ni %s. Tuna kozi nzuri sana. Unataka kujifunza nini?",
	},
	catalog.Transport: {
		EN: "Hello! 🚗 Welcome to %s! I'm %s. We provide excellent transport services. Where would you like to go?",
		SW: "Habari! 🚗 Karibu %s! Mimi ni %s. Tunatoa huduma za usafiri bora. Unataka kwenda wapi?",
	},
	catalog.Events: {
		EN: "Hello! 🎉 Welcome to %s! I'm %s. We help plan amazing events. What event do you have in mind?",
		SW: "Habari! 🎉 Karibu %s! Mimi ni %s. Tunasaidia kupanga matukio mazuri. Una tukio gani?",
	},
	catalog.Services: {
		EN: "Hello! 🔧 Welcome to %s! I'm %s. We provide professional services. What help do you need?",
		SW: "Habari! 🔧 Karibu %s! Mimi ni %s. Tuna huduma za kitaalamu. Unahitaji msaada gani?",
	},
	catalog.RealEstate: {
		EN: "Hello! 🏠 Welcome to %s! I'm %s. We have great properties available. What are you looking for?",
		SW: "Habari! 🏠 Karibu %s! Mimi ni %s. Tuna nyumba na mali nzuri. Unatafuta nini?",
	},
	catalog.Other: {
		EN: "Hello! 🏢 Welcome to %s! I'm %s. How can I help you today?",
		SW: "Habari! 🏢 Karibu %s! Mimi ni %s. Naweza kukusaidia vipi leo?",
	},
}

var bookingInstructions = map[catalog.Type]lang.Text{
	catalog.Tourism: {
		EN: "🎯 *How to Book a Tour:*\n\n1️⃣ Choose your tour\n2️⃣ Tell us date and number of people\n3️⃣ Give us your name and hotel\n4️⃣ We'll confirm!\n\n💬 Type \"menu\" to start a booking.",
		SW: "🎯 *Jinsi ya Kubuku Safari:*\n\n1️⃣ Chagua safari unayoitaka\n2️⃣ Tueleze tarehe na watu wangapi\n3️⃣ Tupe jina lako na hoteli\n4️⃣ Tutakuthibitishia!\n\n💬 Andika \"menu\" kuanza kubuku.",
	},
	catalog.Hotel: {
		EN: "🎯 *How to Book a Room:*\n\n1️⃣ Choose room type\n2️⃣ Tell us dates (check-in and check-out)\n3️⃣ Number of guests\n4️⃣ Your name and phone\n\n💬 Type the dates you want to check in.",
		SW: "🎯 *Jinsi ya Kubuku Chumba:*\n\n1️⃣ Chagua aina ya chumba\n2️⃣ Tueleze tarehe (check-in na check-out)\n3️⃣ Watu wangapi\n4️⃣ Jina na simu yako\n\n💬 Andika tarehe unataka kuingia.",
	},
	catalog.Restaurant: {
		EN: "🎯 *How to Order Food:*\n\n1️⃣ Check our menu\n2️⃣ Choose what you want\n3️⃣ Tell us delivery address\n4️⃣ We'll deliver!\n\n💬 Type \"menu\" to see our food items.",
		SW: "🎯 *Jinsi ya Kuagiza Chakula:*\n\n1️⃣ Angalia menyu yetu\n2️⃣ Chagua chakula unachokitaka\n3️⃣ Tueleze mahali pa kupeleka\n4️⃣ Tutakuletea!\n\n💬 Andika \"menu\" kuona vyakula vyetu.",
	},
	catalog.Salon: {
		EN: "🎯 *How to Book Appointment:*\n\n1️⃣ Choose service (hair, face, etc.)\n2️⃣ Pick date and time\n3️⃣ Your name and phone\n4️⃣ We'll confirm!\n\n💬 Type the service you want.",
		SW: "🎯 *Jinsi ya Kubuku Miadi:*\n\n1️⃣ Chagua huduma (nywele, uso, etc.)\n2️⃣ Chagua tarehe na saa\n3️⃣ Jina na simu yako\n4️⃣ Tutakukonfirm!\n\n💬 Andika huduma unayoitaka.",
	},
	catalog.Retail: {
		EN: "🎯 *How to Order:*\n\n1️⃣ Tell us what product you want\n2️⃣ Quantity\n3️⃣ Delivery address\n4️⃣ We'll deliver!\n\n💬 Type the product you want.",
		SW: "🎯 *Jinsi ya Kuagiza:*\n\n1️⃣ Tueleze bidhaa unayoitaka\n2️⃣ Kiasi gani\n3️⃣ Mahali pa kupeleka\n4️⃣ Tutakuletea!\n\n💬 Andika bidhaa unayoitaka.",
	},
}

var genericBooking = lang.Text{
	EN: "🎯 *How to Get Service:*\n\n1️⃣ Tell us what you need\n2️⃣ We'll reply with details\n3️⃣ Confirm and we'll proceed\n\n💬 Type your request.",
	SW: "🎯 *Jinsi ya Kupata Huduma:*\n\n1️⃣ Tueleze unahitaji nini\n2️⃣ Tutakujibu na maelezo\n3️⃣ Kubali na tutaendelea\n\n💬 Andika ombi lako.",
}

// Fallback renders a canned, tenant-branded reply for the intent of text.
// It never returns an empty string.
func Fallback(tenant *models.Tenant, kb *models.KnowledgeBase, text string, l lang.Language) string {
	if kb == nil {
		kb = &models.KnowledgeBase{}
	}

	switch lang.DetectIntent(text) {
	case lang.IntentGreeting:
		return greetingReply(tenant, kb, l)
	case lang.IntentServices:
		return servicesReply(tenant, kb, l)
	case lang.IntentPrice:
		return priceReply(kb, l)
	case lang.IntentLocation:
		return locationReply(kb, l)
	case lang.IntentHours:
		return hoursReply(kb, l)
	case lang.IntentBooking:
		return bookingReply(tenant, l)
	case lang.IntentThanks:
		return lang.Pick(l,
			fmt.Sprintf("Thank you so much! 🙏 We're happy to serve you. If you need anything else, we're here! - %s", businessName(tenant, kb)),
			fmt.Sprintf("Asante sana! 🙏 Tunafurahi kukuhudumia. Ukihitaji chochote kingine, tupo hapa! - %s", businessName(tenant, kb)),
		)
	case lang.IntentBye:
		return lang.Pick(l,
			fmt.Sprintf("Goodbye! 👋 Thank you for contacting %s. Welcome back anytime!", businessName(tenant, kb)),
			fmt.Sprintf("Kwaheri! 👋 Asante kwa kuwasiliana na %s. Karibu tena wakati wowote!", businessName(tenant, kb)),
		)
	case lang.IntentHelp:
		return helpReply(tenant, l)
	default:
		return generalReply(kb, l)
	}
}

func greetingReply(tenant *models.Tenant, kb *models.KnowledgeBase, l lang.Language) string {
	tmpl, ok := greetings[tenant.Category().ID]
	if !ok {
		tmpl = greetings[catalog.Other]
	}
	return fmt.Sprintf(tmpl.In(l), businessName(tenant, kb), botName(tenant, kb))
}

func servicesReply(tenant *models.Tenant, kb *models.KnowledgeBase, l lang.Language) string {
	cat := tenant.Category()
	label := cat.ServiceLabel.In(l)

	if len(kb.Offerings) == 0 {
		return lang.Pick(l,
			fmt.Sprintf("Sorry, we don't have a %s list available right now. Please contact admin for more details.", label),
			fmt.Sprintf("Samahani, kwa sasa hatuna orodha ya %s. Tafadhali wasiliana na admin kwa maelezo zaidi.", label),
		)
	}

	var b strings.Builder
	b.WriteString(lang.Pick(l,
		fmt.Sprintf("%s *Our %s:*\n\n", cat.Icon, label),
		fmt.Sprintf("%s *%s zetu:*\n\n", cat.Icon, label),
	))

	currency := kb.Currency()
	for i, o := range kb.Offerings {
		if i == maxListedServices {
			break
		}
		fmt.Fprintf(&b, "%d. *%s*", i+1, o.Name)
		if min, max := o.PriceBounds(""); max > 0 {
			fmt.Fprintf(&b, " - %s", utils.FormatMoneyRange(currency, min, max))
		}
		b.WriteString("\n")
		if o.Description != "" {
			fmt.Fprintf(&b, "   %s\n", o.Description)
		}
	}

	if extra := len(kb.Offerings) - maxListedServices; extra > 0 {
		b.WriteString(lang.Pick(l,
			fmt.Sprintf("\n...and %d more!", extra),
			fmt.Sprintf("\n...na mengine %d zaidi!", extra),
		))
	}

	b.WriteString(lang.Pick(l,
		"\n\n💬 Type \"menu\" to book.",
		"\n\n💬 Andika \"menu\" kubuku.",
	))
	return b.String()
}

func priceReply(kb *models.KnowledgeBase, l lang.Language) string {
	phone := kb.Info().Phone
	if phone == "" {
		phone = "admin"
	}

	currency := kb.Currency()
	var lines []string
	for _, o := range kb.Offerings {
		if len(lines) == maxListedPrices {
			break
		}
		min, max := o.PriceBounds("")
		if max == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("• %s: *%s*", o.Name, utils.FormatMoneyRange(currency, min, max)))
	}

	if len(lines) == 0 {
		return lang.Pick(l,
			"💰 Please contact us for pricing. Number: "+phone,
			"💰 Tafadhali wasiliana nasi kupata bei. Namba: "+phone,
		)
	}

	return lang.Pick(l, "💰 *Our Prices:*\n\n", "💰 *Bei zetu:*\n\n") +
		strings.Join(lines, "\n") +
		lang.Pick(l, "\n\n📞 Contact us for more details.", "\n\n📞 Kwa maelezo zaidi wasiliana nasi.")
}

func locationReply(kb *models.KnowledgeBase, l lang.Language) string {
	info := kb.Info()
	if info.Location == "" && info.Phone == "" {
		return lang.Pick(l,
			"📍 Please contact admin for location details.",
			"📍 Tafadhali wasiliana na admin kupata maelezo ya mahali.",
		)
	}

	var b strings.Builder
	b.WriteString(lang.Pick(l, "📍 *Our Details:*\n\n", "📍 *Maelezo yetu:*\n\n"))
	if info.Location != "" {
		fmt.Fprintf(&b, "📍 %s: %s\n", lang.Pick(l, "Location", "Mahali"), info.Location)
	}
	if info.Phone != "" {
		fmt.Fprintf(&b, "📱 %s: %s\n", lang.Pick(l, "Phone", "Simu"), info.Phone)
	}
	if info.Email != "" {
		fmt.Fprintf(&b, "📧 Email: %s\n", info.Email)
	}
	if info.Website != "" {
		fmt.Fprintf(&b, "🌐 Website: %s\n", info.Website)
	}
	return strings.TrimRight(b.String(), "\n")
}

func hoursReply(kb *models.KnowledgeBase, l lang.Language) string {
	hours := kb.Info().Hours
	if len(hours) == 0 {
		return lang.Pick(l,
			"🕐 We are open daily. Contact us for exact hours.",
			"🕐 Tunafungua kila siku. Wasiliana nasi kwa saa kamili.",
		)
	}

	var b strings.Builder
	b.WriteString(lang.Pick(l, "🕐 *Opening Hours:*\n\n", "🕐 *Saa za kufungua:*\n\n"))
	for _, h := range hours {
		if h.Closed {
			fmt.Fprintf(&b, "• %s: %s\n", services.DayName(h.Day, l), lang.Pick(l, "CLOSED", "IMEFUNGWA"))
			continue
		}
		fmt.Fprintf(&b, "• %s: %s - %s\n", services.DayName(h.Day, l), h.Open, h.Close)
	}
	return strings.TrimRight(b.String(), "\n")
}

func bookingReply(tenant *models.Tenant, l lang.Language) string {
	if tmpl, ok := bookingInstructions[tenant.Category().ID]; ok {
		return tmpl.In(l)
	}
	return genericBooking.In(l)
}

func helpReply(tenant *models.Tenant, l lang.Language) string {
	label := tenant.Category().ServiceLabel.In(l)
	return lang.Pick(l,
		fmt.Sprintf("ℹ️ *I can help you with:*\n\n• View our %s\n• Prices and costs\n• Booking/Ordering\n• Our location\n• Opening hours\n\n💬 Type your question or choose one above.", label),
		fmt.Sprintf("ℹ️ *Naweza kukusaidia na:*\n\n• Kuona %s zetu\n• Bei na gharama\n• Kubuku/Kuagiza\n• Mahali tulipo\n• Saa za kufungua\n\n💬 Andika swali lako au chagua moja hapo juu.", label),
	)
}

func generalReply(kb *models.KnowledgeBase, l lang.Language) string {
	reply := lang.Pick(l,
		"Sorry, I didn't quite understand your question. 🤔\n\nYou can:\n• Type \"services\" to see our services\n• Type \"prices\" to see prices\n• Type \"location\" to get our address\n• Type \"book\" for booking instructions",
		"Samahani, sijaelewa vizuri swali lako. 🤔\n\nUnaweza:\n• Andika \"huduma\" kuona huduma zetu\n• Andika \"bei\" kuona bei\n• Andika \"mahali\" kupata location\n• Andika \"book\" kupata maelekezo ya kuagiza",
	)
	if phone := kb.Info().Phone; phone != "" {
		reply += lang.Pick(l, "\n\nOr call us: "+phone, "\n\nAu piga simu: "+phone)
	}
	return reply
}
