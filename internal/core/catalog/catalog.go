package catalog

import (
	"strings"

	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/lang"
)

// Type is a business category. The set is closed: unknown strings parse to Other.
type Type string

const (
	Tourism    Type = "tourism"
	Hotel      Type = "hotel"
	Restaurant Type = "restaurant"
	Salon      Type = "salon"
	Retail     Type = "retail"
	Healthcare Type = "healthcare"
	Fitness    Type = "fitness"
	Education  Type = "education"
	Transport  Type = "transport"
	Events     Type = "events"
	Services   Type = "services"
	RealEstate Type = "real_estate"
	Other      Type = "other"
)

// Category describes how a business type talks to its customers.
type Category struct {
	ID             Type      `json:"id"`
	Icon           string    `json:"icon"`
	Name           lang.Text `json:"name"`
	Description    lang.Text `json:"description"`
	DefaultBotName string    `json:"default_bot_name"`
	ServiceLabel   lang.Text `json:"service_label"`
	BookingLabel   lang.Text `json:"booking_label"`
	// Section is the knowledge base list name used in prompts (tours, rooms, menu...).
	Section        string    `json:"section"`
	CollectInfo    []string  `json:"collect_info"`
	OrderType      string    `json:"order_type"`
	OrderTypeLabel lang.Text `json:"order_type_label"`
}

// Option is a dropdown entry for admin forms.
type Option struct {
	Value       Type   `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

var categories = []Category{
	{
		ID:             Tourism,
		Icon:           "🌴",
		Name:           lang.Text{EN: "Tourism & Travel", SW: "Utalii na Safari"},
		Description:    lang.Text{EN: "Tour operators, travel agencies, safari companies", SW: "Wakala wa utalii, safari za wanyama, huduma za kusafiri"},
		DefaultBotName: "Safari Guide",
		ServiceLabel:   lang.Text{EN: "Tours", SW: "Safari"},
		BookingLabel:   lang.Text{EN: "Book Tour", SW: "Buku Safari"},
		Section:        "tours",
		CollectInfo:    []string{"tour", "date", "pax", "pickup_location", "hotel", "name", "phone"},
		OrderType:      "booking",
		OrderTypeLabel: lang.Text{EN: "Tour Booking", SW: "Booking ya Safari"},
	},
	{
		ID:             Hotel,
		Icon:           "🏨",
		Name:           lang.Text{EN: "Hotel & Accommodation", SW: "Hoteli na Malazi"},
		Description:    lang.Text{EN: "Hotels, resorts, lodges, guesthouses, Airbnb", SW: "Hoteli, resorts, guest houses, nyumba za kupanga"},
		DefaultBotName: "Receptionist",
		ServiceLabel:   lang.Text{EN: "Rooms", SW: "Vyumba"},
		BookingLabel:   lang.Text{EN: "Book Room", SW: "Buku Chumba"},
		Section:        "rooms",
		CollectInfo:    []string{"room_type", "check_in", "check_out", "guests", "name", "phone", "email"},
		OrderType:      "reservation",
		OrderTypeLabel: lang.Text{EN: "Room Reservation", SW: "Booking ya Chumba"},
	},
	{
		ID:             Restaurant,
		Icon:           "🍽️",
		Name:           lang.Text{EN: "Restaurant & Food", SW: "Mgahawa na Chakula"},
		Description:    lang.Text{EN: "Restaurants, cafes, food delivery, catering", SW: "Migahawa, cafe, delivery ya chakula, catering"},
		DefaultBotName: "Waiter",
		ServiceLabel:   lang.Text{EN: "Menu", SW: "Menyu"},
		BookingLabel:   lang.Text{EN: "Order", SW: "Agiza"},
		Section:        "menu",
		CollectInfo:    []string{"items", "delivery_address", "name", "phone", "payment_method"},
		OrderType:      "order",
		OrderTypeLabel: lang.Text{EN: "Food Order", SW: "Order ya Chakula"},
	},
	{
		ID:             Salon,
		Icon:           "💇",
		Name:           lang.Text{EN: "Salon & Beauty", SW: "Salon na Urembo"},
		Description:    lang.Text{EN: "Hair salons, beauty parlors, spas, barbershops", SW: "Saluni za nywele, urembo, spa, kinyozi"},
		DefaultBotName: "Stylist",
		ServiceLabel:   lang.Text{EN: "Services", SW: "Huduma"},
		BookingLabel:   lang.Text{EN: "Book Appointment", SW: "Buku Miadi"},
		Section:        "services",
		CollectInfo:    []string{"service", "stylist", "date", "time", "name", "phone"},
		OrderType:      "appointment",
		OrderTypeLabel: lang.Text{EN: "Appointment", SW: "Miadi"},
	},
	{
		ID:             Retail,
		Icon:           "🛒",
		Name:           lang.Text{EN: "Shop & Retail", SW: "Duka na Biashara"},
		Description:    lang.Text{EN: "Shops, boutiques, electronics, grocery stores", SW: "Maduka, boutique, electronics, grocery"},
		DefaultBotName: "Sales Assistant",
		ServiceLabel:   lang.Text{EN: "Products", SW: "Bidhaa"},
		BookingLabel:   lang.Text{EN: "Order", SW: "Agiza"},
		Section:        "products",
		CollectInfo:    []string{"products", "quantity", "delivery_address", "name", "phone", "payment"},
		OrderType:      "order",
		OrderTypeLabel: lang.Text{EN: "Product Order", SW: "Order ya Bidhaa"},
	},
	{
		ID:             Healthcare,
		Icon:           "🏥",
		Name:           lang.Text{EN: "Healthcare & Medical", SW: "Afya na Matibabu"},
		Description:    lang.Text{EN: "Clinics, hospitals, pharmacies, dental offices", SW: "Kliniki, hospitali, pharmacy, daktari wa meno"},
		DefaultBotName: "Nurse",
		ServiceLabel:   lang.Text{EN: "Services", SW: "Huduma"},
		BookingLabel:   lang.Text{EN: "Book Appointment", SW: "Buku Miadi"},
		Section:        "services",
		CollectInfo:    []string{"service", "doctor", "date", "time", "symptoms", "name", "phone", "insurance"},
		OrderType:      "appointment",
		OrderTypeLabel: lang.Text{EN: "Appointment", SW: "Miadi"},
	},
	{
		ID:             Fitness,
		Icon:           "💪",
		Name:           lang.Text{EN: "Gym & Fitness", SW: "Gym na Mazoezi"},
		Description:    lang.Text{EN: "Gyms, fitness centers, yoga studios, personal trainers", SW: "Gym, fitness center, yoga, personal trainer"},
		DefaultBotName: "Trainer",
		ServiceLabel:   lang.Text{EN: "Programs", SW: "Programu"},
		BookingLabel:   lang.Text{EN: "Join", SW: "Jiunge"},
		Section:        "programs",
		CollectInfo:    []string{"program", "membership_type", "start_date", "name", "phone", "fitness_goals"},
		OrderType:      "membership",
		OrderTypeLabel: lang.Text{EN: "Membership", SW: "Uanachama"},
	},
	{
		ID:             Education,
		Icon:           "📚",
		Name:           lang.Text{EN: "Education & Training", SW: "Elimu na Mafunzo"},
		Description:    lang.Text{EN: "Schools, tutoring, training centers, online courses", SW: "Shule, tuition, training, online courses"},
		DefaultBotName: "Advisor",
		ServiceLabel:   lang.Text{EN: "Courses", SW: "Kozi"},
		BookingLabel:   lang.Text{EN: "Enroll", SW: "Jiandikishe"},
		Section:        "courses",
		CollectInfo:    []string{"course", "schedule", "level", "name", "phone", "email", "education_background"},
		OrderType:      "enrollment",
		OrderTypeLabel: lang.Text{EN: "Enrollment", SW: "Uandikishaji"},
	},
	{
		ID:             Transport,
		Icon:           "🚗",
		Name:           lang.Text{EN: "Transport & Delivery", SW: "Usafiri na Delivery"},
		Description:    lang.Text{EN: "Taxi, car rental, delivery services, logistics", SW: "Taxi, kukodisha gari, delivery, usafiri"},
		DefaultBotName: "Dispatcher",
		ServiceLabel:   lang.Text{EN: "Services", SW: "Huduma"},
		BookingLabel:   lang.Text{EN: "Book", SW: "Buku"},
		Section:        "services",
		CollectInfo:    []string{"service", "pickup", "destination", "date", "time", "name", "phone"},
		OrderType:      "booking",
		OrderTypeLabel: lang.Text{EN: "Ride Booking", SW: "Booking ya Safari"},
	},
	{
		ID:             Events,
		Icon:           "🎉",
		Name:           lang.Text{EN: "Events & Entertainment", SW: "Matukio na Burudani"},
		Description:    lang.Text{EN: "Event planning, DJs, photographers, venues", SW: "Event planning, DJ, picha, venue"},
		DefaultBotName: "Planner",
		ServiceLabel:   lang.Text{EN: "Services", SW: "Huduma"},
		BookingLabel:   lang.Text{EN: "Book", SW: "Buku"},
		Section:        "services",
		CollectInfo:    []string{"service", "event_type", "date", "guests", "location", "budget", "name", "phone"},
		OrderType:      "booking",
		OrderTypeLabel: lang.Text{EN: "Event Booking", SW: "Booking ya Tukio"},
	},
	{
		ID:             Services,
		Icon:           "🔧",
		Name:           lang.Text{EN: "Professional Services", SW: "Huduma za Kitaalamu"},
		Description:    lang.Text{EN: "Plumbers, electricians, mechanics, consultants", SW: "Fundi bomba, umeme, mechanics, washauri"},
		DefaultBotName: "Technician",
		ServiceLabel:   lang.Text{EN: "Services", SW: "Huduma"},
		BookingLabel:   lang.Text{EN: "Request Service", SW: "Omba Huduma"},
		Section:        "services",
		CollectInfo:    []string{"service", "problem", "location", "date", "time", "name", "phone"},
		OrderType:      "request",
		OrderTypeLabel: lang.Text{EN: "Service Request", SW: "Ombi la Huduma"},
	},
	{
		ID:             RealEstate,
		Icon:           "🏠",
		Name:           lang.Text{EN: "Real Estate", SW: "Mali Isiyohamishika"},
		Description:    lang.Text{EN: "Property sales, rentals, property management", SW: "Kuuza nyumba, kupangisha, property management"},
		DefaultBotName: "Agent",
		ServiceLabel:   lang.Text{EN: "Properties", SW: "Mali"},
		BookingLabel:   lang.Text{EN: "View Property", SW: "Angalia Mali"},
		Section:        "properties",
		CollectInfo:    []string{"property_type", "budget", "location", "bedrooms", "purpose", "name", "phone", "email"},
		OrderType:      "inquiry",
		OrderTypeLabel: lang.Text{EN: "Property Inquiry", SW: "Swali la Nyumba"},
	},
	{
		ID:             Other,
		Icon:           "🏢",
		Name:           lang.Text{EN: "Other Business", SW: "Biashara Nyingine"},
		Description:    lang.Text{EN: "Any other type of business", SW: "Aina nyingine yoyote ya biashara"},
		DefaultBotName: "Assistant",
		ServiceLabel:   lang.Text{EN: "Services", SW: "Huduma"},
		BookingLabel:   lang.Text{EN: "Contact", SW: "Wasiliana"},
		Section:        "services",
		CollectInfo:    []string{"request", "details", "name", "phone"},
		OrderType:      "order",
		OrderTypeLabel: lang.Text{EN: "Order", SW: "Order"},
	},
}

var byID = func() map[Type]Category {
	m := make(map[Type]Category, len(categories))
	for _, c := range categories {
		m[c.ID] = c
	}
	return m
}()

// Parse maps a stored business type to a Type, degrading unknown values to Other.
func Parse(s string) Type {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := byID[t]; ok {
		return t
	}
	return Other
}

// Valid reports whether s names a catalog entry.
func Valid(s string) bool {
	_, ok := byID[Type(s)]
	return ok
}

// Get returns the category of t. Unknown types get the Other category.
func Get(t Type) Category {
	if c, ok := byID[t]; ok {
		return c
	}
	return byID[Other]
}

// Category is a shorthand for Get(t).
func (t Type) Category() Category {
	return Get(t)
}

// All returns every category in declaration order.
func All() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Options renders the catalog for a dropdown.
func Options(l lang.Language) []Option {
	opts := make([]Option, 0, len(categories))
	for _, c := range categories {
		opts = append(opts, Option{
			Value:       c.ID,
			Label:       c.Icon + " " + c.Name.In(l),
			Description: c.Description.In(l),
		})
	}
	return opts
}
