package catalog

import "github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/lang"

// Instructions returns the assistant role block for the category.
func (t Type) Instructions() string {
	switch t {
	case Tourism:
		return `
TOUR BOOKING ASSISTANT ROLE:
- Help customers discover and book amazing tours
- Provide accurate pricing based on PAX (number of people) and pickup location
- Describe tours enthusiastically with highlights
- Explain what's included and excluded
- Help with scheduling and logistics
- Confirm all booking details before finalizing

PRICING RULES:
- Always give exact prices from the data
- Mention that prices may vary by group size
- Town pickup is usually cheaper than pickups further out
- Quote in the business currency`
	case Hotel:
		return `
HOTEL RECEPTIONIST ROLE:
- Help guests find the perfect room
- Provide room rates and availability
- Describe amenities and facilities
- Explain hotel policies clearly
- Help with reservations
- Answer questions about the area

BOOKING RULES:
- Confirm check-in and check-out dates
- Clarify number of guests
- Mention room types and rates
- Explain cancellation policy`
	case Restaurant:
		return `
RESTAURANT ASSISTANT ROLE:
- Help customers with the menu
- Take orders for delivery or dine-in
- Recommend dishes based on preferences
- Explain ingredients for dietary needs
- Handle delivery logistics

ORDER RULES:
- Confirm each item ordered
- Calculate total with delivery fee if applicable
- Get delivery address for deliveries
- Confirm payment method`
	case Salon:
		return `
SALON ASSISTANT ROLE:
- Help clients book appointments
- Explain services and prices
- Recommend services based on needs
- Match clients with stylists

BOOKING RULES:
- Confirm service type
- Check stylist availability
- Book specific date and time
- Get contact information`
	case Retail:
		return `
SALES ASSISTANT ROLE:
- Help customers find products
- Provide product information and prices
- Check stock availability
- Handle delivery arrangements

ORDER RULES:
- Confirm products and quantities
- Calculate totals
- Get delivery address
- Explain payment options`
	case Healthcare:
		return `
MEDICAL RECEPTIONIST ROLE:
- Help patients book appointments
- Explain available services
- Match patients with appropriate doctors
- Answer general health service questions
- Note: Do NOT give medical advice

BOOKING RULES:
- Understand patient needs
- Book with appropriate specialist
- Confirm date and time
- Ask about insurance if applicable`
	case Fitness:
		return `
FITNESS CENTER ASSISTANT ROLE:
- Help people join the gym
- Explain membership options
- Describe programs and classes
- Match clients with trainers

MEMBERSHIP RULES:
- Explain all membership tiers
- Clarify what's included
- Get fitness goals
- Book trial sessions`
	case Education:
		return `
EDUCATION ADVISOR ROLE:
- Help students find courses
- Explain programs and schedules
- Provide fee information
- Answer questions about requirements

ENROLLMENT RULES:
- Understand student goals
- Recommend appropriate courses
- Explain schedules and fees
- Process registration`
	case Transport:
		return `
TRANSPORT DISPATCHER ROLE:
- Help customers book rides
- Provide pricing for routes
- Arrange pickups
- Give estimated times

BOOKING RULES:
- Get pickup and destination
- Confirm date and time
- Provide price quote
- Get contact details`
	case Events:
		return `
EVENT PLANNER ASSISTANT ROLE:
- Help clients plan events
- Explain service packages
- Provide pricing and options
- Coordinate details

BOOKING RULES:
- Understand event type
- Get date and guest count
- Discuss budget
- Explain package options`
	case Services:
		return `
SERVICE PROVIDER ASSISTANT ROLE:
- Help customers request services
- Explain what services are offered
- Provide pricing
- Schedule service calls

BOOKING RULES:
- Understand the problem or need
- Schedule appointment
- Get location details
- Confirm pricing`
	case RealEstate:
		return `
REAL ESTATE AGENT ROLE:
- Help clients find properties
- Explain available listings
- Arrange viewings
- Answer property questions

VIEWING RULES:
- Understand client needs
- Match with suitable properties
- Schedule viewings
- Get client contact details`
	case Other:
		return `
BUSINESS ASSISTANT ROLE:
- Help customers with inquiries
- Provide business information
- Direct complex issues to staff

SERVICE RULES:
- Understand customer needs
- Provide accurate information
- Collect necessary details`
	}
	return Other.Instructions()
}

var fieldLabels = map[string]lang.Text{
	"tour":                 {EN: "Which tour they want", SW: "Safari wanayoitaka"},
	"date":                 {EN: "Date", SW: "Tarehe"},
	"time":                 {EN: "Time", SW: "Wakati"},
	"pax":                  {EN: "Number of people", SW: "Watu wangapi"},
	"pickup_location":      {EN: "Pickup location", SW: "Mahali pa kuchukua"},
	"hotel":                {EN: "Their hotel/accommodation", SW: "Hoteli wanafikia"},
	"name":                 {EN: "Customer name", SW: "Jina lao"},
	"phone":                {EN: "Phone number", SW: "Namba ya simu"},
	"email":                {EN: "Email address", SW: "Email"},
	"room_type":            {EN: "Room type", SW: "Aina ya chumba"},
	"check_in":             {EN: "Check-in date", SW: "Tarehe ya kuingia"},
	"check_out":            {EN: "Check-out date", SW: "Tarehe ya kutoka"},
	"guests":               {EN: "Number of guests", SW: "Wageni wangapi"},
	"items":                {EN: "Items to order", SW: "Vitu vya kuagiza"},
	"delivery_address":     {EN: "Delivery address", SW: "Mahali pa kupeleka"},
	"payment_method":       {EN: "Payment method", SW: "Jinsi ya kulipa"},
	"payment":              {EN: "Payment method", SW: "Jinsi ya kulipa"},
	"service":              {EN: "Service requested", SW: "Huduma wanayoitaka"},
	"stylist":              {EN: "Preferred stylist", SW: "Mtaalamu wanayemtaka"},
	"products":             {EN: "Products wanted", SW: "Bidhaa wanazoitaka"},
	"quantity":             {EN: "Quantity", SW: "Kiasi"},
	"doctor":               {EN: "Doctor preference", SW: "Daktari"},
	"symptoms":             {EN: "Symptoms/reason for visit", SW: "Dalili"},
	"insurance":            {EN: "Insurance", SW: "Bima"},
	"program":              {EN: "Program/class", SW: "Programu"},
	"membership_type":      {EN: "Membership type", SW: "Aina ya uanachama"},
	"start_date":           {EN: "Start date", SW: "Tarehe ya kuanza"},
	"fitness_goals":        {EN: "Fitness goals", SW: "Malengo ya fitness"},
	"course":               {EN: "Course", SW: "Kozi"},
	"schedule":             {EN: "Schedule preference", SW: "Ratiba"},
	"level":                {EN: "Current level", SW: "Kiwango"},
	"education_background": {EN: "Education background", SW: "Historia ya elimu"},
	"pickup":               {EN: "Pickup location", SW: "Mahali pa kuchukua"},
	"destination":          {EN: "Destination", SW: "Unaenda wapi"},
	"event_type":           {EN: "Event type", SW: "Aina ya tukio"},
	"location":             {EN: "Location", SW: "Mahali"},
	"budget":               {EN: "Budget", SW: "Bajeti"},
	"problem":              {EN: "Problem/issue", SW: "Tatizo"},
	"property_type":        {EN: "Property type", SW: "Aina ya mali"},
	"bedrooms":             {EN: "Number of bedrooms", SW: "Vyumba vya kulala"},
	"purpose":              {EN: "Buy or rent", SW: "Kununua au kupanga"},
	"request":              {EN: "Request", SW: "Ombi"},
	"details":              {EN: "Details", SW: "Maelezo"},
}

// FieldLabel returns a human label for a collected field name.
func FieldLabel(field string, l lang.Language) string {
	if t, ok := fieldLabels[field]; ok {
		return t.In(l)
	}
	return field
}
