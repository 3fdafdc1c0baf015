package lang

// Intent is the coarse meaning of a free-text message, used to pick a
// canned reply when no AI answer is available.
type Intent string

const (
	IntentGreeting Intent = "greeting"
	IntentPrice    Intent = "price"
	IntentBooking  Intent = "booking"
	IntentInfo     Intent = "info"
	IntentServices Intent = "services"
	IntentLocation Intent = "location"
	IntentHours    Intent = "hours"
	IntentHelp     Intent = "help"
	IntentThanks   Intent = "thanks"
	IntentBye      Intent = "bye"
	IntentGeneral  Intent = "general"
)

var greetings = []string{
	// sw
	"habari", "mambo", "jambo", "salama", "shikamoo", "vipi", "sasa", "niaje", "za leo", "hujambo",
	// en
	"hello", "hi", "hey", "good morning", "good afternoon", "good evening", "howdy", "greetings",
}

type intentKeywords struct {
	intent   Intent
	keywords []string
}

// checked in this order after greetings. A trailing "*" matches any word
// starting with the stem ("book*" matches booking, booked).
var intentTable = []intentKeywords{
	{IntentPrice, []string{"bei", "pric*", "cost*", "how much", "kiasi gani", "gharama", "rate", "rates", "fee", "fees"}},
	{IntentBooking, []string{"book*", "reserv*", "order*", "agiz*", "buku", "nataka", "ninahitaji", "need", "want*"}},
	{IntentInfo, []string{"what", "nini", "tell me", "niambie", "explain*", "eleza", "how", "vipi", "jinsi"}},
	{IntentServices, []string{"servic*", "huduma", "menu", "product*", "bidhaa", "offer*", "available"}},
	{IntentLocation, []string{"where", "wapi", "locat*", "mahali", "address*", "anwani", "find"}},
	{IntentHours, []string{"hours", "open*", "clos*", "saa", "wakati", "time", "when", "lini"}},
	{IntentHelp, []string{"help*", "msaada", "assist*", "support*", "question*"}},
	{IntentThanks, []string{"thank*", "asante", "shukrani"}},
	{IntentBye, []string{"bye", "goodbye", "kwaheri", "tutaonana", "later"}},
}

// DetectIntent classifies text. Greetings win over everything else, then the
// buckets are tried in a fixed priority order.
func DetectIntent(text string) Intent {
	if containsAny(text, greetings) {
		return IntentGreeting
	}
	for _, it := range intentTable {
		if containsAny(text, it.keywords) {
			return it.intent
		}
	}
	return IntentGeneral
}
