// README: Closed lookup tables for the rule-based intent classifier.
// Canonical keyword -> variants multi-maps, kept as data so the decision
// tree in classifier.go stays readable.
package classifier

// placeKeywords maps a canonical place keyword to its surface variants.
var placeKeywords = map[string][]string{
	"restaurant": {"restaurant", "restaurants", "eatery", "diner"},
	"pizza":      {"pizza", "pizzeria"},
	"sushi":      {"sushi"},
	"brunch":     {"brunch"},
	"coffee":     {"coffee", "cafe", "cafes", "coffeehouse"},
	"bar":        {"bar", "bars", "pub", "pubs", "tavern"},
	"nightclub":  {"nightclub", "nightclubs", "club", "clubs"},
	"museum":     {"museum", "museums", "gallery", "galleries"},
	"park":       {"park", "parks", "garden", "gardens"},
	"gym":        {"gym", "gyms", "fitness"},
	"hiking":     {"hiking", "trail", "trails"},
	"shopping":   {"shopping", "mall", "boutique"},
}

// eventKeywords maps a canonical event keyword to its surface variants.
var eventKeywords = map[string][]string{
	"concert":  {"concert", "concerts", "show", "shows", "gig", "gigs"},
	"festival": {"festival", "festivals", "fest"},
	"karaoke":  {"karaoke"},
	"trivia":   {"trivia"},
	"comedy":   {"comedy", "standup", "stand-up"},
	"market":   {"market", "farmers market", "pop-up", "popup"},
	"theater":  {"theater", "theatre", "play", "plays"},
	"sports":   {"game", "games", "match", "matches"},
}

// keywordCategory maps a canonical place/event keyword to its macro category.
var keywordCategory = map[string]string{
	"restaurant": "food", "pizza": "food", "sushi": "food", "brunch": "food",
	"coffee": "food", "market": "food",
	"bar": "nightlife", "nightclub": "nightlife", "karaoke": "nightlife",
	"concert": "music", "festival": "music",
	"museum": "art", "gallery": "art", "theater": "art", "comedy": "art",
	"park": "outdoor", "hiking": "outdoor",
	"gym": "fitness",
	"trivia": "social", "sports": "social",
}

// vibeWords are mood/atmosphere tokens the normalizer may have surfaced
// (via slang expansion) or that appear directly in the raw query.
var vibeWords = map[string]bool{
	"lively": true, "atmosphere": true, "relaxed": true, "romantic": true,
	"amazing": true, "excellent": true, "ordinary": true, "elaborate": true,
	"reliable": true, "cozy": true, "trendy": true, "quiet": true, "fancy": true,
	"casual": true, "upscale": true, "chill": true,
}

// nearMePhrases are multi-word phrases, checked against the lowercased
// input string (not token-by-token) because they frequently span a
// stopword that normalization drops ("me" in "near me").
var nearMePhrases = []string{
	"near me", "nearby", "close by", "around here", "around me", "close to me",
}

// cityAliases is a small closed table of known city names/nicknames this
// deployment recognizes directly (extend as the service's market grows).
var cityAliases = map[string]string{
	"nyc":           "New York",
	"new york":      "New York",
	"sf":            "San Francisco",
	"san francisco": "San Francisco",
	"la":            "Los Angeles",
	"los angeles":   "Los Angeles",
	"chi":           "Chicago",
	"chicago":       "Chicago",
	"philly":        "Philadelphia",
	"philadelphia":  "Philadelphia",
	"dc":            "Washington",
	"seattle":       "Seattle",
	"austin":        "Austin",
	"boston":        "Boston",
	"denver":        "Denver",
	"portland":      "Portland",
}

var weekdays = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

// activityPhrases signal an abstract "things to do" style query that
// carries no concrete place/event keyword.
var activityPhrases = []string{
	"things to do", "activities", "something to do", "fun things",
}
