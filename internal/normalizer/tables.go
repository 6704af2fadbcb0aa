// README: Closed lookup tables for the query normalizer. Kept as data, not
// logic, so the algorithm in normalizer.go stays readable; mirrors ark's
// style of separating a service's SQL/prompt text from its control flow
// (see ai/gemini.go's buildSystemPrompt vs ParseUserIntent).
package normalizer

// emojiTerms maps a recognized emoji to its associated keyword(s).
var emojiTerms = map[string]string{
	"🍕": "pizza",
	"🍺": "beer",
	"🍻": "beer",
	"🍷": "wine",
	"🍸": "cocktail",
	"🍹": "cocktail",
	"☕": "coffee",
	"🎵": "music",
	"🎶": "music",
	"🎸": "music",
	"🎤": "karaoke",
	"💃": "dancing",
	"🕺": "dancing",
	"🍣": "sushi",
	"🍔": "burger",
	"🌮": "tacos",
	"🍝": "pasta",
	"🏋️": "gym",
	"🏃": "running",
	"🚶": "walking",
	"🎨": "art",
	"🖼️": "art",
	"🏛️": "museum",
	"🌳": "park",
	"🌲": "outdoor",
	"⛰️": "hiking",
	"👥": "social",
	"❤️": "romantic",
	"💕": "romantic",
	"🔥": "lively",
	"✨": "lively",
}

// abbreviations expands short informal spellings to their full word.
var abbreviations = map[string]string{
	"tn":     "tonight",
	"tmrw":   "tomorrow",
	"wknd":   "weekend",
	"bf":     "boyfriend",
	"gf":     "girlfriend",
	"rn":     "right now",
	"asap":   "now",
	"w/":     "with",
	"pls":    "please",
	"bday":   "birthday",
	"res":    "reservation",
	"nbhd":   "neighborhood",
}

// slang maps youth/colloquial terms to a neutral equivalent.
var slang = map[string]string{
	"lit":     "lively",
	"fire":    "amazing",
	"vibe":    "atmosphere",
	"vibes":   "atmosphere",
	"bomb":    "excellent",
	"dope":    "excellent",
	"chill":   "relaxed",
	"bussin":  "delicious",
	"basic":   "ordinary",
	"extra":   "elaborate",
	"solid":   "reliable",
}

// typoFixes maps a small set of common misspellings to the correct word.
var typoFixes = map[string]string{
	"restaraunt":  "restaurant",
	"restaurnat":  "restaurant",
	"resturant":   "restaurant",
	"definately":  "definitely",
	"tonite":      "tonight",
	"wierd":       "weird",
	"recieve":     "receive",
	"seperate":    "separate",
	"cafe's":      "cafes",
	"brunchh":     "brunch",
}

// temporalMarkers are stopword-list tokens that must survive stopword
// removal because the entity extractor and intent classifier depend on
// them.
var temporalMarkers = map[string]bool{
	"tonight":   true,
	"today":     true,
	"tomorrow":  true,
	"weekend":   true,
	"monday":    true,
	"tuesday":   true,
	"wednesday": true,
	"thursday":  true,
	"friday":    true,
	"saturday":  true,
	"sunday":    true,
}

// locationMarkers are stopword-list tokens that must survive stopword
// removal because they carry location specificity.
var locationMarkers = map[string]bool{
	"near":   true,
	"in":     true,
	"at":     true,
	"nearby": true,
	"around": true,
}

// stopwords is the drop set, excluding anything in temporalMarkers or
// locationMarkers (checked at call time, not baked in here).
var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "is": true, "are": true, "was": true,
	"were": true, "be": true, "been": true, "being": true, "to": true,
	"of": true, "for": true, "and": true, "or": true, "but": true,
	"with": true, "that": true, "this": true, "these": true, "those": true,
	"it": true, "its": true, "i": true, "me": true, "my": true, "we": true,
	"our": true, "you": true, "your": true, "some": true, "any": true,
	"do": true, "does": true, "did": true, "can": true, "could": true,
	"would": true, "should": true, "will": true, "just": true, "really": true,
}

// categoryWords is the small fixed set the Levenshtein fuzzy-match step
// (§4.1 step 7) substitutes toward.
var categoryWords = []string{
	"restaurant", "bar", "cafe", "museum", "gym", "park", "concert",
	"pizza", "coffee", "sushi", "brunch", "music", "nightclub",
}
