// README: Rule-based Intent Classifier (§4.2). Deterministic, regex/table
// driven, never fails. The confidence-gated model fallback lives in
// hybrid.go and only runs when this classifier's confidence is low.
package classifier

import (
	"regexp"
	"strings"

	"ark/internal/normalizer"
	"ark/internal/searchintent"
)

var (
	zipRe          = regexp.MustCompile(`\b\d{5}\b`)
	inAtTailRe     = regexp.MustCompile(`\b(?:in|at)\s+([a-z][a-z\s]{2,30})$`)
	specificDayRe  = regexp.MustCompile(`\b(next\s+)?(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
)

// Classify runs the full rule-based decision tree over a raw query. It
// never returns an error; a query with no discernible signal still
// produces a SearchIntent, just with low confidence.
func Classify(raw string, ctx searchintent.UserContext) searchintent.SearchIntent {
	norm := normalizer.Normalize(raw)
	lower := strings.ToLower(raw)

	timeLabel, weekday := detectTime(lower)
	location := detectLocation(lower, norm.Tokens)

	placeHits := hitSet(norm.Tokens, placeKeywords)
	eventHits := hitSet(norm.Tokens, eventKeywords)

	kind, lowConfidenceBoth := deriveKind(lower, placeHits, eventHits)

	categories := inferCategories(placeHits, eventHits)
	vibes := inferVibeTags(norm.Tokens)

	keywordsPresent := len(placeHits) > 0 || len(eventHits) > 0
	abstractOnly := !keywordsPresent && containsAny(lower, activityPhrases)

	confidence := confidenceScore(confidenceInputs{
		keywordsPresent: keywordsPresent,
		kindIsBoth:      kind == searchintent.KindBoth,
		hasTimeLabel:    timeLabel != searchintent.TimeNone,
		hasLocation:     location.Kind != searchintent.LocationUnknown,
		hasVibe:         len(vibes) > 0,
		hasNonOtherCat:  hasNonOther(categories),
		tokenCount:      len(norm.Tokens),
		abstractOnly:    abstractOnly,
	})
	if lowConfidenceBoth {
		confidence *= 0.5
	}

	keywords := mergeKeys(placeHits, eventHits)

	return searchintent.SearchIntent{
		Kind:       kind,
		Keywords:   keywords,
		VibeTags:   vibes,
		Categories: categories,
		TimeLabel:  timeLabel,
		Weekday:    weekday,
		Location:   location,
		Confidence: confidence,
		Source:     searchintent.SourceRuleBased,
		RawQuery:   raw,
		Normalized: norm.Normalized,
	}
}

func detectTime(lower string) (searchintent.TimeLabel, string) {
	if m := specificDayRe.FindStringSubmatch(lower); m != nil {
		return searchintent.TimeSpecific, m[2]
	}
	switch {
	case strings.Contains(lower, "tonight"):
		return searchintent.TimeTonight, ""
	case strings.Contains(lower, "today"):
		return searchintent.TimeToday, ""
	case strings.Contains(lower, "weekend"):
		return searchintent.TimeWeekend, ""
	case strings.Contains(lower, "now") || strings.Contains(lower, "right now"):
		return searchintent.TimeNow, ""
	}
	return searchintent.TimeNone, ""
}

func detectLocation(lower string, tokens []string) searchintent.LocationHint {
	if m := zipRe.FindString(lower); m != "" {
		return searchintent.LocationHint{Kind: searchintent.LocationZip, Zip: m}
	}
	if containsAny(lower, nearMePhrases) {
		return searchintent.LocationHint{Kind: searchintent.LocationNearMe}
	}
	for alias, city := range cityAliases {
		if containsWord(lower, alias) {
			return searchintent.LocationHint{Kind: searchintent.LocationCity, City: city}
		}
	}
	if m := inAtTailRe.FindStringSubmatch(lower); m != nil {
		tail := strings.TrimSpace(m[1])
		if !matchesAnyKeyword(tail, placeKeywords) && !matchesAnyKeyword(tail, eventKeywords) {
			return searchintent.LocationHint{Kind: searchintent.LocationCity, City: capitalizeWords(tail)}
		}
	}
	return searchintent.LocationHint{Kind: searchintent.LocationUnknown}
}

func hitSet(tokens []string, table map[string][]string) []string {
	seen := map[string]bool{}
	var hits []string
	for canonical, variants := range table {
		for _, tok := range tokens {
			if matchesVariant(tok, variants) {
				if !seen[canonical] {
					seen[canonical] = true
					hits = append(hits, canonical)
				}
				break
			}
		}
	}
	return hits
}

func matchesVariant(tok string, variants []string) bool {
	for _, v := range variants {
		if tok == v {
			return true
		}
	}
	return false
}

func matchesAnyKeyword(phrase string, table map[string][]string) bool {
	for _, variants := range table {
		for _, v := range variants {
			if strings.Contains(phrase, v) {
				return true
			}
		}
	}
	return false
}

func deriveKind(lower string, placeHits, eventHits []string) (searchintent.Kind, bool) {
	switch {
	case len(placeHits) > 0 && len(eventHits) > 0:
		return searchintent.KindBoth, false
	case len(placeHits) > 0:
		return searchintent.KindPlace, false
	case len(eventHits) > 0:
		return searchintent.KindEvent, false
	}
	if containsAny(lower, activityPhrases) || strings.Contains(lower, "social") || strings.Contains(lower, "fun") {
		return searchintent.KindBoth, false
	}
	return searchintent.KindBoth, true
}

func inferCategories(placeHits, eventHits []string) []string {
	seen := map[string]bool{}
	var cats []string
	for _, k := range append(append([]string{}, placeHits...), eventHits...) {
		cat, ok := keywordCategory[k]
		if !ok {
			cat = "other"
		}
		if !seen[cat] {
			seen[cat] = true
			cats = append(cats, cat)
		}
	}
	if len(cats) == 0 {
		cats = []string{"other"}
	}
	return cats
}

func inferVibeTags(tokens []string) []string {
	var tags []string
	for _, tok := range tokens {
		if vibeWords[tok] {
			tags = append(tags, tok)
		}
	}
	return tags
}

func hasNonOther(categories []string) bool {
	for _, c := range categories {
		if c != "other" {
			return true
		}
	}
	return false
}

type confidenceInputs struct {
	keywordsPresent bool
	kindIsBoth      bool
	hasTimeLabel    bool
	hasLocation     bool
	hasVibe         bool
	hasNonOtherCat  bool
	tokenCount      int
	abstractOnly    bool
}

// confidenceScore implements the §4.2 summed, clamped confidence formula.
func confidenceScore(in confidenceInputs) float64 {
	score := 0.2
	if in.keywordsPresent {
		score += 0.25
	}
	if !in.kindIsBoth {
		score += 0.15
	}
	if in.hasTimeLabel {
		score += 0.15
	}
	if in.hasLocation {
		score += 0.15
	}
	if in.hasVibe {
		score += 0.08
	}
	if in.hasNonOtherCat {
		score += 0.07
	}
	switch in.tokenCount {
	case 1:
		score -= 0.25
	case 2:
		score -= 0.10
	}
	if in.abstractOnly {
		score -= 0.08
	}
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score
}

func mergeKeys(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func containsWord(s, word string) bool {
	if !strings.Contains(word, " ") {
		return containsToken(s, word)
	}
	return strings.Contains(s, word)
}

func capitalizeWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func containsToken(s, word string) bool {
	for _, tok := range strings.Fields(s) {
		if strings.Trim(tok, ".,!?'\"") == word {
			return true
		}
	}
	return false
}
