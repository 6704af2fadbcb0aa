// README: Query Normalizer (§4.1). Canonicalizes raw free text into a token
// list plus applied-transformation metadata. Deterministic, locale-
// independent, never fails.
package normalizer

import (
	"strings"
	"unicode"
)

// Result is the full normalizer output (§4.1 contract).
type Result struct {
	Original         string
	Normalized       string
	Tokens           []string
	RemovedStopwords []string
	DetectedEmoji    map[string]string
	AppliedSlang     map[string]string
}

// Options tunes which optional §4.1 steps run, letting callers roll a
// sub-stage back (§6.5 flags EMOJI_SLANG, SEMANTIC_EXPANSION) without
// bypassing normalization entirely.
type Options struct {
	// SkipEmojiSlang disables emoji-to-term substitution and the slang
	// dictionary (abbreviation expansion and typo fixes still run).
	SkipEmojiSlang bool
	// SkipSemanticExpansion disables the bounded-Levenshtein match
	// toward canonical category words (step 7).
	SkipSemanticExpansion bool
}

// Normalize runs the full §4.1 pipeline with every optional step enabled.
// Never fails: an empty or non-meaningful input yields an empty Result.
func Normalize(raw string) Result {
	return NormalizeWithOptions(raw, Options{})
}

// NormalizeWithOptions runs the §4.1 pipeline, skipping whichever optional
// steps opts disables.
func NormalizeWithOptions(raw string, opts Options) Result {
	res := Result{
		Original:      raw,
		DetectedEmoji: map[string]string{},
		AppliedSlang:  map[string]string{},
	}
	if raw == "" {
		return res
	}

	// Step 1: emoji -> term.
	withEmoji := raw
	if !opts.SkipEmojiSlang {
		withEmoji = replaceEmoji(raw, res.DetectedEmoji)
	}

	// Step 2: lowercase, straighten quotes, strip punctuation (keep hyphen/apostrophe), collapse ws.
	cleaned := basicClean(withEmoji)

	// Tokenize early so steps 3-4 are whole-word matches.
	rawTokens := strings.Fields(cleaned)

	// Step 3: abbreviations + slang, whole-word.
	expanded := make([]string, 0, len(rawTokens))
	for _, tok := range rawTokens {
		if v, ok := abbreviations[tok]; ok {
			expanded = append(expanded, strings.Fields(v)...)
			continue
		}
		if !opts.SkipEmojiSlang {
			if v, ok := slang[tok]; ok {
				res.AppliedSlang[tok] = v
				expanded = append(expanded, v)
				continue
			}
		}
		expanded = append(expanded, tok)
	}

	// Step 4: typo fixes.
	for i, tok := range expanded {
		if fix, ok := typoFixes[tok]; ok {
			expanded[i] = fix
		}
	}

	// Step 5 already done (tokenized above); step 6: drop stopwords but
	// preserve temporal/location markers.
	final := make([]string, 0, len(expanded))
	for _, tok := range expanded {
		if tok == "" {
			continue
		}
		if stopwords[tok] && !temporalMarkers[tok] && !locationMarkers[tok] {
			res.RemovedStopwords = append(res.RemovedStopwords, tok)
			continue
		}
		final = append(final, tok)
	}

	// Step 7: bounded Levenshtein match toward canonical category words for
	// tokens of length >= 3. Temporal/location markers and emoji-derived
	// terms are left as they are.
	if !opts.SkipSemanticExpansion {
		emojiWords := make(map[string]bool, len(emojiTerms))
		for _, term := range emojiTerms {
			emojiWords[term] = true
		}
		for i, tok := range final {
			if len(tok) < 3 || temporalMarkers[tok] || locationMarkers[tok] || emojiWords[tok] {
				continue
			}
			if match, ok := nearestCategoryWord(tok); ok {
				final[i] = match
			}
		}
	}

	res.Tokens = final
	res.Normalized = strings.Join(final, " ")
	return res
}

func replaceEmoji(s string, detected map[string]string) string {
	var b strings.Builder
	for _, r := range s {
		e := string(r)
		if term, ok := emojiTerms[e]; ok {
			detected[e] = term
			b.WriteString(" ")
			b.WriteString(term)
			b.WriteString(" ")
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func basicClean(s string) string {
	s = strings.ToLower(s)
	s = straightenQuotes(s)

	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '-' || r == '\'':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func straightenQuotes(s string) string {
	replacer := strings.NewReplacer(
		"‘", "'", "’", "'",
		"“", "\"", "”", "\"",
	)
	return replacer.Replace(s)
}

// nearestCategoryWord applies a bounded Levenshtein match (distance <= 2)
// against the small fixed categoryWords set.
func nearestCategoryWord(tok string) (string, bool) {
	if contains(categoryWords, tok) {
		return tok, true
	}
	best := ""
	bestDist := 3 // distance must be <= 2 to qualify
	for _, w := range categoryWords {
		d := levenshtein(tok, w)
		if d < bestDist {
			bestDist = d
			best = w
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}

func contains(xs []string, v string) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

// levenshtein computes edit distance between two strings.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			curr[j] = min3(del, ins, sub)
		}
		prev, curr = curr, prev
	}
	return prev[lb]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
