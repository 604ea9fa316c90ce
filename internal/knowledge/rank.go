package knowledge

import "strings"

// stopwords excluded from overlap scoring; they match everything and
// carry no triage signal.
var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "is": true, "are": true, "and": true,
	"or": true, "my": true, "in": true, "on": true, "at": true, "to": true,
	"of": true, "it": true, "its": true, "was": true, "be": true, "i": true,
}

// tokenize lowercases the text and returns its distinct non-stopword
// terms.
func tokenize(text string) map[string]bool {
	tokens := make(map[string]bool)
	for _, f := range strings.Fields(strings.ToLower(text)) {
		f = strings.Trim(f, ".,!?;:'\"()")
		if f == "" || stopwords[f] {
			continue
		}
		tokens[f] = true
	}
	return tokens
}

// overlapScore is the share of query tokens present in the candidate,
// in [0,1]. Zero when either side is empty.
func overlapScore(query, candidate map[string]bool) float64 {
	if len(query) == 0 || len(candidate) == 0 {
		return 0
	}
	shared := 0
	for t := range query {
		if candidate[t] {
			shared++
		}
	}
	return float64(shared) / float64(len(query))
}
