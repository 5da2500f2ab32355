package knowledge

import (
	"sort"
	"strings"
)

// Scoring weights. A token scores per keyword it appears in, once for the
// label field (weighted by kind), and once for the summary.
const (
	keywordWeight = 10
	summaryWeight = 5

	minTokenLength = 2
)

// labelWeights gives each kind's primary field its match weight.
var labelWeights = map[Kind]int{
	KindPerson: 20,
	KindAction: 18,
	KindProof:  16,
	KindTopic:  15,
	KindPage:   14,
	KindBlog:   13,
	KindSocial: 12,
}

// Ranked pairs an item with its relevance score.
type Ranked struct {
	Item  Item `json:"item"`
	Score int  `json:"score"`
}

// Rank orders items by descending keyword relevance to query. Ties keep
// their input order, so an empty or too-short query returns the items
// unchanged with zero scores.
func Rank(query string, items []Item) []Ranked {
	tokens := tokenize(query)

	ranked := make([]Ranked, len(items))
	for i, item := range items {
		ranked[i] = Ranked{Item: item, Score: score(tokens, item)}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// tokenize splits the query on whitespace and drops tokens shorter than
// minTokenLength runes.
func tokenize(query string) []string {
	var tokens []string
	for _, tok := range strings.Fields(query) {
		if len([]rune(tok)) < minTokenLength {
			continue
		}
		tokens = append(tokens, strings.ToLower(tok))
	}
	return tokens
}

func score(tokens []string, item Item) int {
	if len(tokens) == 0 {
		return 0
	}

	label := strings.ToLower(item.Label)
	summary := strings.ToLower(item.Summary)

	labelWeight, ok := labelWeights[item.Kind]
	if !ok {
		labelWeight = labelWeights[KindPage]
	}

	total := 0
	for _, tok := range tokens {
		for _, kw := range item.Keywords {
			if strings.Contains(strings.ToLower(kw), tok) {
				total += keywordWeight
			}
		}
		if strings.Contains(label, tok) {
			total += labelWeight
		}
		if summary != "" && strings.Contains(summary, tok) {
			total += summaryWeight
		}
	}
	return total
}
