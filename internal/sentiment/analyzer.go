package sentiment

import (
	"math"
	"strings"
	"unicode"

	"CryptoAnalyst/internal/model"
)

const (
	PositiveThreshold = 0.1
	NegativeThreshold = -0.1

	negationFactor = -0.5
	negationReach  = 3
)

// Polarity scores text in [-1, 1] as the mean polarity of the lexicon words it contains.
// Text with no known words scores 0.
func Polarity(text string) float64 {
	tokens := tokenize(text)

	var sum float64
	var scored int
	for i, tok := range tokens {
		p, ok := lexicon[tok]
		if !ok {
			continue
		}
		if i > 0 {
			if f, ok := intensifiers[tokens[i-1]]; ok {
				p = clamp(p * f)
			}
		}
		if negated(tokens, i) {
			p *= negationFactor
		}
		sum += p
		scored++
	}
	if scored == 0 {
		return 0
	}
	return clamp(sum / float64(scored))
}

// Label maps a polarity to Positive, Negative or Neutral.
func Label(polarity float64) string {
	switch {
	case polarity > PositiveThreshold:
		return model.SentimentPositive
	case polarity < NegativeThreshold:
		return model.SentimentNegative
	default:
		return model.SentimentNeutral
	}
}

// Analyze returns the label and polarity for text.
func Analyze(text string) (string, float64) {
	p := Polarity(text)
	return Label(p), p
}

// Score attaches sentiment to each article.
func Score(articles []model.Article) []model.NewsItem {
	items := make([]model.NewsItem, 0, len(articles))
	for _, a := range articles {
		label, polarity := Analyze(a.Title)
		items = append(items, model.NewsItem{
			Title:     a.Title,
			Link:      a.Link,
			PubDate:   a.PubDate,
			Sentiment: label,
			Polarity:  polarity,
		})
	}
	return items
}

func negated(tokens []string, i int) bool {
	for j := i - 1; j >= 0 && j >= i-negationReach; j-- {
		if negations[tokens[j]] || strings.HasSuffix(tokens[j], "n't") {
			return true
		}
	}
	return false
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\'' && r != '’' && r != '-'
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.ReplaceAll(f, "’", "'")
		f = strings.Trim(f, "'-")
		f = strings.TrimSuffix(f, "'s")
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func clamp(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
