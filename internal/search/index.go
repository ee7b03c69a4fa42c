// Package search ranks flashcards against a free-text query.
//
// An index is built once from a deck snapshot and never mutated, so one
// value may serve concurrent lookups. A card's tokens are the case-folded
// words of its front and back; its score is the Jaccard similarity with the
// query tokens, |Q ∩ C| / |Q ∪ C|. Ties keep deck and card order.
package search

import (
	"cmp"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/tbourn/go-study-session/internal/domain"
)

// Result is a ranked card with its similarity score.
type Result struct {
	DeckID   string  `json:"deck_id"`
	DeckName string  `json:"deck_name"`
	CardID   string  `json:"card_id"`
	Front    string  `json:"front"`
	Back     string  `json:"back"`
	Score    float64 `json:"score"`
}

// Index is the minimal interface implemented by card indices.
type Index interface {
	TopK(query string, k int) []Result
}

// Option tunes NewCardIndex.
type Option func(*config)

type config struct {
	stopwords   tokenSet
	skipBacks   map[string]struct{}
	maxDocs     int
	defaultTopK int
}

func defaultConfig() config {
	return config{defaultTopK: 5}
}

// WithStopwords drops the given words from both card and query tokens.
func WithStopwords(words []string) Option {
	return func(c *config) {
		m := make(tokenSet, len(words))
		for _, w := range words {
			w = fold(strings.TrimSpace(w))
			if w != "" {
				m[w] = struct{}{}
			}
		}
		if len(m) > 0 {
			c.stopwords = m
		}
	}
}

// WithoutBackText excludes the given back-side texts from tokenization.
// Generated cards all share one generic back, which would otherwise match
// every query containing its words.
func WithoutBackText(backs ...string) Option {
	return func(c *config) {
		if len(backs) == 0 {
			return
		}
		if c.skipBacks == nil {
			c.skipBacks = make(map[string]struct{}, len(backs))
		}
		for _, b := range backs {
			c.skipBacks[b] = struct{}{}
		}
	}
}

// WithMaxDocs caps the number of indexed cards.
func WithMaxDocs(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxDocs = n
		}
	}
}

type tokenSet map[string]struct{}

// doc is one indexed card; docs are kept in deck then card order.
type doc struct {
	res    Result
	tokens tokenSet
}

type index struct {
	cfg  config
	docs []doc
}

// NewCardIndex indexes every card of decks, in deck then card order.
func NewCardIndex(decks []domain.Deck, opts ...Option) Index {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	docs := make([]doc, 0)
	for _, d := range decks {
		for _, c := range d.Cards {
			if cfg.maxDocs > 0 && len(docs) >= cfg.maxDocs {
				return &index{cfg: cfg, docs: docs}
			}
			text := c.Front
			if _, skip := cfg.skipBacks[c.Back]; !skip {
				text += " " + c.Back
			}
			toks := tokenize(text, cfg.stopwords)
			if len(toks) == 0 {
				continue
			}
			docs = append(docs, doc{
				res: Result{
					DeckID:   d.ID,
					DeckName: d.Name,
					CardID:   c.ID,
					Front:    c.Front,
					Back:     c.Back,
				},
				tokens: toks,
			})
		}
	}
	return &index{cfg: cfg, docs: docs}
}

// TopK returns up to k best-matching cards. k <= 0 uses the default of 5.
// Ties keep deck and card order.
func (i *index) TopK(q string, k int) []Result {
	if len(i.docs) == 0 || strings.TrimSpace(q) == "" {
		return nil
	}
	if k <= 0 {
		k = i.cfg.defaultTopK
	}
	qTokens := tokenize(q, i.cfg.stopwords)
	if len(qTokens) == 0 {
		return nil
	}

	var hits []Result
	for _, d := range i.docs {
		shared := overlap(qTokens, d.tokens)
		if shared == 0 {
			continue
		}
		r := d.res
		r.Score = float64(shared) / float64(len(qTokens)+len(d.tokens)-shared)
		hits = append(hits, r)
	}
	// Stable, so equal scores stay in index order.
	slices.SortStableFunc(hits, func(a, b Result) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits
}

var wordRE = regexp.MustCompile(`\p{L}+\p{N}*|\p{N}+`)

// fold applies Unicode case folding (e.g. "Straße" and "STRASSE" match).
func fold(s string) string {
	return cases.Fold().String(s)
}

func tokenize(s string, stop tokenSet) tokenSet {
	var out tokenSet
	for _, w := range wordRE.FindAllString(fold(s), -1) {
		if _, skip := stop[w]; skip {
			continue
		}
		if out == nil {
			out = make(tokenSet)
		}
		out[w] = struct{}{}
	}
	return out
}

// overlap counts the words a and b share.
func overlap(a, b tokenSet) int {
	if len(a) > len(b) {
		a, b = b, a
	}
	n := 0
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}
