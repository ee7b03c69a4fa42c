// Package notes turns free-form study notes into draft flashcards.
//
// The heuristic is deliberately naive: the text is split on periods and
// newlines (runs of either count as one split point), each piece is trimmed,
// pieces of MinSegmentRunes characters or fewer are dropped, and the first
// MaxDrafts survivors become card fronts. Every back gets GenericBack.
// There is no deduplication, scoring, or language detection.
package notes

import (
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/tbourn/go-study-session/internal/domain"
)

const (
	// MinSegmentRunes is the length a trimmed segment must exceed to be kept.
	// Length is counted in Unicode code points, so characters outside the
	// Basic Multilingual Plane (emoji) count once.
	MinSegmentRunes = 10
	// MaxDrafts caps the number of drafts produced per call.
	MaxDrafts = 8
	// GenericBack is the back side of every generated card.
	GenericBack = "Explain this concept in your own words and list 2–3 key points you want to remember."
)

// terminatorRE matches one or more consecutive sentence terminators.
var terminatorRE = regexp.MustCompile(`[.\n]+`)

// Segment returns the draft cards for text, in original order. The result
// is empty (never nil) when text is blank or no segment qualifies.
func Segment(text string) []domain.CardDraft {
	out := []domain.CardDraft{}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return out
	}
	for _, part := range terminatorRE.Split(trimmed, -1) {
		s := strings.TrimSpace(part)
		if utf8.RuneCountInString(s) <= MinSegmentRunes {
			continue
		}
		out = append(out, domain.CardDraft{Front: s, Back: GenericBack})
		if len(out) == MaxDrafts {
			break
		}
	}
	return out
}

// SegmentReader reads r to EOF and segments its content.
func SegmentReader(r io.Reader) ([]domain.CardDraft, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Segment(string(b)), nil
}
