// Package services – SessionService
//
// This file implements SessionService, the single entry point a presentation
// layer uses for the study session. It normalizes input (trim, empty-check)
// before delegating to the state store, and derives the summary metrics from
// current state on every read.
//
// Malformed input is not an error: mutations report changed=false and leave
// state untouched, so callers can re-render from the unchanged aggregate.
//
// Observability: all public methods are OpenTelemetry-instrumented.
package services

import (
	"context"
	"math"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-study-session/internal/domain"
	"github.com/tbourn/go-study-session/internal/notes"
	"github.com/tbourn/go-study-session/internal/search"
)

// StateStore is the contract SessionService needs from the domain state
// store. *store.Store satisfies it.
type StateStore interface {
	Revision() uint64
	ResetConversation()
	AppendUserTurn(text string) bool
	GeneratePlan()
	AdvanceTaskStatus(id string) bool
	CreateDeck(name string) (domain.Deck, bool)
	AddCard(deckID, front, back string) (domain.Flashcard, bool)
	AddCards(deckID string, drafts []domain.CardDraft) int

	Messages() []domain.Message
	Tasks() []domain.PlanTask
	Decks() []domain.Deck
	Deck(id string) (domain.Deck, bool)
	Snapshot() domain.Snapshot
}

// SessionService composes the conversation, plan and deck aggregates.
type SessionService struct {
	// Store holds the aggregates.
	Store StateStore

	// DefaultPageSize applies to Messages when pageSize <= 0.
	DefaultPageSize int
	// MaxPageSize caps pageSize for Messages.
	MaxPageSize int
	// SearchLimit is the default number of SearchCards results.
	SearchLimit int
	// SearchStopwords are ignored in queries and card text.
	SearchStopwords []string
	// SearchMaxDocs caps how many cards SearchCards ranks; 0 means all.
	SearchMaxDocs int
}

// DefaultSearchStopwords are English filler words that would otherwise make
// unrelated cards match.
var DefaultSearchStopwords = []string{
	"a", "an", "and", "are", "in", "is", "it", "of", "on", "or", "the", "to", "what",
}

// NewSessionService constructs a SessionService with default paging limits.
func NewSessionService(st StateStore) *SessionService {
	return &SessionService{
		Store:           st,
		DefaultPageSize: 50,
		MaxPageSize:     200,
		SearchLimit:     5,
		SearchStopwords: DefaultSearchStopwords,
		SearchMaxDocs:   10000,
	}
}

func (s *SessionService) span(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tr := otel.Tracer("services/SessionService")
	return tr.Start(ctx, name, trace.WithAttributes(attrs...))
}

// NewSession replaces the conversation with the new-session greeting and
// returns it.
func (s *SessionService) NewSession(ctx context.Context) []domain.Message {
	_, span := s.span(ctx, "NewSession")
	defer span.End()

	s.Store.ResetConversation()
	return s.Store.Messages()
}

// SendMessage appends the trimmed text as a user turn plus the tutor reply.
// Text that trims to empty changes nothing.
func (s *SessionService) SendMessage(ctx context.Context, text string) ([]domain.Message, bool) {
	_, span := s.span(ctx, "SendMessage")
	defer span.End()

	text = strings.TrimSpace(text)
	changed := text != "" && s.Store.AppendUserTurn(text)
	span.SetAttributes(attribute.Bool("changed", changed))
	return s.Store.Messages(), changed
}

// GeneratePlan replaces the plan with today's template.
func (s *SessionService) GeneratePlan(ctx context.Context) []domain.PlanTask {
	_, span := s.span(ctx, "GeneratePlan")
	defer span.End()

	s.Store.GeneratePlan()
	return s.Store.Tasks()
}

// AdvanceTask moves the task to its next status. Unknown ids change nothing.
func (s *SessionService) AdvanceTask(ctx context.Context, id string) ([]domain.PlanTask, bool) {
	_, span := s.span(ctx, "AdvanceTask", attribute.String("task.id", id))
	defer span.End()

	id = strings.TrimSpace(id)
	changed := id != "" && s.Store.AdvanceTaskStatus(id)
	span.SetAttributes(attribute.Bool("changed", changed))
	return s.Store.Tasks(), changed
}

// CreateDeck creates an empty deck named by the trimmed name.
func (s *SessionService) CreateDeck(ctx context.Context, name string) (domain.Deck, bool) {
	_, span := s.span(ctx, "CreateDeck")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Deck{}, false
	}
	d, ok := s.Store.CreateDeck(name)
	if ok {
		span.SetAttributes(attribute.String("deck.id", d.ID))
	}
	return d, ok
}

// AddCard appends a card with trimmed sides to deckID.
func (s *SessionService) AddCard(ctx context.Context, deckID, front, back string) (domain.Flashcard, bool) {
	_, span := s.span(ctx, "AddCard", attribute.String("deck.id", deckID))
	defer span.End()

	front, back = strings.TrimSpace(front), strings.TrimSpace(back)
	if front == "" || back == "" {
		return domain.Flashcard{}, false
	}
	return s.Store.AddCard(deckID, front, back)
}

// ImportNotes segments text into draft cards and appends all of them to
// deckID in one mutation. It returns the number of cards added; zero means
// nothing changed (blank notes, no qualifying sentence, or unknown deck).
func (s *SessionService) ImportNotes(ctx context.Context, deckID, text string) int {
	_, span := s.span(ctx, "ImportNotes", attribute.String("deck.id", deckID))
	defer span.End()

	drafts := notes.Segment(text)
	span.SetAttributes(attribute.Int("drafts", len(drafts)))
	if len(drafts) == 0 {
		return 0
	}
	n := s.Store.AddCards(deckID, drafts)
	span.SetAttributes(attribute.Int("cards.added", n))
	if n > 0 {
		cardsImported.Add(float64(n))
	}
	return n
}

// Messages returns one page of the conversation in chronological order and
// the total message count. page is 1-based.
func (s *SessionService) Messages(ctx context.Context, page, pageSize int) ([]domain.Message, int) {
	_, span := s.span(ctx, "Messages",
		attribute.Int("page", page),
		attribute.Int("page_size", pageSize),
	)
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = s.DefaultPageSize
	}
	if s.MaxPageSize > 0 && pageSize > s.MaxPageSize {
		pageSize = s.MaxPageSize
	}

	all := s.Store.Messages()
	total := len(all)
	// Compare page counts, not offsets: (page-1)*pageSize overflows for huge pages.
	if page-1 >= (total+pageSize-1)/pageSize {
		return []domain.Message{}, total
	}
	start := (page - 1) * pageSize
	end := min(start+pageSize, total)
	return all[start:end], total
}

// Tasks returns the current plan.
func (s *SessionService) Tasks(ctx context.Context) []domain.PlanTask {
	_, span := s.span(ctx, "Tasks")
	defer span.End()
	return s.Store.Tasks()
}

// Decks returns every deck in creation order.
func (s *SessionService) Decks(ctx context.Context) []domain.Deck {
	_, span := s.span(ctx, "Decks")
	defer span.End()
	return s.Store.Decks()
}

// Deck returns one deck or ErrDeckNotFound.
func (s *SessionService) Deck(ctx context.Context, id string) (domain.Deck, error) {
	_, span := s.span(ctx, "Deck", attribute.String("deck.id", id))
	defer span.End()

	d, ok := s.Store.Deck(id)
	if !ok {
		return domain.Deck{}, ErrDeckNotFound
	}
	return d, nil
}

// Summary derives the progress metrics from current state.
func (s *SessionService) Summary(ctx context.Context) domain.Summary {
	_, span := s.span(ctx, "Summary")
	defer span.End()

	snap := s.Store.Snapshot()
	return Summarize(snap.Messages, snap.Tasks, snap.Decks)
}

// Snapshot returns every aggregate and the summary at one revision.
func (s *SessionService) Snapshot(ctx context.Context) domain.Snapshot {
	_, span := s.span(ctx, "Snapshot")
	defer span.End()

	snap := s.Store.Snapshot()
	snap.Summary = Summarize(snap.Messages, snap.Tasks, snap.Decks)
	span.SetAttributes(attribute.Int64("revision", int64(snap.Revision)))
	return snap
}

// Revision reports the store revision, for cache validators.
func (s *SessionService) Revision() uint64 {
	return s.Store.Revision()
}

// SearchCards ranks cards of every deck against query. k <= 0 uses
// SearchLimit. The shared back text of imported cards is not searchable.
func (s *SessionService) SearchCards(ctx context.Context, query string, k int) []search.Result {
	_, span := s.span(ctx, "SearchCards", attribute.Int("k", k))
	defer span.End()

	if k <= 0 {
		k = s.SearchLimit
	}
	idx := search.NewCardIndex(s.Store.Decks(),
		search.WithoutBackText(notes.GenericBack),
		search.WithStopwords(s.SearchStopwords),
		search.WithMaxDocs(s.SearchMaxDocs),
	)
	res := idx.TopK(query, k)
	if res == nil {
		res = []search.Result{}
	}
	span.SetAttributes(attribute.Int("results", len(res)))
	return res
}

// Summarize computes the summary metrics. CompletionRate uses max(total, 1)
// as denominator, so it is 0 when there are no tasks.
func Summarize(msgs []domain.Message, tasks []domain.PlanTask, decks []domain.Deck) domain.Summary {
	done := 0
	for _, t := range tasks {
		if t.Status == domain.TaskDone {
			done++
		}
	}
	cards := 0
	for _, d := range decks {
		cards += len(d.Cards)
	}
	return domain.Summary{
		CompletedTasks: done,
		TotalTasks:     len(tasks),
		CompletionRate: int(math.Round(float64(done) / float64(max(len(tasks), 1)) * 100)),
		TotalCards:     cards,
		TotalMessages:  len(msgs),
	}
}
