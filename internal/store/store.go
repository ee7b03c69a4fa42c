// Package store holds the three study-session aggregates (conversation,
// daily plan, flashcard decks) and applies mutations to them atomically:
// a mutation either fully replaces or appends to one aggregate, or leaves
// it untouched. There is no I/O here.
//
// Reads return deep copies so callers can never observe or cause a partial
// update. A Store is safe for concurrent use; the HTTP layer serves requests
// from many goroutines against one Store.
package store

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tbourn/go-study-session/internal/domain"
)

// Option configures a Store.
type Option func(*Store)

// WithReplyGenerator swaps the tutor reply strategy. A nil generator is
// ignored.
func WithReplyGenerator(g ReplyGenerator) Option {
	return func(s *Store) {
		if g != nil {
			s.reply = g
		}
	}
}

// WithClock overrides the time source used for message timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides the identifier source. Generated ids must be
// unique for the lifetime of the process.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// Store owns the conversation, the plan, and the deck collection.
type Store struct {
	mu sync.RWMutex

	messages []domain.Message
	tasks    []domain.PlanTask
	decks    []domain.Deck
	deckPos  map[string]int

	rev uint64

	reply ReplyGenerator
	now   func() time.Time
	newID func() string
}

// New returns a Store whose conversation is seeded with the welcome
// greeting and whose plan and deck collection are empty.
func New(opts ...Option) *Store {
	s := &Store{
		deckPos: make(map[string]int),
		reply:   TemplateReply,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	s.messages = []domain.Message{s.tutorMessage(WelcomeGreeting, s.now())}
	return s
}

// Revision increases by one on every mutation that changed state.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rev
}

// ResetConversation replaces the whole conversation with a single
// new-session greeting.
func (s *Store) ResetConversation() {
	msg := s.tutorMessage(NewSessionGreeting, s.now())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = []domain.Message{msg}
	s.rev++
}

// AppendUserTurn appends the user's message followed by one generated tutor
// reply. Both share a timestamp. Text that trims to empty is ignored and
// false is returned.
func (s *Store) AppendUserTurn(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	now := s.now()
	user := domain.Message{ID: s.newID(), Author: domain.AuthorUser, Text: text, CreatedAt: now}
	tutor := s.tutorMessage(s.reply(text), now)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, user, tutor)
	s.rev++
	return true
}

// GeneratePlan replaces the task list with today's fixed plan. Prior tasks
// and their progress are discarded.
func (s *Store) GeneratePlan() {
	tasks := PlanTemplate()
	for i := range tasks {
		tasks[i].ID = s.newID()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = tasks
	s.rev++
}

// AdvanceTaskStatus moves task id to the next status in the
// pending -> in_progress -> done -> pending cycle. It reports false when
// no task has that id.
func (s *Store) AdvanceTaskStatus(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Status = s.tasks[i].Status.Next()
			s.rev++
			return true
		}
	}
	return false
}

// CreateDeck appends a new empty deck called name. A name that trims to
// empty is ignored.
func (s *Store) CreateDeck(name string) (domain.Deck, bool) {
	if strings.TrimSpace(name) == "" {
		return domain.Deck{}, false
	}
	d := domain.Deck{ID: s.newID(), Name: name, Cards: []domain.Flashcard{}}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.deckPos[d.ID] = len(s.decks)
	s.decks = append(s.decks, d)
	s.rev++
	return copyDeck(d), true
}

// AddCard appends one card to deck deckID. It is a no-op when the deck does
// not exist or front/back trim to empty.
func (s *Store) AddCard(deckID, front, back string) (domain.Flashcard, bool) {
	if strings.TrimSpace(front) == "" || strings.TrimSpace(back) == "" {
		return domain.Flashcard{}, false
	}
	card := domain.Flashcard{ID: s.newID(), Front: front, Back: back}

	s.mu.Lock()
	defer s.mu.Unlock()
	pos, ok := s.deckPos[deckID]
	if !ok {
		return domain.Flashcard{}, false
	}
	s.decks[pos].Cards = append(s.decks[pos].Cards, card)
	s.rev++
	return card, true
}

// AddCards appends every valid draft to deck deckID in a single mutation and
// returns how many cards were added. Drafts with an empty side are skipped.
// Nothing is appended when the deck does not exist.
func (s *Store) AddCards(deckID string, drafts []domain.CardDraft) int {
	cards := make([]domain.Flashcard, 0, len(drafts))
	for _, d := range drafts {
		if strings.TrimSpace(d.Front) == "" || strings.TrimSpace(d.Back) == "" {
			continue
		}
		cards = append(cards, domain.Flashcard{ID: s.newID(), Front: d.Front, Back: d.Back})
	}
	if len(cards) == 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	pos, ok := s.deckPos[deckID]
	if !ok {
		return 0
	}
	s.decks[pos].Cards = append(s.decks[pos].Cards, cards...)
	s.rev++
	return len(cards)
}

// Messages returns the conversation in chronological order.
func (s *Store) Messages() []domain.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Message(nil), s.messages...)
}

// Tasks returns the current plan.
func (s *Store) Tasks() []domain.PlanTask {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.PlanTask{}, s.tasks...)
}

// Decks returns every deck in creation order.
func (s *Store) Decks() []domain.Deck {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyDecks(s.decks)
}

// Deck returns the deck with the given id.
func (s *Store) Deck(id string) (domain.Deck, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pos, ok := s.deckPos[id]
	if !ok {
		return domain.Deck{}, false
	}
	return copyDeck(s.decks[pos]), true
}

// Snapshot copies all aggregates under one read lock. Summary is left zero;
// deriving it is the caller's job.
func (s *Store) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Snapshot{
		Revision: s.rev,
		Messages: append([]domain.Message(nil), s.messages...),
		Tasks:    append([]domain.PlanTask{}, s.tasks...),
		Decks:    copyDecks(s.decks),
	}
}

func (s *Store) tutorMessage(text string, at time.Time) domain.Message {
	return domain.Message{ID: s.newID(), Author: domain.AuthorTutor, Text: text, CreatedAt: at}
}

func copyDeck(d domain.Deck) domain.Deck {
	d.Cards = append([]domain.Flashcard{}, d.Cards...)
	return d
}

func copyDecks(in []domain.Deck) []domain.Deck {
	out := make([]domain.Deck, len(in))
	for i, d := range in {
		out[i] = copyDeck(d)
	}
	return out
}
