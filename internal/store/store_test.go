package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/tbourn/go-study-session/internal/domain"
)

// ----- helpers -----

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func newTestStore(opts ...Option) *Store {
	base := []Option{WithIDGenerator(seqIDs())}
	return New(append(base, opts...)...)
}

// ----- conversation -----

func TestNew_SeedsWelcomeGreeting(t *testing.T) {
	s := newTestStore()
	msgs := s.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 seed message, got %d", len(msgs))
	}
	if msgs[0].Author != domain.AuthorTutor || msgs[0].Text != WelcomeGreeting {
		t.Fatalf("unexpected seed: %+v", msgs[0])
	}
	if s.Revision() != 0 {
		t.Fatalf("fresh store revision = %d; want 0", s.Revision())
	}
}

func TestAppendUserTurn_AddsUserAndTutorWithSameTimestamp(t *testing.T) {
	ts := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	s := newTestStore(WithClock(fixedClock(ts)))
	before := s.Messages()

	if !s.AppendUserTurn("I am studying cell biology") {
		t.Fatalf("AppendUserTurn returned false for valid text")
	}
	msgs := s.Messages()
	if len(msgs) != len(before)+2 {
		t.Fatalf("length = %d; want %d", len(msgs), len(before)+2)
	}
	if msgs[0] != before[0] {
		t.Fatalf("prior messages must be preserved in order")
	}
	user, tutor := msgs[1], msgs[2]
	if user.Author != domain.AuthorUser || user.Text != "I am studying cell biology" {
		t.Fatalf("unexpected user msg: %+v", user)
	}
	if tutor.Author != domain.AuthorTutor || tutor.Text != CoachingReply {
		t.Fatalf("unexpected tutor msg: %+v", tutor)
	}
	if !user.CreatedAt.Equal(tutor.CreatedAt) {
		t.Fatalf("user and tutor timestamps differ: %v vs %v", user.CreatedAt, tutor.CreatedAt)
	}
	if user.ID == tutor.ID {
		t.Fatalf("ids must be distinct")
	}
}

func TestAppendUserTurn_BlankIsNoop(t *testing.T) {
	s := newTestStore()
	for _, in := range []string{"", "   ", "\n\t "} {
		if s.AppendUserTurn(in) {
			t.Fatalf("AppendUserTurn(%q) should report no change", in)
		}
	}
	if n := len(s.Messages()); n != 1 {
		t.Fatalf("conversation length = %d; want 1", n)
	}
	if s.Revision() != 0 {
		t.Fatalf("no-op must not bump revision")
	}
}

func TestWithReplyGenerator_ReceivesUserText(t *testing.T) {
	var seen string
	s := newTestStore(WithReplyGenerator(func(in string) string {
		seen = in
		return "echo: " + in
	}))
	s.AppendUserTurn("photosynthesis")
	msgs := s.Messages()
	if seen != "photosynthesis" {
		t.Fatalf("generator saw %q", seen)
	}
	if got := msgs[len(msgs)-1].Text; got != "echo: photosynthesis" {
		t.Fatalf("reply = %q", got)
	}
}

func TestWithReplyGenerator_NilKeepsTemplate(t *testing.T) {
	s := newTestStore(WithReplyGenerator(nil))
	s.AppendUserTurn("hello there")
	msgs := s.Messages()
	if msgs[len(msgs)-1].Text != CoachingReply {
		t.Fatalf("nil generator must keep the template reply")
	}
}

func TestResetConversation_ReplacesWithSingleGreeting(t *testing.T) {
	s := newTestStore()
	s.AppendUserTurn("one")
	s.AppendUserTurn("two")
	s.ResetConversation()

	msgs := s.Messages()
	if len(msgs) != 1 {
		t.Fatalf("after reset length = %d; want 1", len(msgs))
	}
	if msgs[0].Author != domain.AuthorTutor || msgs[0].Text != NewSessionGreeting {
		t.Fatalf("unexpected greeting: %+v", msgs[0])
	}
}

// ----- plan -----

func TestGeneratePlan_FixedTemplateAllPending(t *testing.T) {
	s := newTestStore()
	s.GeneratePlan()
	tasks := s.Tasks()
	want := []struct{ title, due string }{
		{"25-minute focused study block", "Start now · finish in 25 minutes"},
		{"Create 10 flashcards from today's material", "Within the next 45 minutes"},
		{"Quick 5-question self-quiz", "Before you finish this session"},
	}
	if len(tasks) != len(want) {
		t.Fatalf("got %d tasks; want %d", len(tasks), len(want))
	}
	for i, w := range want {
		if tasks[i].Title != w.title || tasks[i].DueLabel != w.due {
			t.Errorf("task %d = %q/%q; want %q/%q", i, tasks[i].Title, tasks[i].DueLabel, w.title, w.due)
		}
		if tasks[i].Status != domain.TaskPending {
			t.Errorf("task %d status = %q; want pending", i, tasks[i].Status)
		}
		if tasks[i].ID == "" {
			t.Errorf("task %d has empty id", i)
		}
	}
}

func TestGeneratePlan_DiscardsProgress(t *testing.T) {
	s := newTestStore()
	s.GeneratePlan()
	first := s.Tasks()
	s.AdvanceTaskStatus(first[0].ID)
	s.AdvanceTaskStatus(first[0].ID)

	s.GeneratePlan()
	second := s.Tasks()
	for i, tk := range second {
		if tk.Status != domain.TaskPending {
			t.Fatalf("task %d not pending after regenerate", i)
		}
		if tk.ID == first[i].ID {
			t.Fatalf("regenerated task %d reused id %q", i, tk.ID)
		}
	}
}

func TestAdvanceTaskStatus_CyclesAndUnknownIsNoop(t *testing.T) {
	s := newTestStore()
	s.GeneratePlan()
	id := s.Tasks()[1].ID

	want := []domain.TaskStatus{domain.TaskInProgress, domain.TaskDone, domain.TaskPending, domain.TaskInProgress}
	for i, w := range want {
		if !s.AdvanceTaskStatus(id) {
			t.Fatalf("advance %d reported no change", i)
		}
		if got := s.Tasks()[1].Status; got != w {
			t.Fatalf("after %d advances status = %q; want %q", i+1, got, w)
		}
	}

	rev := s.Revision()
	if s.AdvanceTaskStatus("missing") {
		t.Fatalf("unknown id must be a no-op")
	}
	if s.Revision() != rev {
		t.Fatalf("unknown id must not bump revision")
	}
	// Other tasks stay untouched.
	if s.Tasks()[0].Status != domain.TaskPending || s.Tasks()[2].Status != domain.TaskPending {
		t.Fatalf("sibling tasks changed")
	}
}

// ----- decks -----

func TestCreateDeck_AppendsInCreationOrder(t *testing.T) {
	s := newTestStore()
	a, ok := s.CreateDeck("Biology")
	if !ok {
		t.Fatalf("CreateDeck failed")
	}
	b, _ := s.CreateDeck("Chemistry")
	if _, ok := s.CreateDeck("   "); ok {
		t.Fatalf("blank deck name must be ignored")
	}

	decks := s.Decks()
	if len(decks) != 2 || decks[0].ID != a.ID || decks[1].ID != b.ID {
		t.Fatalf("unexpected decks: %+v", decks)
	}
	if decks[0].Cards == nil || len(decks[0].Cards) != 0 {
		t.Fatalf("new deck should have an empty, non-nil card list")
	}
}

func TestAddCard_ValidatesAndAppends(t *testing.T) {
	s := newTestStore()
	d, _ := s.CreateDeck("Physics")

	if _, ok := s.AddCard(d.ID, "F = ma", "Newton's second law"); !ok {
		t.Fatalf("valid AddCard failed")
	}
	cases := []struct{ deck, front, back string }{
		{d.ID, "", "back"},
		{d.ID, "front", "  "},
		{"nope", "front", "back"},
	}
	for _, tc := range cases {
		if _, ok := s.AddCard(tc.deck, tc.front, tc.back); ok {
			t.Fatalf("AddCard(%q,%q,%q) should be a no-op", tc.deck, tc.front, tc.back)
		}
	}
	got, _ := s.Deck(d.ID)
	if len(got.Cards) != 1 || got.Cards[0].Front != "F = ma" {
		t.Fatalf("unexpected cards: %+v", got.Cards)
	}
}

func TestAddCards_AllOrNothingPerDeck(t *testing.T) {
	s := newTestStore()
	d, _ := s.CreateDeck("History")
	s.AddCard(d.ID, "first", "card")

	drafts := []domain.CardDraft{
		{Front: "a long enough sentence", Back: "b"},
		{Front: "", Back: "skipped"},
		{Front: "another long sentence", Back: "b"},
	}
	if n := s.AddCards("unknown", drafts); n != 0 {
		t.Fatalf("unknown deck added %d cards", n)
	}
	if n := s.AddCards(d.ID, drafts); n != 2 {
		t.Fatalf("AddCards added %d; want 2", n)
	}
	got, _ := s.Deck(d.ID)
	fronts := []string{"first", "a long enough sentence", "another long sentence"}
	if len(got.Cards) != len(fronts) {
		t.Fatalf("card count = %d; want %d", len(got.Cards), len(fronts))
	}
	for i, f := range fronts {
		if got.Cards[i].Front != f {
			t.Fatalf("card %d front = %q; want %q", i, got.Cards[i].Front, f)
		}
	}
	if n := s.AddCards(d.ID, nil); n != 0 {
		t.Fatalf("empty drafts added %d", n)
	}
}

func TestReads_ReturnCopies(t *testing.T) {
	s := newTestStore()
	d, _ := s.CreateDeck("Maths")
	s.AddCard(d.ID, "2+2", "4")

	decks := s.Decks()
	decks[0].Cards[0].Front = "mutated"
	decks[0].Name = "mutated"
	msgs := s.Messages()
	msgs[0].Text = "mutated"

	again, _ := s.Deck(d.ID)
	if again.Name != "Maths" || again.Cards[0].Front != "2+2" {
		t.Fatalf("store state leaked through Decks(): %+v", again)
	}
	if s.Messages()[0].Text != WelcomeGreeting {
		t.Fatalf("store state leaked through Messages()")
	}
}

func TestSnapshot_RevisionTracksEffectiveMutations(t *testing.T) {
	s := newTestStore()
	s.GeneratePlan()
	s.AppendUserTurn("hi there")
	s.AppendUserTurn(" ")
	d, _ := s.CreateDeck("Deck")
	s.AddCard(d.ID, "q", "a")
	s.AddCard("missing", "q", "a")

	snap := s.Snapshot()
	if snap.Revision != 4 {
		t.Fatalf("revision = %d; want 4", snap.Revision)
	}
	if len(snap.Messages) != 3 || len(snap.Tasks) != 3 || len(snap.Decks) != 1 {
		t.Fatalf("unexpected snapshot sizes: %d/%d/%d", len(snap.Messages), len(snap.Tasks), len(snap.Decks))
	}
}

func TestDefaultIDs_AreUnique(t *testing.T) {
	s := New()
	d, _ := s.CreateDeck("ids")
	seen := map[string]struct{}{}
	for i := 0; i < 200; i++ {
		c, _ := s.AddCard(d.ID, "front", "back")
		if _, dup := seen[c.ID]; dup {
			t.Fatalf("duplicate id %q", c.ID)
		}
		seen[c.ID] = struct{}{}
	}
}

func TestConcurrentMutations_NoLostUpdates(t *testing.T) {
	s := New()
	d, _ := s.CreateDeck("race")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				s.AddCard(d.ID, "front", "back")
				s.AppendUserTurn("question")
			}
		}()
	}
	wg.Wait()

	got, _ := s.Deck(d.ID)
	if len(got.Cards) != 200 {
		t.Fatalf("cards = %d; want 200", len(got.Cards))
	}
	if n := len(s.Messages()); n != 1+400 {
		t.Fatalf("messages = %d; want 401", n)
	}
}
