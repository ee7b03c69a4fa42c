package notes

import (
	"fmt"
	"strings"
	"testing"
)

func fronts(t *testing.T, text string) []string {
	t.Helper()
	drafts := Segment(text)
	out := make([]string, len(drafts))
	for i, d := range drafts {
		if d.Back != GenericBack {
			t.Fatalf("draft %d back = %q; want generic back", i, d.Back)
		}
		out[i] = d.Front
	}
	return out
}

func TestSegment_DropsShortSegments(t *testing.T) {
	in := "A short one. This is a sufficiently long sentence to pass. X. Another long enough sentence here."
	got := fronts(t, in)
	want := []string{
		"This is a sufficiently long sentence to pass",
		"Another long enough sentence here",
	}
	if len(got) != len(want) {
		t.Fatalf("got %d drafts %q; want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("draft %d = %q; want %q", i, got[i], want[i])
		}
	}
}

func TestSegment_CapsAtEightInOrder(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 20; i++ {
		fmt.Fprintf(&b, "Qualifying sentence number %02d. ", i)
	}
	got := fronts(t, b.String())
	if len(got) != MaxDrafts {
		t.Fatalf("got %d drafts; want %d", len(got), MaxDrafts)
	}
	for i, f := range got {
		want := fmt.Sprintf("Qualifying sentence number %02d", i)
		if f != want {
			t.Fatalf("draft %d = %q; want %q", i, f, want)
		}
	}
}

func TestSegment_BoundaryAtTenRunes(t *testing.T) {
	// exactly 10 runes is dropped, 11 is kept
	got := fronts(t, "abcdefghij.abcdefghijk")
	if len(got) != 1 || got[0] != "abcdefghijk" {
		t.Fatalf("unexpected drafts: %q", got)
	}
	// multi-byte runes are counted as characters, not bytes
	got = fronts(t, "ééééééééééé\nüüüüü")
	if len(got) != 1 || got[0] != "ééééééééééé" {
		t.Fatalf("unexpected drafts: %q", got)
	}
}

func TestSegment_TerminatorRunsCollapse(t *testing.T) {
	in := "Mitochondria make energy...\n\n\nRibosomes build proteins.\n.\nok"
	got := fronts(t, in)
	want := []string{"Mitochondria make energy", "Ribosomes build proteins"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %q; want %q", got, want)
	}
}

func TestSegment_EmptyInputs(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\n", "short. tiny. x"} {
		got := Segment(in)
		if got == nil {
			t.Fatalf("Segment(%q) returned nil; want empty slice", in)
		}
		if len(got) != 0 {
			t.Fatalf("Segment(%q) = %v; want empty", in, got)
		}
	}
}

func TestSegment_NoDeduplication(t *testing.T) {
	got := fronts(t, "The same long sentence. The same long sentence.")
	if len(got) != 2 {
		t.Fatalf("duplicates must be kept, got %q", got)
	}
}

func TestSegmentReader_LinesActAsTerminators(t *testing.T) {
	r := strings.NewReader("Photosynthesis uses sunlight\r\nChlorophyll is green pigment\nno\n")
	drafts, err := SegmentReader(r)
	if err != nil {
		t.Fatalf("SegmentReader: %v", err)
	}
	if len(drafts) != 2 {
		t.Fatalf("got %d drafts; want 2", len(drafts))
	}
	if drafts[0].Front != "Photosynthesis uses sunlight" || drafts[1].Front != "Chlorophyll is green pigment" {
		t.Fatalf("unexpected drafts: %+v", drafts)
	}
}

func TestSegmentReader_VeryLongLine(t *testing.T) {
	long := strings.Repeat("a", 5<<20)
	drafts, err := SegmentReader(strings.NewReader(long + ". Enzymes lower activation energy"))
	if err != nil {
		t.Fatalf("SegmentReader: %v", err)
	}
	if len(drafts) != 2 || len(drafts[0].Front) != len(long) || drafts[1].Front != "Enzymes lower activation energy" {
		t.Fatalf("got %d drafts", len(drafts))
	}
}

func TestSegment_LengthCountsCodePoints(t *testing.T) {
	// Six emoji: 24 bytes, 6 code points. Not long enough.
	if got := Segment("😀😀😀😀😀😀"); len(got) != 0 {
		t.Fatalf("six emoji kept: %+v", got)
	}
	// Eleven code points clears the threshold.
	eleven := strings.Repeat("😀", 11)
	if got := Segment(eleven); len(got) != 1 || got[0].Front != eleven {
		t.Fatalf("eleven emoji dropped: %+v", got)
	}
	// Accented Latin letters count once each too.
	if got := Segment("ééééééééééé"); len(got) != 1 {
		t.Fatalf("eleven accented letters dropped: %+v", got)
	}
}
