package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/truthlens/truthlens/internal/cache"
	"github.com/truthlens/truthlens/internal/model"
	"github.com/truthlens/truthlens/internal/nlp"
)

// stubAnnotator returns a fixed annotation and counts invocations
type stubAnnotator struct {
	annotation *nlp.Annotation
	err        error
	calls      int
}

func (s *stubAnnotator) Annotate(ctx context.Context, text string) (*nlp.Annotation, error) {
	s.calls++
	return s.annotation, s.err
}

func sentence(text string, labels ...string) nlp.Sentence {
	s := nlp.Sentence{Text: text}
	for _, label := range labels {
		s.Entities = append(s.Entities, nlp.Entity{Text: "x", Label: label})
	}
	return s
}

func newTestExtractor(ann *nlp.Annotation) *Extractor {
	return NewExtractor(&stubAnnotator{annotation: ann}, nil, 0, model.DefaultConfig().Extract)
}

func TestExtractKeepsFactualSentences(t *testing.T) {
	tests := []struct {
		name string
		sent nlp.Sentence
		want bool
	}{
		{
			name: "entities plus factual verb",
			sent: sentence("The WHO confirmed the outbreak has ended.", nlp.LabelOrganization),
			want: true,
		},
		{
			name: "numbers plus factual verb",
			sent: sentence("Cases dropped by 40 percent according to officials."),
			want: true,
		},
		{
			name: "entities and long sentence without factual phrasing",
			sent: sentence("Researchers across several European countries collaborated closely throughout the decade.", nlp.LabelLocation),
			want: true,
		},
		{
			name: "no entities no numbers",
			sent: sentence("This is a sentence about nothing in particular."),
			want: false,
		},
		{
			name: "entities but short and no factual phrasing",
			sent: sentence("Greetings again dear Professor Smith!", nlp.LabelPerson),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestExtractor(&nlp.Annotation{Sentences: []nlp.Sentence{tt.sent}})
			claims, err := e.Extract(context.Background(), tt.sent.Text)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := len(claims) == 1; got != tt.want {
				t.Errorf("expected kept=%v, got claims %v", tt.want, claims)
			}
		})
	}
}

func TestExtractDiscardsShortSentences(t *testing.T) {
	// Factual verb and a number, but under the token minimum
	ann := &nlp.Annotation{Sentences: []nlp.Sentence{
		sentence("It is 42.", nlp.LabelCardinal),
	}}

	claims, err := newTestExtractor(ann).Extract(context.Background(), "It is 42.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(claims) != 0 {
		t.Errorf("expected no claims, got %v", claims)
	}
}

func TestExtractOrdersByLengthAndCaps(t *testing.T) {
	var sentences []nlp.Sentence
	for i := 0; i < 7; i++ {
		// Each sentence is longer than the previous one
		text := fmt.Sprintf("Report %d confirmed the figure was accurate%s.", i, strings.Repeat(" indeed", i))
		sentences = append(sentences, sentence(text, nlp.LabelCardinal))
	}
	ann := &nlp.Annotation{Sentences: sentences}

	claims, err := newTestExtractor(ann).Extract(context.Background(), "input")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(claims) != 5 {
		t.Fatalf("expected 5 claims, got %d", len(claims))
	}
	for i := 1; i < len(claims); i++ {
		if len(claims[i].Text) > len(claims[i-1].Text) {
			t.Errorf("claims not ordered by descending length: %q before %q",
				claims[i-1].Text, claims[i].Text)
		}
	}
	// The two shortest sentences fall off the cap
	if claims[len(claims)-1].Text != sentences[2].Text {
		t.Errorf("expected shortest kept claim %q, got %q",
			sentences[2].Text, claims[len(claims)-1].Text)
	}
}

func TestExtractStableOrderForEqualLengths(t *testing.T) {
	first := sentence("Data shows option A is clearly viable today.", nlp.LabelCardinal)
	second := sentence("Data shows option B is clearly viable today.", nlp.LabelCardinal)
	ann := &nlp.Annotation{Sentences: []nlp.Sentence{first, second}}

	claims, err := newTestExtractor(ann).Extract(context.Background(), "input")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(claims) != 2 {
		t.Fatalf("expected 2 claims, got %d", len(claims))
	}
	if claims[0].Text != first.Text || claims[1].Text != second.Text {
		t.Errorf("equal-length claims lost document order: %v", claims)
	}
}

func TestExtractMemoizes(t *testing.T) {
	stub := &stubAnnotator{annotation: &nlp.Annotation{Sentences: []nlp.Sentence{
		sentence("The WHO confirmed the outbreak has ended.", nlp.LabelOrganization),
	}}}
	memo := cache.NewMemoryCache(time.Minute, time.Minute)
	e := NewExtractor(stub, memo, time.Minute, model.DefaultConfig().Extract)

	text := "The WHO confirmed the outbreak has ended."
	first, err := e.Extract(context.Background(), text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := e.Extract(context.Background(), text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stub.calls != 1 {
		t.Errorf("expected 1 annotator call, got %d", stub.calls)
	}
	if len(first) != 1 || len(second) != 1 || first[0] != second[0] {
		t.Errorf("expected identical memoized results, got %v and %v", first, second)
	}
}

func TestExtractAnnotatorError(t *testing.T) {
	stub := &stubAnnotator{err: errors.New("annotator down")}
	e := NewExtractor(stub, nil, 0, model.DefaultConfig().Extract)

	if _, err := e.Extract(context.Background(), "Some input text here."); err == nil {
		t.Error("expected annotator error to propagate")
	}
}
