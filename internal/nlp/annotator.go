// Package nlp defines the sentence-segmentation and entity-annotation
// contract the claim extractor delegates to, plus a local heuristic
// implementation. A hosted NLP service can be plugged in behind the same
// interface.
package nlp

import "context"

// Entity labels follow the usual NER tag set for the types the claim
// extractor cares about.
const (
	LabelPerson       = "PERSON"
	LabelOrganization = "ORG"
	LabelLocation     = "GPE"
	LabelDate         = "DATE"
	LabelCardinal     = "CARDINAL"
)

// Entity is a named entity detected within a sentence
type Entity struct {
	Text  string
	Label string
}

// Sentence is one segmented sentence with its detected entities
type Sentence struct {
	Text     string
	Entities []Entity
}

// Annotation is the full annotator output for one input text
type Annotation struct {
	Sentences []Sentence
}

// Annotator segments text into sentences and tags named entities.
// Implementations may block on network or CPU-bound work; callers pass a
// context and must not assume the call is cheap.
type Annotator interface {
	Annotate(ctx context.Context, text string) (*Annotation, error)
}
