package nlp

import (
	"context"
	"regexp"
	"strings"
	"unicode"
)

// LocalAnnotator is a dependency-free heuristic annotator: regex sentence
// segmentation plus shape- and lexicon-based entity tagging. It is a
// stand-in for a full NER model and intentionally favors recall on the
// entity types the extractor filters on.
type LocalAnnotator struct{}

// NewLocalAnnotator creates a new local annotator
func NewLocalAnnotator() *LocalAnnotator {
	return &LocalAnnotator{}
}

var (
	cardinalPattern = regexp.MustCompile(`\b\d[\d,.]*%?`)
	yearPattern     = regexp.MustCompile(`\b(1[0-9]|20)\d{2}\b`)
	monthPattern    = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december)\b`)
	acronymPattern  = regexp.MustCompile(`\b[A-Z]{2,}\b`)
)

var orgSuffixes = []string{
	"Organization", "Organisation", "Institute", "University", "Agency",
	"Ministry", "Department", "Commission", "Committee", "Company",
	"Corporation", "Inc", "Corp", "Ltd", "Association", "Council",
}

var locationMarkers = map[string]bool{
	"in": true, "at": true, "from": true, "near": true, "across": true,
}

// Annotate segments the text and tags entities in each sentence
func (a *LocalAnnotator) Annotate(ctx context.Context, text string) (*Annotation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ann := &Annotation{}
	for _, sent := range SplitSentences(text) {
		ann.Sentences = append(ann.Sentences, Sentence{
			Text:     sent,
			Entities: tagEntities(sent),
		})
	}
	return ann, nil
}

// SplitSentences splits text into sentences on terminator punctuation
// followed by whitespace. Simple, but deterministic and good enough for
// prose input.
func SplitSentences(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")

	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)

		if r == '.' || r == '!' || r == '?' {
			// Only split when followed by whitespace, to avoid decimals
			// and abbreviations mid-token
			if i+1 >= len(text) || text[i+1] == ' ' || text[i+1] == '\t' {
				if s := strings.TrimSpace(current.String()); s != "" {
					sentences = append(sentences, s)
				}
				current.Reset()
			}
		}
	}

	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

// tagEntities runs the heuristic taggers over one sentence
func tagEntities(sent string) []Entity {
	var entities []Entity

	for _, m := range cardinalPattern.FindAllString(sent, -1) {
		entities = append(entities, Entity{Text: m, Label: LabelCardinal})
	}
	for _, m := range yearPattern.FindAllString(sent, -1) {
		entities = append(entities, Entity{Text: m, Label: LabelDate})
	}
	for _, m := range monthPattern.FindAllString(sent, -1) {
		entities = append(entities, Entity{Text: m, Label: LabelDate})
	}
	for _, m := range acronymPattern.FindAllString(sent, -1) {
		entities = append(entities, Entity{Text: m, Label: LabelOrganization})
	}

	entities = append(entities, tagTitleCaseRuns(sent)...)

	return entities
}

// tagTitleCaseRuns finds mid-sentence runs of capitalized words and
// classifies them by shape: org suffix -> ORG, preceded by a location
// preposition -> GPE, otherwise PERSON.
func tagTitleCaseRuns(sent string) []Entity {
	words := strings.Fields(sent)
	var entities []Entity

	i := 0
	for i < len(words) {
		// Skip the sentence-initial word: capitalization there is not a signal
		if i == 0 {
			i++
			continue
		}

		if !isTitleCase(words[i]) {
			i++
			continue
		}

		start := i
		for i < len(words) && isTitleCase(words[i]) {
			i++
		}

		run := strings.Join(words[start:i], " ")
		label := LabelPerson
		if hasOrgSuffix(run) {
			label = LabelOrganization
		} else if start > 0 && locationMarkers[strings.ToLower(words[start-1])] {
			label = LabelLocation
		} else if i-start < 2 {
			// A lone capitalized word is weak evidence for a person name
			label = LabelOrganization
		}

		entities = append(entities, Entity{Text: run, Label: label})
	}

	return entities
}

func isTitleCase(word string) bool {
	trimmed := strings.TrimFunc(word, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if trimmed == "" {
		return false
	}
	runes := []rune(trimmed)
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	// All-caps tokens are handled by the acronym pattern
	for _, r := range runes[1:] {
		if unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

func hasOrgSuffix(run string) bool {
	for _, suffix := range orgSuffixes {
		if strings.HasSuffix(run, suffix) || strings.HasSuffix(run, suffix+".") {
			return true
		}
	}
	return false
}
