package model

// SourceKind classifies where a piece of evidence came from
type SourceKind string

const (
	SourceFactCheckDB  SourceKind = "fact_check_db" // Structured fact-check database (ClaimReview)
	SourceEncyclopedia SourceKind = "encyclopedia"  // Encyclopedic search (e.g., Wikipedia)
	SourceOther        SourceKind = "other"
)

// EvidenceItem represents one retrieved piece of evidence for a claim.
// Items are immutable after creation; URL is the dedup key within a result set.
type EvidenceItem struct {
	Title     string     `json:"title"`
	URL       string     `json:"url"`
	Publisher string     `json:"publisher,omitempty"`
	BodyText  string     `json:"body_text,omitempty"` // Extract or claim-review snippet, capped at 500 chars
	Rating    string     `json:"rating,omitempty"`    // Textual rating from fact-check sources, if any
	Kind      SourceKind `json:"kind"`
}

// UsableText returns the text a stance classifier should read for this item:
// the body text when present, otherwise the title.
func (e EvidenceItem) UsableText() string {
	if e.BodyText != "" {
		return e.BodyText
	}
	return e.Title
}

// SourceRef is the {title, url} projection of an evidence item used in reports
type SourceRef struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}
