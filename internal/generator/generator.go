// Package generator produces candidate conspiracy theories from user-supplied
// keywords by substituting them into canned sentence templates.
package generator

import (
	"math/rand"
	"strconv"
	"strings"

	"tinfoil/internal/models"
)

// templates each contain 2-4 {keywordN} placeholders and one {year}.
var templates = []string{
	"Did you know that {keyword1} is actually controlled by {keyword2}? The evidence dates back to {year}. Insiders claim that {keyword3} was created to distract us from this truth.",
	"The secret connection between {keyword1} and {keyword2} has been hidden from the public for decades. Research suggests that {keyword3} was engineered to cover up this relationship.",
	"Government documents reveal that {keyword1} was invented by {keyword2} to monitor {keyword3}. This operation has been active since {year} and explains why {keyword4} keeps appearing in the media.",
	"The real reason {keyword1} exists is to collect data for {keyword2}. This conspiracy began when {keyword3} mysteriously gained popularity in {year}.",
	"What if {keyword1} isn't what we think? Evidence suggests it's a front for {keyword2} operations targeting {keyword3}. The truth has been hidden since {year}.",
	"Declassified files show that {keyword1} was designed by {keyword2} to influence {keyword3}. The program started in {year} and explains the strange connection to {keyword4}.",
	"The elite don't want you to know that {keyword1} is actually manipulated by {keyword2} to control {keyword3}. This has been happening since {year}.",
	"Investigations reveal that {keyword1} was created as a distraction from the activities of {keyword2}. This explains why {keyword3} suddenly changed in {year}.",
	"The connection between {keyword1} and {keyword2} isn't coincidental. Experts who studied {keyword3} have disappeared after discovering the truth.",
	"The real purpose of {keyword1} is to gather information for {keyword2}. This operation has been running since {year} and involves key figures in {keyword3}.",
}

const (
	yearBase = 1950
	yearSpan = 70 // inclusive range [1950, 2019]

	maxPlaceholders = 4
	maxLikesSeed    = 100
)

// Candidate is a transient, unsaved theory produced by the generator.
// It is not persisted until the user submits it.
type Candidate struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Keywords []string `json:"keywords"`
	Likes    int      `json:"likes"`
}

// Generator fills theory templates with keywords. The zero value is not
// usable; construct with New or NewWithSource.
type Generator struct {
	intn func(n int) int
}

// New returns a Generator backed by the shared math/rand source, which is
// safe for concurrent use.
func New() *Generator {
	return &Generator{intn: rand.Intn}
}

// NewWithSource returns a Generator drawing from src. Useful for
// deterministic output in tests. The resulting Generator is only as
// concurrency-safe as src.
func NewWithSource(src rand.Source) *Generator {
	rng := rand.New(src)
	return &Generator{intn: rng.Intn}
}

// SplitKeywords splits a comma-separated keyword string into trimmed,
// non-empty tokens. Order is preserved and duplicates are permitted.
func SplitKeywords(keywordsInput string) []string {
	parts := strings.Split(keywordsInput, ",")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}
	return keywords
}

// Generate produces a candidate theory from a comma-separated keyword string.
// It fails with a validation error when the input contains no usable
// keywords. Keywords are reused cyclically when the chosen template has more
// placeholders than keywords supplied.
func (g *Generator) Generate(keywordsInput string) (*Candidate, error) {
	keywords := SplitKeywords(keywordsInput)
	if len(keywords) == 0 {
		return nil, models.NewValidationError("Please enter at least one keyword")
	}

	content := templates[g.intn(len(templates))]
	year := g.intn(yearSpan) + yearBase

	for i := 1; i <= maxPlaceholders; i++ {
		placeholder := "{keyword" + strconv.Itoa(i) + "}"
		if strings.Contains(content, placeholder) {
			content = strings.Replace(content, placeholder, keywords[(i-1)%len(keywords)], 1)
		}
	}
	content = strings.Replace(content, "{year}", strconv.Itoa(year), 1)

	return &Candidate{
		Title:    "The Truth About " + keywords[0],
		Content:  content,
		Keywords: keywords,
		Likes:    g.intn(maxLikesSeed),
	}, nil
}
