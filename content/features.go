package content

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/foliate/model"
)

// HeadingType classifies a detected heading.
const (
	HeadingChapter         = "chapter"
	HeadingSection         = "section"
	HeadingPart            = "part"
	HeadingAppendix        = "appendix"
	HeadingNumberedSection = "numbered_section"
	HeadingRomanSection    = "roman_section"
	HeadingSectionHeader   = "section_header"
	HeadingGeneric         = "generic"
)

// Heading is a section marker found in page text.
type Heading struct {
	Text string
	Line int
	Type string
}

// Reference is a mention of another page, figure, or table.
type Reference struct {
	Text      string
	Number    int
	HasNumber bool
	Type      string
}

// Features summarizes one page's text for relationship analysis.
type Features struct {
	Index      int
	Text       string
	WordCount  int
	Headings   []Heading
	References []Reference

	// FirstWords and LastWords hold up to boundaryWordCount meaningful
	// words (lowercased, punctuation stripped, stopwords removed) from
	// each end of the page, for continuation checks.
	FirstWords []string
	LastWords  []string

	Sentences  []string
	Paragraphs int
}

// boundaryWordCount is how many meaningful words are kept from each end
// of a page.
const boundaryWordCount = 10

// stopWords are skipped when comparing page text.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "is": true, "are": true, "was": true,
	"were": true, "be": true, "been": true, "being": true, "have": true,
	"has": true, "had": true, "do": true, "does": true, "did": true,
	"will": true, "would": true, "could": true, "should": true, "may": true,
	"might": true, "can": true, "this": true, "that": true, "these": true,
	"those": true, "i": true, "you": true, "he": true, "she": true,
	"it": true, "we": true, "they": true,
}

var headingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(?:chapter|section|part|appendix)\s+\d+`),
	regexp.MustCompile(`^\d+\.\s+[A-Z][a-z]+`),
	regexp.MustCompile(`^\d+\.\d+\s+[A-Z][a-z]+`),
	regexp.MustCompile(`^[IVX]+\.\s+[A-Z][a-z]+`),
}

var referencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)see\s+(?:page|p\.?|figure|fig\.?|table)\s+\d+`),
	regexp.MustCompile(`(?i)(?:page|p\.?)\s+\d+`),
	regexp.MustCompile(`(?i)(?:figure|fig\.?|table)\s+\d+`),
	regexp.MustCompile(`(?i)as\s+(?:discussed|mentioned|shown)\s+(?:above|below|earlier|later)`),
	regexp.MustCompile(`(?i)(?:above|below|previous|next|following)\s+(?:section|chapter|page)`),
}

var (
	digitsRe       = regexp.MustCompile(`\d+`)
	numberedLead   = regexp.MustCompile(`^\d+\.`)
	romanLead      = regexp.MustCompile(`^[IVX]+\.`)
	sentenceSplit  = regexp.MustCompile(`[.!?]+`)
	paragraphSplit = regexp.MustCompile(`\n\s*\n`)
)

// ExtractFeatures computes content features for every page. Output order
// matches input order.
func ExtractFeatures(pages []model.Page) []Features {
	features := make([]Features, 0, len(pages))
	for _, page := range pages {
		text := norm.NFC.String(page.Text)
		features = append(features, Features{
			Index:      page.Index,
			Text:       text,
			WordCount:  len(strings.Fields(text)),
			Headings:   extractHeadings(text),
			References: extractReferences(text),
			FirstWords: firstMeaningfulWords(text, boundaryWordCount),
			LastWords:  lastMeaningfulWords(text, boundaryWordCount),
			Sentences:  splitSentences(text),
			Paragraphs: countParagraphs(text),
		})
	}
	return features
}

func extractHeadings(text string) []Heading {
	if text == "" {
		return nil
	}

	var headings []Heading
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		for _, pattern := range headingPatterns {
			if pattern.MatchString(line) {
				headings = append(headings, Heading{
					Text: line,
					Line: i,
					Type: classifyHeading(line),
				})
				break
			}
		}

		// Structural cues: short ALL-CAPS lines and short lines ending
		// with a colon act like headers even without a number.
		words := len(strings.Fields(line))
		if (isUpper(line) && words <= 6 && len(line) <= 50) ||
			(strings.HasSuffix(line, ":") && words <= 4) {
			headings = append(headings, Heading{
				Text: line,
				Line: i,
				Type: HeadingSectionHeader,
			})
		}
	}
	return headings
}

func classifyHeading(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "chapter"):
		return HeadingChapter
	case strings.Contains(lower, "section"):
		return HeadingSection
	case strings.Contains(lower, "part"):
		return HeadingPart
	case strings.Contains(lower, "appendix"):
		return HeadingAppendix
	case numberedLead.MatchString(text):
		return HeadingNumberedSection
	case romanLead.MatchString(text):
		return HeadingRomanSection
	default:
		return HeadingGeneric
	}
}

func extractReferences(text string) []Reference {
	if text == "" {
		return nil
	}

	var refs []Reference
	for _, pattern := range referencePatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			ref := Reference{Text: match, Type: classifyReference(match)}
			if digits := digitsRe.FindString(match); digits != "" {
				if n, err := strconv.Atoi(digits); err == nil {
					ref.Number = n
					ref.HasNumber = true
				}
			}
			refs = append(refs, ref)
		}
	}
	return refs
}

func classifyReference(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "page") || strings.Contains(lower, "p."):
		return "page_reference"
	case strings.Contains(lower, "figure") || strings.Contains(lower, "fig"):
		return "figure_reference"
	case strings.Contains(lower, "table"):
		return "table_reference"
	case strings.Contains(lower, "above") || strings.Contains(lower, "below") ||
		strings.Contains(lower, "previous") || strings.Contains(lower, "next"):
		return "positional_reference"
	default:
		return "generic_reference"
	}
}

// meaningfulWords lowercases, strips edge punctuation, and drops
// stopwords and empty tokens.
func meaningfulWords(text string) []string {
	var out []string
	for _, w := range strings.Fields(text) {
		w = strings.ToLower(strings.Trim(w, `.,!?;:"()[]`))
		if w == "" || stopWords[w] {
			continue
		}
		out = append(out, w)
	}
	return out
}

func firstMeaningfulWords(text string, count int) []string {
	words := meaningfulWords(text)
	if len(words) > count {
		words = words[:count]
	}
	return words
}

func lastMeaningfulWords(text string, count int) []string {
	words := meaningfulWords(text)
	if len(words) > count {
		words = words[len(words)-count:]
	}
	return words
}

func splitSentences(text string) []string {
	if text == "" {
		return nil
	}
	var out []string
	for _, s := range sentenceSplit.Split(text, -1) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func countParagraphs(text string) int {
	if text == "" {
		return 0
	}
	count := 0
	for _, p := range paragraphSplit.Split(text, -1) {
		if strings.TrimSpace(p) != "" {
			count++
		}
	}
	return count
}

func isUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}
