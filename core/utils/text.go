package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// strict policy strips every tag; it is safe for concurrent use.
var plainText = bluemonday.StrictPolicy()

// SanitizeText removes any markup from user supplied text and trims surrounding space.
// The result is plain text, so entities escaped by the policy are decoded again.
func SanitizeText(s string) string {
	return strings.TrimSpace(html.UnescapeString(plainText.Sanitize(s)))
}

// Folder performs Unicode case folding. A Folder is not safe for concurrent use;
// create one per operation.
type Folder struct {
	caser cases.Caser
}

func NewFolder() *Folder {
	return &Folder{caser: cases.Fold()}
}

func (f *Folder) Fold(s string) string {
	return f.caser.String(s)
}

// Contains reports whether needle occurs in haystack ignoring case.
// An empty needle matches everything.
func (f *Folder) Contains(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(f.Fold(haystack), f.Fold(needle))
}

// FormatRating renders an average rating in French notation ("4,5").
func FormatRating(r float64) string {
	p := message.NewPrinter(language.French)
	return p.Sprintf("%.1f", r)
}
