package service

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"outings-api/modules/generation/entity"
)

// fencePattern matches a reply wrapped in a markdown code block: ```json {...} ```
var fencePattern = regexp.MustCompile("(?s)^```(?:json)?\\s*\\n?(.*?)\\s*```$")

// ParseActivityDetails decodes the generator reply. Markdown fences are stripped and
// both fields must be present and non-blank.
func ParseActivityDetails(text string) (*entity.ActivityDetails, error) {
	raw := strings.TrimSpace(text)
	if m := fencePattern.FindStringSubmatch(raw); len(m) > 1 {
		raw = strings.TrimSpace(m[1])
	}
	if raw == "" {
		return nil, ErrEmptyResponse
	}

	var details entity.ActivityDetails
	if err := json.Unmarshal([]byte(raw), &details); err != nil {
		return nil, fmt.Errorf("decode activity details: %w", err)
	}

	details.Title = strings.TrimSpace(details.Title)
	details.Description = strings.TrimSpace(details.Description)
	if details.Title == "" || details.Description == "" {
		return nil, ErrIncompleteDetails
	}
	return &details, nil
}
