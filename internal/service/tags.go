package service

import (
	"encoding/json"
	"strings"
)

// NormalizeTags canonicalizes the tag field, which clients send in one of
// three shapes: a JSON array string (`["go","web"]`), a comma-separated
// string (`go, web`), or a single bare tag. Malformed JSON falls back to
// comma-splitting. Entries are trimmed and empties dropped.
func NormalizeTags(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var parsed []string
	if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
		return trimTags(parsed)
	}

	return trimTags(strings.Split(raw, ","))
}

func trimTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
