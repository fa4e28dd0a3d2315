package ingest

import (
	"regexp"
	"strings"
)

var (
	separatorPattern  = regexp.MustCompile(`[\s\-/]+`)
	disallowedPattern = regexp.MustCompile(`[^a-z0-9_]`)
	underscorePattern = regexp.MustCompile(`_+`)
)

// NormalizeHeader converts a source column name to snake_case: lowercase,
// spaces/hyphens/slashes to underscores, other punctuation removed,
// repeated underscores collapsed. "O*NET-SOC Code" becomes "onet_soc_code".
func NormalizeHeader(header string) string {
	h := strings.ToLower(header)
	h = separatorPattern.ReplaceAllString(h, "_")
	h = disallowedPattern.ReplaceAllString(h, "")
	h = underscorePattern.ReplaceAllString(h, "_")
	return strings.Trim(h, "_")
}

// CleanValue trims whitespace and lowercases a cell so string joins are
// case-insensitive by construction.
func CleanValue(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// SkillRenames maps normalized O*NET headers to the curated column names
// the rest of the pipeline uses.
func SkillRenames() map[string]string {
	return map[string]string{
		"onet_soc_code": "soc_code",
		"title":         "occupation_title",
		"element_name":  "skill_name",
	}
}
