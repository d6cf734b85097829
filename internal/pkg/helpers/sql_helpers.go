package helpers

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern turns a search term into an ILIKE pattern matching the term
// anywhere in the value. LIKE wildcards in the term match literally.
func ContainsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// NullableString returns nil for an empty string so it is stored as NULL.
func NullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
