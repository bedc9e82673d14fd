package locality

import "strings"

// DisplayTokens is a display name split on commas, most specific first.
type DisplayTokens []string

// SplitDisplayName splits a provider display name into trimmed tokens.
// Empty positions are kept so that indexes line up with the original string.
func SplitDisplayName(displayName string) DisplayTokens {
	if strings.TrimSpace(displayName) == "" {
		return nil
	}
	parts := strings.Split(displayName, ",")
	tokens := make(DisplayTokens, len(parts))
	for i, p := range parts {
		tokens[i] = strings.TrimSpace(p)
	}
	return tokens
}

// Index returns the position of the first token equal to name, or -1.
func (t DisplayTokens) Index(name string) int {
	for i, tok := range t {
		if tok == name {
			return i
		}
	}
	return -1
}
