package material

import "strings"

// Keyword lists are matched as substrings of the lowercased text. Composite
// keywords are checked first, so "carbon fiber reinforced polymer" is a
// composite.
var (
	compositeKeywords = []string{"composite", "fiber", "fiberglass", "carbon", "laminate", "ply"}
	polymerKeywords   = []string{"poly", "plastic", "nylon", "pvc", "pe ", "pp ", "pet", "epoxy", "resin", "vinyl", "rubber"}
)

// Classify maps a free-text material description to a MaterialType.
// Text that matches neither list is Generic.
func Classify(text string) MaterialType {
	t := strings.ToLower(text)
	if t == "" {
		return Generic
	}
	if containsAny(t, compositeKeywords) {
		return Composite
	}
	if containsAny(t, polymerKeywords) {
		return Polymer
	}
	return Generic
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

//Personal.AI order the ending
