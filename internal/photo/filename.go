package photo

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// PublicID derives the deterministic storage name for a student photo from
// grade and name, e.g. grade="5ºA", name="João da Silva" → "5A - Joao da Silva".
// Re-uploading a photo for the same student lands on the same object.
//
// Ordinal markers and diacritics are stripped (the storage API rejects
// them), path-invalid characters are dropped, and whitespace inside the
// grade token is collapsed away.
func PublicID(grade, name string) string {
	gradeClean := strings.Join(strings.Fields(sanitize(grade)), "")
	nameClean := sanitize(name)
	return gradeClean + " - " + nameClean
}

func sanitize(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case 'º', 'ª':
			return -1
		case '\\', '/', ':', '*', '?', '"', '<', '>', '|':
			return -1
		}
		return r
	}, s)

	// Decompose accented characters and drop the combining marks.
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
