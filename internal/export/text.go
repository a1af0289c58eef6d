package export

import (
	"strings"
	"unicode"

	"github.com/go-pdf/fpdf"
)

// cyrillicLatin maps lowercase Russian letters to their Latin spelling.
// The core PDF fonts only cover cp1252, so Cyrillic names are transliterated
// instead of being printed as unreadable bytes.
var cyrillicLatin = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "yo",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "kh", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "shch",
	'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
}

// transliterate spells Cyrillic letters in Latin. Other runes pass through.
func transliterate(s string) string {
	var b strings.Builder
	for _, r := range s {
		latin, ok := cyrillicLatin[unicode.ToLower(r)]
		if !ok {
			b.WriteRune(r)
			continue
		}
		if unicode.IsUpper(r) && latin != "" {
			latin = strings.ToUpper(latin[:1]) + latin[1:]
		}
		b.WriteString(latin)
	}
	return b.String()
}

// textEncoder returns the function used for every user-supplied string
// written with the core fonts.
func textEncoder(pdf *fpdf.Fpdf) func(string) string {
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	return func(s string) string {
		return tr(transliterate(s))
	}
}
