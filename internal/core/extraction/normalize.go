package extraction

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var spanishMonths = map[string]string{
	"enero": "01", "febrero": "02", "marzo": "03", "abril": "04",
	"mayo": "05", "junio": "06", "julio": "07", "agosto": "08",
	"septiembre": "09", "octubre": "10", "noviembre": "11", "diciembre": "12",
}

var (
	wsRun             = regexp.MustCompile(`\s+`)
	dateNumericPrefix = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})`)
	dateSpelledPrefix = regexp.MustCompile(`^(\d{1,2})\s+de\s+(\w+)\s+de\s+(\d{4})`)
	dateNumericShape  = regexp.MustCompile(`^\d{1,2}[/-]\d{1,2}[/-]\d{2,4}$`)
	dateSpelledShape  = regexp.MustCompile(`^\d{1,2}\s+de\s+\w+\s+de\s+\d{4}$`)
	upperNameShape    = regexp.MustCompile(`^[A-ZÁÉÍÓÚÑ\s]+$`)
	nameStrip         = regexp.MustCompile(`[^A-ZÁÉÍÓÚÑ\s]`)
)

// titleCase renders a phrase in Spanish title case. A fresh Caser per call
// keeps this safe under concurrent extractions.
func titleCase(s string) string {
	return cases.Title(language.Spanish).String(s)
}

// cleanCandidate collapses whitespace runs and trims surrounding
// punctuation from a raw regex capture.
func cleanCandidate(s string) string {
	s = wsRun.ReplaceAllString(strings.TrimSpace(s), " ")
	return strings.Trim(s, ".,:;")
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }

// zfill2 left-pads a day or month to two digits.
func zfill2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// NormalizeDate rewrites a captured date as DD/MM/YYYY. Two-digit years
// keep the historical literal "20" century prefix, and unknown Spanish
// month names resolve to "01". Unrecognized inputs pass through unchanged.
func NormalizeDate(date string) string {
	if m := dateNumericPrefix.FindStringSubmatch(date); m != nil {
		year := m[3]
		if len(year) == 2 {
			year = "20" + year
		}
		return zfill2(m[1]) + "/" + zfill2(m[2]) + "/" + year
	}
	if m := dateSpelledPrefix.FindStringSubmatch(date); m != nil {
		month, ok := spanishMonths[strings.ToLower(m[2])]
		if !ok {
			month = "01"
		}
		return zfill2(m[1]) + "/" + month + "/" + m[3]
	}
	return date
}

// isDateLike reports whether a candidate has one of the two accepted date
// shapes, numeric or spelled out in Spanish.
func isDateLike(s string) bool {
	return dateNumericShape.MatchString(s) || dateSpelledShape.MatchString(s)
}

// CleanPersonName uppercases a name and keeps only letters of the Spanish
// alphabet and single spaces. The input is NFC-normalized first so that
// decomposed accents survive the character filter.
func CleanPersonName(name string) string {
	name = strings.ToUpper(norm.NFC.String(name))
	name = nameStrip.ReplaceAllString(name, "")
	return strings.TrimSpace(wsRun.ReplaceAllString(name, " "))
}

// CleanSexo canonicalizes the sex field to a single letter.
func CleanSexo(sexo string) string {
	sexo = strings.ToUpper(strings.TrimSpace(sexo))
	switch sexo {
	case "M", "MASCULINO":
		return "M"
	case "F", "FEMENINO":
		return "F"
	}
	return sexo
}

// CleanNacionalidad collapses every ARGENTINO/ARGENTINA variant to the
// canonical masculine label.
func CleanNacionalidad(nacionalidad string) string {
	nacionalidad = strings.ToUpper(strings.TrimSpace(nacionalidad))
	if strings.Contains(nacionalidad, "ARGENTINO") || strings.Contains(nacionalidad, "ARGENTINA") {
		return "ARGENTINO"
	}
	return nacionalidad
}

// FormatCUIT renders an 11-digit CUIT in the dashed XX-XXXXXXXX-X form.
// Anything that is not exactly 11 digits is returned unchanged.
func FormatCUIT(cuit string) string {
	digits := digitsOnly(cuit)
	if len(digits) != 11 {
		return cuit
	}
	return digits[:2] + "-" + digits[2:10] + "-" + digits[10:]
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// wordChar mirrors the unicode word class: letters, digits, underscore.
func wordChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// specialCharCount counts runes that are neither word characters nor
// whitespace, used by the academic candidate scorer.
func specialCharCount(s string) int {
	n := 0
	for _, r := range s {
		if !wordChar(r) && !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

func dedupeStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := values[:0]
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
