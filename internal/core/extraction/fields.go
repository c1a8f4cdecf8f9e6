package extraction

import (
	"regexp"
	"strings"
)

// scoreMode selects the candidate scoring profile of a document family.
// Identity documents favor short exact tokens; academic documents favor
// longer prose fragments.
type scoreMode int

const (
	scoreIdentity scoreMode = iota
	scoreAcademic
)

var (
	dniShape        = regexp.MustCompile(`^\d{7,8}$`)
	digitsPunctOnly = regexp.MustCompile(`^[\d\s\-\.]+$`)
	hasASCIILetter  = regexp.MustCompile(`[A-Za-z]`)
	upperNameDots   = regexp.MustCompile(`^[A-ZÁÉÍÓÚÑ\s\.]+$`)
	institutionWord = regexp.MustCompile(`(?i)(universidad|instituto|colegio|escuela)`)
	dateNumericAny  = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`)
)

// academicStopwords rejects candidates that are a bare Spanish function
// word, which the loose prose patterns capture easily.
var academicStopwords = map[string]struct{}{
	"el": {}, "la": {}, "de": {}, "del": {}, "en": {}, "con": {},
	"por": {}, "para": {}, "se": {}, "que": {}, "es": {}, "son": {},
}

// extractFirst returns the first capture of the first matching pattern.
// Business document fields keep this cheaper single-pass mode.
func extractFirst(text string, patterns []*regexp.Regexp) string {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(text); m != nil {
			if len(m) > 1 {
				return strings.TrimSpace(m[1])
			}
			return strings.TrimSpace(m[0])
		}
	}
	return ""
}

// extractScored collects every match of every pattern of one field, cleans
// each candidate, drops the ones failing the field's structural check and
// returns the highest scoring survivor. Ties keep the earlier candidate,
// so pattern order doubles as priority.
func extractScored(text string, fp FieldPatterns, mode scoreMode) string {
	var best string
	var bestScore float64
	for _, p := range fp.Patterns {
		for _, m := range p.FindAllStringSubmatch(text, -1) {
			candidate := m[0]
			if len(m) > 1 {
				candidate = m[1]
			}
			candidate = cleanCandidate(candidate)

			var score float64
			switch mode {
			case scoreIdentity:
				if !validIdentityCandidate(fp.Field, candidate) {
					continue
				}
				score = identityScore(fp.Field, candidate)
			case scoreAcademic:
				if !validAcademicCandidate(candidate) {
					continue
				}
				score = academicScore(fp.Field, candidate)
			}
			if score > bestScore {
				bestScore = score
				best = candidate
			}
		}
	}

	minLen := 1
	if mode == scoreAcademic {
		minLen = 2
	}
	if runeLen(best) <= minLen {
		return ""
	}
	return best
}

func validIdentityCandidate(field, value string) bool {
	if value == "" {
		return false
	}
	switch {
	case field == "numero_dni":
		return dniShape.MatchString(value)
	case field == "sexo":
		return isSexToken(value)
	case strings.HasPrefix(field, "fecha"):
		return isDateLike(value)
	case field == "apellido" || field == "nombre":
		return upperNameShape.MatchString(value) && runeLen(value) >= 2
	}
	return true
}

func identityScore(field, value string) float64 {
	var score float64
	if n := runeLen(value); n >= 2 && n <= 50 {
		score += 1.0
	}
	switch {
	case field == "numero_dni" && dniShape.MatchString(value):
		score += 2.0
	case field == "sexo" && isSexToken(value):
		score += 2.0
	case strings.HasPrefix(field, "fecha") && isDateLike(value):
		score += 1.5
	case (field == "apellido" || field == "nombre") && upperNameShape.MatchString(value):
		score += 1.0
	}
	return score
}

func isSexToken(value string) bool {
	switch strings.ToUpper(value) {
	case "M", "F", "MASCULINO", "FEMENINO":
		return true
	}
	return false
}

func validAcademicCandidate(value string) bool {
	n := runeLen(value)
	if n < 2 || n > 200 {
		return false
	}
	if digitsPunctOnly.MatchString(value) {
		return false
	}
	if _, stop := academicStopwords[strings.ToLower(value)]; stop {
		return false
	}
	return true
}

func academicScore(field, value string) float64 {
	var score float64
	n := runeLen(value)
	if n >= 5 && n <= 100 {
		score += 1.0
	}
	if hasASCIILetter.MatchString(value) {
		score += 0.5
	}
	if float64(specialCharCount(value)) < float64(n)*0.3 {
		score += 0.5
	}
	switch {
	case field == "institucion" && institutionWord.MatchString(value):
		score += 1.0
	case field == "estudiante" && upperNameDots.MatchString(value):
		score += 1.0
	case strings.Contains(field, "fecha") && dateNumericAny.MatchString(value):
		score += 1.0
	}
	return score
}
