// Package nlp provides a rule-based entity recognizer for Spanish
// business documents. It is deliberately dependency free: there is no
// Spanish NER model worth shipping in-process, and the engine only
// needs coarse person, organization, place, date and money spans to
// overlay onto the pattern output.
package nlp

import (
	"context"
	"regexp"
	"strings"

	"github.com/tavalos/papeleo/internal/core/domain"
)

const maxEntitiesPerKind = 8

var (
	orgSuffixPattern = regexp.MustCompile(`[A-ZÁÉÍÓÚÑ][A-Za-zÁÉÍÓÚÑáéíóúñ&.' -]{1,60}?(?:S\.A\.S\.|S\.A\.|S\.R\.L\.|S\.H\.|SRL|SAS|LTDA)`)
	orgKeywordPattern = regexp.MustCompile(`(?:Universidad|Instituto|Ministerio|Facultad|Colegio|Banco|Municipalidad|Cooperativa)(?:[ \t]+(?:de|del|la|las|los|Nacional|Provincial|Tecnológica|Tecnológico)){0,3}(?:[ \t]+[A-ZÁÉÍÓÚÑ][A-Za-zÁÉÍÓÚÑáéíóúñ]+){0,4}`)

	personPattern = regexp.MustCompile(`[A-ZÁÉÍÓÚÑ][a-záéíóúñ]+(?:[ \t]+[A-ZÁÉÍÓÚÑ][a-záéíóúñ]+){1,3}`)

	dateSlashPattern = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`)
	dateISOPattern   = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
	dateLongPattern  = regexp.MustCompile(`(?i)\b\d{1,2}[ \t]+de[ \t]+(?:enero|febrero|marzo|abril|mayo|junio|julio|agosto|septiembre|octubre|noviembre|diciembre)[ \t]+de[ \t]+\d{4}\b`)

	moneyPattern = regexp.MustCompile(`(?:\$|ARS[ \t]?\$?)[ \t]?\d{1,3}(?:\.\d{3})*(?:,\d{1,2})?`)
)

// knownPlaces is checked before person candidates so "La Plata" or
// "Buenos Aires" never read as a name.
var knownPlaces = []string{
	"Ciudad Autónoma de Buenos Aires",
	"San Miguel de Tucumán",
	"Mar del Plata",
	"Buenos Aires",
	"La Plata",
	"Bariloche",
	"Córdoba",
	"Rosario",
	"Mendoza",
	"Neuquén",
	"Santa Fe",
	"Salta",
	"CABA",
}

// labelWords disqualify a person candidate whose first word is really a
// document label that happens to be capitalized.
var labelWords = map[string]bool{
	"factura": true, "recibo": true, "fecha": true, "total": true,
	"subtotal": true, "empresa": true, "cliente": true, "proveedor": true,
	"domicilio": true, "dirección": true, "importe": true, "monto": true,
	"comprobante": true, "original": true, "duplicado": true, "señor": true,
	"señora": true, "titular": true, "nacionalidad": true,
}

type Heuristic struct{}

func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

func (h *Heuristic) Recognize(_ context.Context, text string) (domain.Entities, error) {
	var ents domain.Entities

	taken := make([][2]int, 0, 16)

	for _, pattern := range []*regexp.Regexp{orgSuffixPattern, orgKeywordPattern} {
		for _, span := range pattern.FindAllStringIndex(text, -1) {
			if overlaps(taken, span[0], span[1]) {
				continue
			}
			taken = append(taken, [2]int{span[0], span[1]})
			ents.Organizaciones = appendUnique(ents.Organizaciones, strings.TrimSpace(text[span[0]:span[1]]))
		}
	}

	for _, place := range knownPlaces {
		offset := 0
		for {
			idx := strings.Index(text[offset:], place)
			if idx < 0 {
				break
			}
			start := offset + idx
			end := start + len(place)
			offset = end
			if overlaps(taken, start, end) {
				continue
			}
			taken = append(taken, [2]int{start, end})
			ents.Lugares = appendUnique(ents.Lugares, place)
			break
		}
	}

	for _, span := range personPattern.FindAllStringIndex(text, -1) {
		if overlaps(taken, span[0], span[1]) {
			continue
		}
		candidate := text[span[0]:span[1]]
		first := strings.ToLower(strings.Fields(candidate)[0])
		if labelWords[first] {
			continue
		}
		ents.Personas = appendUnique(ents.Personas, candidate)
	}

	for _, pattern := range []*regexp.Regexp{dateSlashPattern, dateLongPattern, dateISOPattern} {
		for _, match := range pattern.FindAllString(text, -1) {
			ents.Fechas = appendUnique(ents.Fechas, match)
		}
	}
	for _, match := range moneyPattern.FindAllString(text, -1) {
		ents.Dinero = appendUnique(ents.Dinero, match)
	}

	return ents, nil
}

func overlaps(taken [][2]int, start, end int) bool {
	for _, span := range taken {
		if start < span[1] && end > span[0] {
			return true
		}
	}
	return false
}

func appendUnique(list []string, value string) []string {
	if value == "" || len(list) >= maxEntitiesPerKind {
		return list
	}
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}
