package extraction

import (
	"regexp"
	"strings"

	"github.com/tavalos/papeleo/internal/core/domain"
)

// keywordGroup maps a canonical label to the phrases that imply it. Group
// order is priority order: the first group with a hit wins.
type keywordGroup struct {
	name     string
	keywords []string
}

var academicLevels = []keywordGroup{
	{"pregrado", []string{"pregrado", "undergraduate", "bachiller", "técnico", "tecnólogo", "técnico superior"}},
	{"posgrado", []string{"posgrado", "graduate", "especialización", "maestría", "doctorado", "postgrado"}},
	{"doctorado", []string{"doctorado", "phd", "doctor", "doctoral", "doctor en", "doctor of"}},
	{"maestría", []string{"maestría", "master", "magister", "especialización", "master en", "master of"}},
	{"especialización", []string{"especialización", "specialization", "especialista", "especialista en"}},
	{"técnico", []string{"técnico", "técnico superior", "técnico universitario", "technical", "technician"}},
	{"bachiller", []string{"bachiller", "bachillerato", "bachelor", "bachelor's", "licenciado", "licenciatura"}},
}

var studyAreas = []keywordGroup{
	{"ingeniería", []string{"ingeniería", "engineering", "ingeniero", "engineer"}},
	{"medicina", []string{"medicina", "medicine", "médico", "medical", "doctor"}},
	{"derecho", []string{"derecho", "law", "abogado", "lawyer", "jurídico", "legal"}},
	{"administración", []string{"administración", "administration", "administrador", "administrator", "gestión", "management"}},
	{"contaduría", []string{"contaduría", "accounting", "contador", "accountant", "contable"}},
	{"psicología", []string{"psicología", "psychology", "psicólogo", "psychologist"}},
	{"educación", []string{"educación", "education", "pedagogía", "pedagogy", "docente", "teacher"}},
	{"arquitectura", []string{"arquitectura", "architecture", "arquitecto", "architect"}},
	{"ciencias", []string{"ciencias", "sciences", "científico", "scientific", "ciencia"}},
	{"artes", []string{"artes", "arts", "artístico", "artistic", "arte", "art"}},
	{"informática", []string{"informática", "computing", "sistemas", "systems", "programación", "programming"}},
	{"economía", []string{"economía", "economics", "económico", "economic", "finanzas", "finance"}},
	{"comunicación", []string{"comunicación", "communication", "comunicador", "communicator"}},
	{"marketing", []string{"marketing", "mercadotecnia", "publicidad", "advertising"}},
}

var diplomaIndicators = []string{
	"diploma", "graduación", "graduation", "egresado", "graduate",
	"completado", "completed", "finalizado", "finished",
}

var licenciaIndicators = []string{
	"licencia", "license", "habilitación", "autorización", "permiso",
	"permit", "authorization", "habilitado", "enabled",
}

var institutionFiller = map[string]struct{}{
	"facultad": {}, "departamento": {}, "de": {}, "del": {}, "la": {}, "el": {},
	"university": {}, "institute": {}, "college": {},
}

var titleFiller = map[string]struct{}{
	"título": {}, "de": {}, "en": {}, "title": {}, "degree": {}, "diploma": {},
}

var (
	embeddedDNIDigits = regexp.MustCompile(`\d{7,8}`)
	embeddedDNILabel  = regexp.MustCompile(`(?i)DNI\s*:?\s*`)
	verificationLabel = regexp.MustCompile(`(?i)(?:código|código de verificación|verification code|verificar|verify|check)\s*:?\s*`)
	verificationShape = regexp.MustCompile(`^[A-Z0-9\-]{3,20}$`)
)

// extractTitulo runs the título table and refines the type to diploma or
// licencia when the wording says so.
func extractTitulo(lib *Library, text string) domain.CredentialFields {
	values := scoredValues(lib.FieldsFor(domain.TypeTitulo), text, scoreAcademic)

	f := domain.CredentialFields{
		Tipo:               domain.TypeTitulo,
		Institucion:        cleanInstitutionName(values["institucion"]),
		TituloOtorgado:     cleanAcademicTitle(values["titulo"]),
		NombreEstudiante:   cleanStudentName(values["estudiante"]),
		FechaEmision:       NormalizeDate(values["fecha_emision"]),
		NumeroRegistro:     values["numero_registro"],
		Calificacion:       values["calificacion"],
		Duracion:           values["duracion"],
		Modalidad:          values["modalidad"],
		NivelAcademico:     matchKeywordGroup(text, academicLevels),
		Creditos:           values["creditos"],
		HorasCursadas:      values["horas_cursadas"],
		DirectorTesis:      values["director_tesis"],
		Jurado:             splitCommittee(values["jurado"]),
		CodigoVerificacion: cleanVerificationCode(values["codigo_verificacion"]),
		Sede:               values["sede"],
		Facultad:           values["facultad"],
		Carrera:            values["carrera"],
		Resolucion:         values["resolucion"],
		NumeroDocumento:    values["numero_documento"],
		FechaVencimiento:   NormalizeDate(values["fecha_vencimiento"]),
		ValidezNacional:    values["validez_nacional"],
		Equivalencia:       values["equivalencia"],
	}
	if area := matchKeywordGroup(text, studyAreas); area != "" {
		f.AreaEstudio = titleCase(area)
	}
	if hasAnyKeyword(text, diplomaIndicators) {
		f.Tipo = domain.TypeDiploma
	} else if hasAnyKeyword(text, licenciaIndicators) {
		f.Tipo = domain.TypeLicencia
	}
	return f
}

// extractCertificado runs the certificate table. Course certificates carry
// the course name as the study area.
func extractCertificado(lib *Library, text string) domain.CredentialFields {
	values := scoredValues(lib.FieldsFor(domain.TypeCertificado), text, scoreAcademic)

	return domain.CredentialFields{
		Tipo:             domain.TypeCertificado,
		Institucion:      cleanInstitutionName(values["institucion"]),
		NombreEstudiante: cleanStudentName(values["estudiante"]),
		FechaEmision:     NormalizeDate(values["fecha_emision"]),
		Calificacion:     values["calificacion"],
		Duracion:         values["duracion_horas"],
		AreaEstudio:      values["curso_materia"],
		Instructor:       values["instructor"],
		HorasCursadas:    values["horas_cursadas"],
		NumeroRegistro:   values["numero_registro"],
		Sede:             values["sede"],
		Facultad:         values["facultad"],
		Carrera:          values["carrera"],
	}
}

func scoredValues(fields []FieldPatterns, text string, mode scoreMode) map[string]string {
	values := map[string]string{}
	for _, fp := range fields {
		if v := extractScored(text, fp, mode); v != "" {
			values[fp.Field] = v
		}
	}
	return values
}

func hasAnyKeyword(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func matchKeywordGroup(text string, groups []keywordGroup) string {
	lower := strings.ToLower(text)
	for _, g := range groups {
		for _, kw := range g.keywords {
			if strings.Contains(lower, kw) {
				return g.name
			}
		}
	}
	return ""
}

// cleanInstitutionName drops filler words and caps the name at four words.
func cleanInstitutionName(name string) string {
	var kept []string
	for _, w := range strings.Fields(name) {
		if _, filler := institutionFiller[strings.ToLower(w)]; !filler {
			kept = append(kept, w)
		}
	}
	if len(kept) > 4 {
		kept = kept[:4]
	}
	return strings.Join(kept, " ")
}

// cleanStudentName removes an embedded DNI number and its label.
func cleanStudentName(name string) string {
	name = embeddedDNIDigits.ReplaceAllString(name, "")
	name = embeddedDNILabel.ReplaceAllString(name, "")
	name = wsRun.ReplaceAllString(name, " ")
	return strings.TrimSpace(strings.Trim(name, ".,:;"))
}

func cleanAcademicTitle(title string) string {
	var kept []string
	for _, w := range strings.Fields(title) {
		if _, filler := titleFiller[strings.ToLower(w)]; !filler {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

// cleanVerificationCode strips the label and keeps the code only when it
// has the expected uppercase alphanumeric shape.
func cleanVerificationCode(code string) string {
	code = verificationLabel.ReplaceAllString(code, "")
	code = strings.TrimSpace(code)
	if !verificationShape.MatchString(code) {
		return ""
	}
	return code
}

// splitCommittee turns the captured jurado phrase into member names.
func splitCommittee(joined string) []string {
	if joined == "" {
		return nil
	}
	var members []string
	for _, member := range strings.Split(joined, ",") {
		member = strings.TrimSpace(member)
		if runeLen(member) > 2 {
			members = append(members, member)
		}
	}
	return members
}
