package extraction

import (
	"regexp"

	"github.com/tavalos/papeleo/internal/core/domain"
)

// FieldPatterns is the ordered list of regex alternatives that can yield
// one output field. Earlier patterns outrank later ones on score ties.
type FieldPatterns struct {
	Field    string
	Patterns []*regexp.Regexp
}

// typeSignature maps detection keywords to the document type they signal.
// Signatures are tested in order; the first keyword hit wins.
type typeSignature struct {
	docType  domain.DocumentType
	keywords []string
}

// identitySignature refines an identity document to its concrete variant.
type identitySignature struct {
	docType  domain.DocumentType
	patterns []*regexp.Regexp
}

// Library holds every compiled pattern table the extraction engine
// consults. It is built once at startup and never mutated afterwards; the
// same instance is shared by all requests.
type Library struct {
	fields         map[domain.DocumentType][]FieldPatterns
	signatures     []typeSignature
	identity       []identitySignature
	afipIndicators []string
}

func rx(expr string) *regexp.Regexp { return regexp.MustCompile(expr) }

// NewLibrary compiles the built-in pattern tables for every supported
// document type.
func NewLibrary() *Library {
	identity := identityPatterns()
	titulo := tituloPatterns()

	fields := map[domain.DocumentType][]FieldPatterns{
		domain.TypeFactura:     invoicePatterns(),
		domain.TypeRecibo:      receiptPatterns(),
		domain.TypeFacturaAFIP: afipPatterns(),
		domain.TypeDNI:         identity,
		domain.TypeTitulo:      titulo,
		domain.TypeCertificado: certificadoPatterns(titulo),
	}
	// Identity and academic variants share their family tables.
	fields[domain.TypeDNITarjeta] = identity
	fields[domain.TypeDNILibreta] = identity
	fields[domain.TypePasaporte] = identity
	fields[domain.TypeDiploma] = titulo
	fields[domain.TypeLicencia] = titulo

	return &Library{
		fields:         fields,
		signatures:     typeSignatures(),
		identity:       identitySignatures(),
		afipIndicators: afipIndicators(),
	}
}

// FieldsFor returns the ordered field tables of a document type, or nil
// when the type has no pattern-based table.
func (l *Library) FieldsFor(t domain.DocumentType) []FieldPatterns {
	return l.fields[t]
}

// PatternsFor returns the pattern alternatives for one field of one
// document type. Unknown combinations yield nil, never an error.
func (l *Library) PatternsFor(t domain.DocumentType, field string) []*regexp.Regexp {
	for _, fp := range l.fields[t] {
		if fp.Field == field {
			return fp.Patterns
		}
	}
	return nil
}

func invoicePatterns() []FieldPatterns {
	return []FieldPatterns{
		{Field: "numero_factura", Patterns: []*regexp.Regexp{
			rx(`(?i)(?:factura|invoice|fact\.|fac\.)\s*(?:n[°º]?|#|num\.?|número)?\s*[:\-]?\s*([A-Z]?\d{4,}[\-/]?\d*)`),
			rx(`(?i)(?:n[°º]|#)\s*(\d{4,}[\-/]?\d*)`),
			rx(`(?i)(\d{4}-\d{8})`),
		}},
		{Field: "receptor", Patterns: []*regexp.Regexp{
			rx(`(?i)(?:cliente|receptor|señor(?:es)?|sra?\.|destinatario)[:\s]+([^\n]+)`),
			rx(`(?i)(?:a nombre de|para)[:\s]+([^\n]+)`),
		}},
		{Field: "cuit", Patterns: []*regexp.Regexp{
			rx(`(?i)(?:cuit|cuil)[:\s]*(\d{2}-\d{8}-\d{1})`),
			rx(`(?i)(?:cuit|cuil)[:\s]*(\d{11})`),
		}},
		{Field: "condicion_iva", Patterns: []*regexp.Regexp{
			rx(`(?i)(responsable inscripto)`),
			rx(`(?i)(monotributo)`),
			rx(`(?i)(exento)`),
			rx(`(?i)(consumidor final)`),
		}},
	}
}

func receiptPatterns() []FieldPatterns {
	invoice := invoicePatterns()
	return []FieldPatterns{
		{Field: "numero_recibo", Patterns: invoice[0].Patterns},
		{Field: "receptor", Patterns: invoice[1].Patterns},
		{Field: "monto", Patterns: []*regexp.Regexp{
			rx(`(?i)(?:total|importe total|monto total)[:\s]*\$?\s*(\d{1,3}(?:[.,]\d{3})*(?:[.,]\d{2})?)`),
		}},
		{Field: "concepto", Patterns: []*regexp.Regexp{
			rx(`(?i)(?:concepto|por)[:\s]+([^\n]+)`),
			rx(`(?i)(?:pago de|abono de)[:\s]+([^\n]+)`),
		}},
	}
}

func identityPatterns() []FieldPatterns {
	return []FieldPatterns{
		{Field: "numero_dni", Patterns: []*regexp.Regexp{
			rx(`(?im)DNI\s*:?\s*(\d{7,8})`),
			rx(`(?im)(\d{7,8})\s*DNI`),
			rx(`(?im)Documento\s*:?\s*(\d{7,8})`),
			rx(`(?im)(\d{7,8})\s*Documento`),
			rx(`(?im)N[º°]?\s*:?\s*(\d{7,8})`),
			rx(`(?im)(\d{7,8})\s*N[º°]?`),
		}},
		{Field: "apellido", Patterns: []*regexp.Regexp{
			rx(`(?im)Apellido\s*:?\s*([A-ZÁÉÍÓÚÑ\s]+)`),
			rx(`(?im)Surname\s*:?\s*([A-ZÁÉÍÓÚÑ\s]+)`),
			rx(`(?im)([A-ZÁÉÍÓÚÑ\s]+)\s*Apellido`),
			rx(`(?im)([A-ZÁÉÍÓÚÑ\s]+)\s*Surname`),
		}},
		{Field: "nombre", Patterns: []*regexp.Regexp{
			rx(`(?im)Nombre\s*:?\s*([A-ZÁÉÍÓÚÑ\s]+)`),
			rx(`(?im)Name\s*:?\s*([A-ZÁÉÍÓÚÑ\s]+)`),
			rx(`(?im)([A-ZÁÉÍÓÚÑ\s]+)\s*Nombre`),
			rx(`(?im)([A-ZÁÉÍÓÚÑ\s]+)\s*Name`),
			rx(`(?im)Nombres\s*:?\s*([A-ZÁÉÍÓÚÑ\s]+)`),
		}},
		{Field: "sexo", Patterns: []*regexp.Regexp{
			rx(`(?im)Sexo\s*:?\s*([MF])`),
			rx(`(?im)Gender\s*:?\s*([MF])`),
			rx(`(?im)([MF])\s*Sexo`),
			rx(`(?im)([MF])\s*Gender`),
			rx(`(?im)MASCULINO|FEMENINO`),
		}},
		{Field: "fecha_nacimiento", Patterns: []*regexp.Regexp{
			rx(`(?im)Fecha\s+de\s+Nacimiento\s*:?\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
			rx(`(?im)Birth\s+Date\s*:?\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
			rx(`(?im)Nacimiento\s*:?\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
			rx(`(?im)(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})\s*Nacimiento`),
			rx(`(?im)(\d{1,2}\s+de\s+\w+\s+de\s+\d{4})`),
		}},
		{Field: "lugar_nacimiento", Patterns: []*regexp.Regexp{
			rx(`(?im)Lugar\s+de\s+Nacimiento\s*:?\s*([A-ZÁÉÍÓÚÑ\s,\.]+)`),
			rx(`(?im)Birth\s+Place\s*:?\s*([A-ZÁÉÍÓÚÑ\s,\.]+)`),
			rx(`(?im)Nacido\s+en\s*:?\s*([A-ZÁÉÍÓÚÑ\s,\.]+)`),
			rx(`(?im)([A-ZÁÉÍÓÚÑ\s,\.]+)\s*Nacimiento`),
		}},
		{Field: "nacionalidad", Patterns: []*regexp.Regexp{
			rx(`(?im)Nacionalidad\s*:?\s*([A-ZÁÉÍÓÚÑ\s]+)`),
			rx(`(?im)Nationality\s*:?\s*([A-ZÁÉÍÓÚÑ\s]+)`),
			rx(`(?im)([A-ZÁÉÍÓÚÑ\s]+)\s*Nacionalidad`),
			rx(`(?im)ARGENTINO|ARGENTINA`),
		}},
		{Field: "fecha_emision", Patterns: []*regexp.Regexp{
			rx(`(?im)Fecha\s+de\s+Emisión\s*:?\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
			rx(`(?im)Issue\s+Date\s*:?\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
			rx(`(?im)Emisión\s*:?\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
			rx(`(?im)(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})\s*Emisión`),
		}},
		{Field: "fecha_vencimiento", Patterns: []*regexp.Regexp{
			rx(`(?im)Fecha\s+de\s+Vencimiento\s*:?\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
			rx(`(?im)Expiry\s+Date\s*:?\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
			rx(`(?im)Vencimiento\s*:?\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
			rx(`(?im)Válido\s+hasta\s*:?\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
		}},
		{Field: "lugar_emision", Patterns: []*regexp.Regexp{
			rx(`(?im)Lugar\s+de\s+Emisión\s*:?\s*([A-ZÁÉÍÓÚÑ\s,\.]+)`),
			rx(`(?im)Issue\s+Place\s*:?\s*([A-ZÁÉÍÓÚÑ\s,\.]+)`),
			rx(`(?im)Emitido\s+en\s*:?\s*([A-ZÁÉÍÓÚÑ\s,\.]+)`),
			rx(`(?im)([A-ZÁÉÍÓÚÑ\s,\.]+)\s*Emisión`),
		}},
		{Field: "numero_tramite", Patterns: []*regexp.Regexp{
			rx(`(?im)N[º°]?\s+de\s+Trámite\s*:?\s*([A-Z0-9\-]+)`),
			rx(`(?im)Trámite\s*:?\s*([A-Z0-9\-]+)`),
			rx(`(?im)Tramite\s*:?\s*([A-Z0-9\-]+)`),
			rx(`(?im)([A-Z0-9\-]+)\s*Trámite`),
		}},
		{Field: "codigo_verificacion", Patterns: []*regexp.Regexp{
			rx(`(?im)Código\s+de\s+Verificación\s*:?\s*([A-Z0-9]+)`),
			rx(`(?im)Verification\s+Code\s*:?\s*([A-Z0-9]+)`),
			rx(`(?im)Código\s*:?\s*([A-Z0-9]+)`),
			rx(`(?im)Code\s*:?\s*([A-Z0-9]+)`),
		}},
		{Field: "domicilio", Patterns: []*regexp.Regexp{
			rx(`(?im)Domicilio\s*:?\s*([A-ZÁÉÍÓÚÑ0-9\s,\.\-]+)`),
			rx(`(?im)Address\s*:?\s*([A-ZÁÉÍÓÚÑ0-9\s,\.\-]+)`),
			rx(`(?im)Residencia\s*:?\s*([A-ZÁÉÍÓÚÑ0-9\s,\.\-]+)`),
			rx(`(?im)([A-ZÁÉÍÓÚÑ0-9\s,\.\-]+)\s*Domicilio`),
		}},
		{Field: "estado_civil", Patterns: []*regexp.Regexp{
			rx(`(?im)Estado\s+Civil\s*:?\s*([A-ZÁÉÍÓÚÑ\s]+)`),
			rx(`(?im)Marital\s+Status\s*:?\s*([A-ZÁÉÍÓÚÑ\s]+)`),
			rx(`(?im)([A-ZÁÉÍÓÚÑ\s]+)\s*Estado\s+Civil`),
			rx(`(?im)SOLTERO|SOLTERA|CASADO|CASADA|DIVORCIADO|DIVORCIADA|VIUDO|VIUDA`),
		}},
		{Field: "profesion", Patterns: []*regexp.Regexp{
			rx(`(?im)Profesión\s*:?\s*([A-ZÁÉÍÓÚÑ\s,\.]+)`),
			rx(`(?im)Occupation\s*:?\s*([A-ZÁÉÍÓÚÑ\s,\.]+)`),
			rx(`(?im)([A-ZÁÉÍÓÚÑ\s,\.]+)\s*Profesión`),
			rx(`(?im)([A-ZÁÉÍÓÚÑ\s,\.]+)\s*Occupation`),
		}},
	}
}

func tituloPatterns() []FieldPatterns {
	return []FieldPatterns{
		{Field: "institucion", Patterns: []*regexp.Regexp{
			rx(`(?im)^([A-ZÁÉÍÓÚÑ\s\.]{5,50})\s+(?:universidad|instituto|colegio|escuela|university|institute|college|school)`),
			rx(`(?im)(?:universidad|instituto|colegio|escuela|university|institute|college|school)\s+([A-ZÁÉÍÓÚÑ\s\.]{5,50})`),
			rx(`(?im)^([A-ZÁÉÍÓÚÑ\s\.]{5,50})\s+(?:de|del|of|of the)`),
		}},
		{Field: "titulo", Patterns: []*regexp.Regexp{
			rx(`(?im)(?:título|degree|diploma|certificado|title)\s+(?:de|en|in|of)\s+([A-ZÁÉÍÓÚÑ\s\.]{2,50})`),
			rx(`(?im)(?:bachiller|licenciado|ingeniero|doctor|magister|master|especialista|bachelor|engineer|specialist)\s+(?:en|in|de|of)\s+([A-ZÁÉÍÓÚÑ\s\.]{2,50})`),
			rx(`(?im)(?:bachelor|master|doctor|engineer|specialist)\s+(?:of|in|en)\s+([A-ZÁÉÍÓÚÑ\s\.]{2,50})`),
			rx(`(?im)(?:carrera|career|programa|program)\s+(?:de|en|in|of)\s+([A-ZÁÉÍÓÚÑ\s\.]{2,50})`),
		}},
		{Field: "estudiante", Patterns: []*regexp.Regexp{
			rx(`(?im)(?:estudiante|alumno|student|graduate|egresado)\s*:?\s*([A-ZÁÉÍÓÚÑ\s\.]{3,50})(?:\s+DNI|\s*$)`),
			rx(`(?im)(?:nombre|name|apellido|surname)\s*:?\s*([A-ZÁÉÍÓÚÑ\s\.]{3,50})(?:\s+DNI|\s*$)`),
			rx(`(?im)([A-ZÁÉÍÓÚÑ\s\.]{3,50})\s+(?:estudiante|alumno|student|egresado)`),
			rx(`(?im)(?:señor|señora|sr\.|sra\.|mr\.|mrs\.|ms\.)\s+([A-ZÁÉÍÓÚÑ\s\.]{3,50})(?:\s+DNI|\s*$)`),
			rx(`(?im)(?:se otorga|se certifica|se confiere)\s+(?:a|al|a la)\s+([A-ZÁÉÍÓÚÑ\s\.]{3,50})(?:\s+DNI|\s*$)`),
		}},
		{Field: "fecha_emision", Patterns: []*regexp.Regexp{
			rx(`(?im)(?:fecha|date|issued|emisión|otorgado|granted)\s*:?\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
			rx(`(?im)(?:fecha|date|issued|emisión|otorgado|granted)\s*:?\s*(\d{1,2}\s+de\s+\w+\s+de\s+\d{4})`),
			rx(`(?im)(?:el|on)\s+(\d{1,2}\s+de\s+\w+\s+de\s+\d{4})`),
		}},
		{Field: "numero_registro", Patterns: []*regexp.Regexp{
			rx(`(?im)(?:registro|record|número|number|nro|nº|#)\s*:?\s*([A-Z0-9\-\.]{3,20})`),
			rx(`(?im)(?:código|code|cod\.)\s*:?\s*([A-Z0-9\-\.]{3,20})`),
			rx(`(?im)(?:expediente|file|exp\.)\s*:?\s*([A-Z0-9\-\.]{3,20})`),
			rx(`(?im)(?:matrícula|matricula|matr\.)\s*:?\s*([A-Z0-9\-\.]{3,20})`),
		}},
		{Field: "calificacion", Patterns: []*regexp.Regexp{
			rx(`(?im)(?:calificación|grade|nota|score|puntaje|rating)\s*:?\s*([A-Z0-9\.,]+)`),
			rx(`(?im)(?:promedio|average|gpa|media)\s*:?\s*([0-9\.,]+)`),
			rx(`(?im)(?:con un promedio|with an average|average of)\s+([0-9\.,]+)`),
			rx(`(?im)(?:aprobado|approved|passed|reprobado|failed|rejected)`),
		}},
		{Field: "duracion", Patterns: []*regexp.Regexp{
			rx(`(?im)(?:duración|duration|período|period|tiempo|time)\s*:?\s*([A-Z0-9\s]+)`),
			rx(`(?im)(\d+)\s*(?:años|years|año|year|meses|months|mes|month|semestres|semesters|semestre|semester)`),
			rx(`(?im)(?:carga horaria|workload|horas totales|total hours)\s*:?\s*(\d+)`),
			rx(`(?im)(?:durante|during|for)\s+(\d+)\s*(?:años|years|año|year)`),
		}},
		{Field: "modalidad", Patterns: []*regexp.Regexp{
			rx(`(?im)(?:modalidad|mode|formato|format|tipo|type)\s*:?\s*([A-ZÁÉÍÓÚÑ\s]+)`),
			rx(`(?im)(?:presencial|virtual|online|distancia|distance|blended|híbrido|hybrid)\s*([A-ZÁÉÍÓÚÑ\s]*)`),
		}},
		{Field: "sede", Patterns: []*regexp.Regexp{
			rx(`(?im)(?:sede|campus|location|ubicación)\s*:?\s*([A-ZÁÉÍÓÚÑ\s\.]+)`),
			rx(`(?im)(?:ciudad|city|provincia|province|estado|state)\s*:?\s*([A-ZÁÉÍÓÚÑ\s\.]+)`),
		}},
		{Field: "facultad", Patterns: []*regexp.Regexp{
			rx(`(?im)(?:facultad|faculty|departamento|department)\s*:?\s*([A-ZÁÉÍÓÚÑ\s\.]+)`),
			rx(`(?im)(?:de la facultad|of the faculty|del departamento|of the department)\s+([A-ZÁÉÍÓÚÑ\s\.]+)`),
		}},
		{Field: "carrera", Patterns: []*regexp.Regexp{
			rx(`(?im)(?:carrera|career|programa|program|especialidad|specialty)\s*:?\s*([A-ZÁÉÍÓÚÑ\s\.]+)`),
			rx(`(?im)(?:en la carrera|in the career|del programa|of the program)\s+([A-ZÁÉÍÓÚÑ\s\.]+)`),
		}},
		{Field: "resolucion", Patterns: []*regexp.Regexp{
			rx(`(?im)(?:resolución|resolution|res\.|resol\.)\s*:?\s*([A-Z0-9\-\/\.]+)`),
			rx(`(?im)(?:expediente|file|exp\.)\s*:?\s*([A-Z0-9\-\/\.]+)`),
		}},
		{Field: "creditos", Patterns: []*regexp.Regexp{
			rx(`(?im)(\d+)\s*(?:créditos|credits|cr\.?)`),
			rx(`(?im)(?:total de|total of)\s+(\d+)\s*(?:créditos|credits)`),
			rx(`(?im)(?:carga académica|academic load)\s*:?\s*(\d+)\s*(?:créditos|credits)`),
		}},
		{Field: "horas_cursadas", Patterns: []*regexp.Regexp{
			rx(`(?im)(\d+)\s*(?:horas|hours|h\.?|hs\.?)`),
			rx(`(?im)(?:total de|total of)\s+(\d+)\s*(?:horas|hours)`),
			rx(`(?im)(?:carga horaria|workload)\s*:?\s*(\d+)\s*(?:horas|hours)`),
		}},
		{Field: "director_tesis", Patterns: []*regexp.Regexp{
			rx(`(?im)(?:director|director de tesis|thesis director|tutor|advisor|supervisor)\s*:?\s*([A-ZÁÉÍÓÚÑ\s\.]+)`),
			rx(`(?im)(?:dirigido por|directed by|supervisado por|supervised by)\s+([A-ZÁÉÍÓÚÑ\s\.]+)`),
			rx(`(?im)(?:bajo la dirección de|under the direction of)\s+([A-ZÁÉÍÓÚÑ\s\.]+)`),
		}},
		{Field: "jurado", Patterns: []*regexp.Regexp{
			rx(`(?im)(?:jurado|committee|evaluadores|evaluators|tribunal)\s*:?\s*([A-ZÁÉÍÓÚÑ\s,\.]+)`),
			rx(`(?im)(?:evaluador|evaluator|member|miembro)\s*:?\s*([A-ZÁÉÍÓÚÑ\s,\.]+)`),
			rx(`(?im)(?:integrado por|composed of|formado por|formed by)\s+([A-ZÁÉÍÓÚÑ\s,\.]+)`),
		}},
		{Field: "codigo_verificacion", Patterns: []*regexp.Regexp{
			rx(`(?im)(?:código|código de verificación|verification code|verificar|verify|check)\s*:?\s*([A-Z0-9\-]+)`),
			rx(`(?im)(?:para verificar|to verify|verificación|verification)\s*:?\s*([A-Z0-9\-]+)`),
			rx(`(?im)(?:código|code)\s+([A-Z0-9\-]{6,})`),
		}},
		{Field: "numero_documento", Patterns: []*regexp.Regexp{
			rx(`(?im)(?:dni|documento|document|id|cedula|cédula)\s*:?\s*(\d{7,8})`),
			rx(`(?im)(?:número de documento|document number)\s*:?\s*(\d{7,8})`),
			rx(`(?im)(\d{7,8})\s*(?:dni|documento|document)`),
		}},
		{Field: "fecha_vencimiento", Patterns: []*regexp.Regexp{
			rx(`(?im)(?:vencimiento|expiration|expires|válido hasta|valid until)\s*:?\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
			rx(`(?im)(?:vencimiento|expiration|expires|válido hasta|valid until)\s*:?\s*(\d{1,2}\s+de\s+\w+\s+de\s+\d{4})`),
		}},
		{Field: "validez_nacional", Patterns: []*regexp.Regexp{
			rx(`(?im)(?:validez nacional|national validity|válido en|valid in)\s*:?\s*([A-ZÁÉÍÓÚÑ\s]+)`),
			rx(`(?im)(?:reconocido en|recognized in)\s+([A-ZÁÉÍÓÚÑ\s]+)`),
		}},
		{Field: "equivalencia", Patterns: []*regexp.Regexp{
			rx(`(?im)(?:equivalente a|equivalent to|equivale a|equals to)\s+([A-ZÁÉÍÓÚÑ\s\.]+)`),
			rx(`(?im)(?:equivalencia|equivalence)\s*:?\s*([A-ZÁÉÍÓÚÑ\s\.]+)`),
		}},
	}
}

func certificadoPatterns(titulo []FieldPatterns) []FieldPatterns {
	shared := func(field string) []*regexp.Regexp {
		for _, fp := range titulo {
			if fp.Field == field {
				return fp.Patterns
			}
		}
		return nil
	}
	return []FieldPatterns{
		{Field: "institucion", Patterns: []*regexp.Regexp{
			rx(`(?im)(?:certifica|certify|certificate|certificado)\s+([A-ZÁÉÍÓÚÑ\s\.]+)`),
			rx(`(?im)([A-ZÁÉÍÓÚÑ\s\.]+)\s+(?:certifica|certify|certificate)`),
			rx(`(?im)(?:por la presente|hereby)\s+([A-ZÁÉÍÓÚÑ\s\.]+)`),
		}},
		{Field: "estudiante", Patterns: []*regexp.Regexp{
			rx(`(?im)(?:estudiante|alumno|student|persona|person|participante|participant)\s*:?\s*([A-ZÁÉÍÓÚÑ\s\.]+)`),
			rx(`(?im)([A-ZÁÉÍÓÚÑ\s\.]+)\s+(?:estudiante|alumno|student|participante)`),
			rx(`(?im)(?:señor|señora|sr\.|sra\.|mr\.|mrs\.|ms\.)\s+([A-ZÁÉÍÓÚÑ\s\.]+)`),
		}},
		{Field: "curso_materia", Patterns: []*regexp.Regexp{
			rx(`(?im)(?:curso|materia|subject|course|capacitación|training|seminario|seminar)\s*:?\s*([A-ZÁÉÍÓÚÑ\s\.]+)`),
			rx(`(?im)(?:asignatura|discipline|field|área|area)\s*:?\s*([A-ZÁÉÍÓÚÑ\s\.]+)`),
			rx(`(?im)(?:en el curso|in the course|del seminario|of the seminar)\s+([A-ZÁÉÍÓÚÑ\s\.]+)`),
		}},
		{Field: "fecha_emision", Patterns: shared("fecha_emision")},
		{Field: "duracion_horas", Patterns: []*regexp.Regexp{
			rx(`(?im)(\d+)\s*(?:horas|hours|h\.?|hs\.?)`),
			rx(`(?im)(?:duración|duration|carga horaria|workload)\s*:?\s*(\d+)\s*(?:horas|hours|h\.?)`),
			rx(`(?im)(?:total de|total of)\s+(\d+)\s*(?:horas|hours|h\.?)`),
		}},
		{Field: "calificacion", Patterns: []*regexp.Regexp{
			rx(`(?im)(?:calificación|grade|nota|score|resultado|result)\s*:?\s*([A-Z0-9\.,]+)`),
			rx(`(?im)(?:aprobado|approved|passed|reprobado|failed|rejected|completado|completed)`),
			rx(`(?im)(?:promedio|average|media)\s*:?\s*([0-9\.,]+)`),
		}},
		{Field: "instructor", Patterns: []*regexp.Regexp{
			rx(`(?im)(?:instructor|teacher|profesor|professor|docente|facilitador|facilitator)\s*:?\s*([A-ZÁÉÍÓÚÑ\s\.]+)`),
			rx(`(?im)(?:a cargo de|in charge of|dirigido por|directed by)\s+([A-ZÁÉÍÓÚÑ\s\.]+)`),
		}},
		{Field: "numero_registro", Patterns: []*regexp.Regexp{
			rx(`(?im)(?:registro|record|número|number|nro|nº|#)\s*:?\s*([A-Z0-9\-\.]+)`),
			rx(`(?im)(?:código|code|cod\.)\s*:?\s*([A-Z0-9\-\.]+)`),
		}},
		{Field: "horas_cursadas", Patterns: shared("horas_cursadas")},
		{Field: "sede", Patterns: shared("sede")},
		{Field: "facultad", Patterns: shared("facultad")},
		{Field: "carrera", Patterns: shared("carrera")},
	}
}

func afipPatterns() []FieldPatterns {
	return []FieldPatterns{
		{Field: "punto_venta", Patterns: []*regexp.Regexp{
			rx(`(?im)Punto\s+de\s+Venta:\s*(\d{4,5})`),
			rx(`(?im)Pto\.?\s*Vta\.?:\s*(\d{4,5})`),
			rx(`(?im)P\.V\.:\s*(\d{4,5})`),
			rx(`(?im)PV:\s*(\d{4,5})`),
		}},
		{Field: "numero_comprobante", Patterns: []*regexp.Regexp{
			rx(`(?im)Comp\.?\s*Nro\.?:\s*(\d+)`),
			rx(`(?im)Nro\.?\s*Comp\.?:\s*(\d+)`),
			rx(`(?im)Número:\s*(\d+)`),
			rx(`(?im)Numero:\s*(\d+)`),
		}},
		{Field: "fecha_emision", Patterns: []*regexp.Regexp{
			rx(`(?im)Fecha\s+de\s+Emisión:\s*(\d{1,2}/\d{1,2}/\d{4})`),
			rx(`(?im)Fecha\s+Emisión:\s*(\d{1,2}/\d{1,2}/\d{4})`),
			rx(`(?im)Emisión:\s*(\d{1,2}/\d{1,2}/\d{4})`),
			rx(`(?im)Fecha:\s*(\d{1,2}/\d{1,2}/\d{4})`),
		}},
		{Field: "fecha_vencimiento", Patterns: []*regexp.Regexp{
			rx(`(?im)Fecha\s+de\s+Vto\.?\s*para\s+el\s+pago:\s*(\d{1,2}/\d{1,2}/\d{4})`),
			rx(`(?im)Vto\.?\s*para\s+el\s+pago:\s*(\d{1,2}/\d{1,2}/\d{4})`),
			rx(`(?im)Fecha\s+de\s+Vencimiento:\s*(\d{1,2}/\d{1,2}/\d{4})`),
			rx(`(?im)Vencimiento:\s*(\d{1,2}/\d{1,2}/\d{4})`),
		}},
		{Field: "cuit", Patterns: []*regexp.Regexp{
			rx(`(\d{2}-\d{8}-\d{1})`),
			rx(`(\d{2}\.\d{8}\.\d{1})`),
			rx(`(\d{11})`),
		}},
		{Field: "razon_social_emisor", Patterns: []*regexp.Regexp{
			rx(`(?im)Razón\s+Social:\s*([^\n\r]+?)(?:\n|Domicilio|CUIT|$)`),
			rx(`(?im)Razón\s+Social:\s*([^\n\r]+)`),
			rx(`(?im)Razon\s+Social:\s*([^\n\r]+)`),
		}},
		{Field: "domicilio_comercial", Patterns: []*regexp.Regexp{
			rx(`(?im)Domicilio\s+Comercial:\s*([^\n\r]+?)(?:\n|Condición|CUIT|$)`),
			rx(`(?im)Domicilio\s+Comercial:\s*([^\n\r]+)`),
			rx(`(?im)Domicilio:\s*([^\n\r]+)`),
		}},
		{Field: "condicion_iva_emisor", Patterns: []*regexp.Regexp{
			rx(`(?im)Condición\s+frente\s+al\s+IVA:\s*([^\n\r]+?)(?:\n|Período|CUIT|$)`),
			rx(`(?im)Condición\s+IVA:\s*([^\n\r]+)`),
			rx(`(?im)Condicion\s+IVA:\s*([^\n\r]+)`),
		}},
		{Field: "periodo_desde", Patterns: []*regexp.Regexp{
			rx(`(?im)Período\s+Facturado\s+Desde:\s*(\d{1,2}/\d{1,2}/\d{4})`),
			rx(`(?im)Periodo\s+Desde:\s*(\d{1,2}/\d{1,2}/\d{4})`),
			rx(`(?im)Desde:\s*(\d{1,2}/\d{1,2}/\d{4})`),
		}},
		{Field: "periodo_hasta", Patterns: []*regexp.Regexp{
			rx(`(?im)Hasta:\s*(\d{1,2}/\d{1,2}/\d{4})`),
			rx(`(?im)Hasta\s+el:\s*(\d{1,2}/\d{1,2}/\d{4})`),
		}},
		{Field: "razon_social_comprador", Patterns: []*regexp.Regexp{
			rx(`(?im)Apellido\s+y\s+Nombre\s*/\s*Razón\s+Social:\s*([^\n\r]+?)(?:\n|Domicilio|CUIT|$)`),
			rx(`(?im)Razón\s+Social:\s*([^\n\r]+?)(?:\n|Domicilio|CUIT|$)`),
			rx(`(?im)Nombre\s+y\s+Apellido:\s*([^\n\r]+)`),
			rx(`(?im)Cliente:\s*([^\n\r]+)`),
		}},
		{Field: "domicilio_comprador", Patterns: []*regexp.Regexp{
			rx(`(?im)Domicilio:\s*([^\n\r]+?)(?:\n|CUIT|Condición|$)`),
			rx(`(?im)Dirección:\s*([^\n\r]+)`),
			rx(`(?im)Dir\.:\s*([^\n\r]+)`),
		}},
		{Field: "condicion_iva_comprador", Patterns: []*regexp.Regexp{
			rx(`(?im)Condición\s+frente\s+al\s+IVA:\s*([^\n\r]+?)(?:\n|Condición|CUIT|$)`),
			rx(`(?im)Condición\s+IVA:\s*([^\n\r]+)`),
			rx(`(?im)IVA:\s*([^\n\r]+)`),
		}},
		{Field: "condicion_venta", Patterns: []*regexp.Regexp{
			rx(`(?im)Condición\s+de\s+venta:\s*([^\n\r]+?)(?:\n|CUIT|Ingresos|$)`),
			rx(`(?im)Condicion\s+venta:\s*([^\n\r]+)`),
			rx(`(?im)Forma\s+de\s+pago:\s*([^\n\r]+)`),
		}},
		{Field: "ingresos_brutos", Patterns: []*regexp.Regexp{
			rx(`(?im)Ingresos\s+Brutos:\s*([^\n\r]+?)(?:\n|Fecha|CUIT|$)`),
			rx(`(?im)Ing\.\s+Brutos:\s*([^\n\r]+)`),
			rx(`(?im)IIBB:\s*([^\n\r]+)`),
		}},
		{Field: "fecha_inicio_actividades", Patterns: []*regexp.Regexp{
			rx(`(?im)Fecha\s+de\s+Inicio\s+de\s+Actividades:\s*(\d{1,2}/\d{1,2}/\d{4})`),
			rx(`(?im)Inicio\s+Actividades:\s*(\d{1,2}/\d{1,2}/\d{4})`),
			rx(`(?im)Fecha\s+Inicio:\s*(\d{1,2}/\d{1,2}/\d{4})`),
		}},
		{Field: "subtotal", Patterns: []*regexp.Regexp{
			rx(`(?im)Subtotal:\s*\$?\s*([\d,\.]+)`),
			rx(`(?im)Sub\s+Total:\s*\$?\s*([\d,\.]+)`),
			rx(`(?im)Subtotal\s+Neto:\s*\$?\s*([\d,\.]+)`),
		}},
		{Field: "importe_otros_tributos", Patterns: []*regexp.Regexp{
			rx(`(?im)Importe\s+Otros\s+Tributos:\s*\$?\s*([\d,\.]+)`),
			rx(`(?im)Otros\s+Tributos:\s*\$?\s*([\d,\.]+)`),
			rx(`(?im)Tributos:\s*\$?\s*([\d,\.]+)`),
		}},
		{Field: "importe_total", Patterns: []*regexp.Regexp{
			rx(`(?im)Importe\s+Total:\s*\$?\s*([\d,\.]+)`),
			rx(`(?im)Total:\s*\$?\s*([\d,\.]+)`),
			rx(`(?im)TOTAL:\s*\$?\s*([\d,\.]+)`),
		}},
		{Field: "cae_numero", Patterns: []*regexp.Regexp{
			rx(`(?im)CAE\s+N°:\s*(\d{14})`),
			rx(`(?im)CAE\s+N°:\s*(\d{13,15})`),
			rx(`(?im)CAE:\s*(\d{14})`),
			rx(`(?im)CAE:\s*(\d{13,15})`),
			rx(`(?im)C\.A\.E\.\s*N°:\s*(\d{14})`),
			rx(`(?im)C\.A\.E\.\s*N°:\s*(\d{13,15})`),
			rx(`(?im)Código\s+de\s+Autorización\s+Electrónica:\s*(\d{14})`),
			rx(`(?im)CAE\s*Nro:\s*(\d{14})`),
			rx(`(?im)CAE\s*Nro:\s*(\d{13,15})`),
			rx(`(?im)CAE\s*[N°n°]\s*:\s*([0-9\s]{13,16})`),
			rx(`(?im)CAE\s*[N°n°]\s*:\s*([0-9\-]{13,16})`),
		}},
		{Field: "fecha_vencimiento_cae", Patterns: []*regexp.Regexp{
			rx(`(?im)Fecha\s+de\s+Vto\.?\s*de\s+CAE:\s*(\d{1,2}/\d{1,2}/\d{4})`),
			rx(`(?im)Vto\.?\s+CAE:\s*(\d{1,2}/\d{1,2}/\d{4})`),
			rx(`(?im)CAE\s+Vto\.?:\s*(\d{1,2}/\d{1,2}/\d{4})`),
		}},
		{Field: "pagina_info", Patterns: []*regexp.Regexp{
			rx(`(?im)Pág\.?\s*(\d+)/(\d+)`),
			rx(`(?im)Pag\.?\s*(\d+)/(\d+)`),
			rx(`(?im)Página\s*(\d+)/(\d+)`),
			rx(`(?im)Page\s*(\d+)/(\d+)`),
		}},
	}
}

// typeSignatures lists the keyword signatures in detection priority order.
// Earlier signatures win, so the narrow fiscal words come before the
// broader identity words.
func typeSignatures() []typeSignature {
	return []typeSignature{
		{domain.TypeFactura, []string{"factura", "invoice", "fact.", "fac."}},
		{domain.TypeRecibo, []string{"recibo", "receipt", "comprobante"}},
		{domain.TypeBoleta, []string{"boleta", "ticket"}},
		{domain.TypeTitulo, []string{"título", "title", "degree", "diploma", "bachiller", "licenciado", "ingeniero", "doctor", "magister", "master"}},
		{domain.TypeCertificado, []string{"certificado", "certificate", "certify", "curso", "course", "capacitación", "training"}},
		{domain.TypeLicencia, []string{"licencia", "license", "habilitación", "autorización", "permiso"}},
		{domain.TypeDNI, []string{"dni", "documento nacional de identidad", "identidad", "libreta cívica", "libreta civica"}},
		{domain.TypePasaporte, []string{"pasaporte", "passport"}},
	}
}

func identitySignatures() []identitySignature {
	return []identitySignature{
		{domain.TypeDNITarjeta, []*regexp.Regexp{
			rx(`REPÚBLICA\s+ARGENTINA`),
			rx(`DOCUMENTO\s+NACIONAL\s+DE\s+IDENTIDAD`),
			rx(`DNI\s+TARJETA`),
			rx(`TARJETA\s+DE\s+IDENTIDAD`),
		}},
		{domain.TypeDNILibreta, []*regexp.Regexp{
			rx(`LIBRETA\s+CÍVICA`),
			rx(`LIBRETA\s+CIVICA`),
			rx(`LC\s*:?\s*\d{7,8}`),
			rx(`CÍVICA\s*:?\s*\d{7,8}`),
		}},
		{domain.TypePasaporte, []*regexp.Regexp{
			rx(`PASAPORTE`),
			rx(`PASSPORT`),
			rx(`REPÚBLICA\s+ARGENTINA\s+PASAPORTE`),
			rx(`PASAPORTE\s+ARGENTINO`),
		}},
	}
}

// afipIndicators are the lowercase markers of an AFIP fiscal invoice. A
// text with five or more of them is routed to the AFIP table.
func afipIndicators() []string {
	return []string{
		"afip",
		"comprobante autorizado",
		"cae n°",
		"punto de venta",
		"comp. nro",
		"fecha de emisión",
		"condición frente al iva",
		"responsable monotributo",
		"consumidor final",
		"cuit:",
		"razón social:",
		"domicilio comercial:",
		"importe total:",
		"subtotal:",
	}
}
