package extraction

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tavalos/papeleo/internal/core/domain"
)

// Per-field verdict confidences. A generically valid field is trusted but
// not certain; the failure classes grade how far off the value was.
const (
	confidenceValid    = 0.8
	confidenceInvalid  = 0.3
	confidenceNearMiss = 0.2
	confidenceMissing  = 0.1

	summaryValidThreshold = 0.6
)

// TypeRules names the fields a document type is expected to carry and the
// validator applied to each, keyed by validator name so a YAML override
// file can rewire them without recompiling.
type TypeRules struct {
	Required   []string          `yaml:"required"`
	Optional   []string          `yaml:"optional"`
	Validators map[string]string `yaml:"validators"`
}

// Rules is the per-type validation rule set.
type Rules map[domain.DocumentType]TypeRules

// DefaultRules mirrors the built-in per-type field expectations.
func DefaultRules() Rules {
	return Rules{
		domain.TypeFactura: {
			Required:   []string{"numero_factura", "fecha", "cuit"},
			Optional:   []string{"emisor", "receptor", "condicion_iva", "totales", "items", "montos"},
			Validators: map[string]string{"cuit": "cuit", "fecha": "fecha"},
		},
		domain.TypeFacturaAFIP: {
			Required: []string{"informacion_comprobante", "emisor", "afip"},
			Optional: []string{"comprador", "totales", "productos"},
		},
		domain.TypeRecibo: {
			Required:   []string{"numero_recibo", "fecha", "monto"},
			Optional:   []string{"emisor", "receptor", "concepto", "forma_pago"},
			Validators: map[string]string{"fecha": "fecha", "monto": "monto"},
		},
		domain.TypeDNI: {
			Required:   []string{"numero_dni", "apellido", "nombre"},
			Optional:   []string{"sexo", "fecha_nacimiento", "nacionalidad", "domicilio", "fecha_emision", "fecha_vencimiento"},
			Validators: map[string]string{"numero_dni": "dni", "fecha_nacimiento": "fecha", "fecha_emision": "fecha", "fecha_vencimiento": "fecha"},
		},
		domain.TypeTitulo: {
			Required:   []string{"institucion", "titulo_otorgado", "nombre_estudiante"},
			Optional:   []string{"fecha_emision", "numero_registro", "calificacion", "nivel_academico", "area_estudio"},
			Validators: map[string]string{"fecha_emision": "fecha", "numero_documento": "dni"},
		},
		domain.TypeCertificado: {
			Required:   []string{"institucion", "nombre_estudiante"},
			Optional:   []string{"fecha_emision", "area_estudio", "instructor", "horas_cursadas"},
			Validators: map[string]string{"fecha_emision": "fecha"},
		},
	}
}

// LoadRules merges an optional YAML override file over the defaults. An
// empty path keeps the defaults; a missing or malformed file is an error
// so a typo in the override never silently disables validation.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	if strings.TrimSpace(path) == "" {
		return rules, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read extraction rules: %w", err)
	}

	var override map[string]TypeRules
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return nil, fmt.Errorf("parse extraction rules: %w", err)
	}
	for name, tr := range override {
		rules[domain.DocumentType(name)] = tr
	}
	return rules, nil
}

// rulesFor resolves the rule set of a type, falling back through the
// family aliases (a dni_tarjeta validates under the dni rules).
func (r Rules) rulesFor(t domain.DocumentType) (TypeRules, bool) {
	if tr, ok := r[t]; ok {
		return tr, true
	}
	switch t {
	case domain.TypeDNITarjeta, domain.TypeDNILibreta, domain.TypePasaporte:
		tr, ok := r[domain.TypeDNI]
		return tr, ok
	case domain.TypeDiploma, domain.TypeLicencia:
		tr, ok := r[domain.TypeTitulo]
		return tr, ok
	}
	return TypeRules{}, false
}

// Validate applies the named validators of a type to the flat field view
// and aggregates the verdicts. Failures are recorded, never raised: a
// document with an invalid CUIT still keeps every other field.
func (r Rules) Validate(t domain.DocumentType, fields map[string]any) (map[string]domain.FieldValidation, *domain.ValidationSummary) {
	tr, known := r.rulesFor(t)
	summary := &domain.ValidationSummary{DetectedType: t, Valid: true}
	if !known {
		summary.Confidence = confidenceValid
		summary.Recommendations = append(summary.Recommendations, "tipo de documento sin reglas de validación, revisar manualmente")
		return nil, summary
	}

	verdicts := map[string]domain.FieldValidation{}
	var total float64
	var counted int

	record := func(field string, v domain.FieldValidation) {
		verdicts[field] = v
		total += v.Confidence
		counted++
		if !v.Valid {
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %s", field, v.Error))
		}
		for _, s := range v.Suggestions {
			summary.Recommendations = append(summary.Recommendations, fmt.Sprintf("%s: %s", field, s))
		}
	}

	for _, field := range tr.Required {
		value, scalar, present := stringField(fields, field)
		switch {
		case !present:
			record(field, domain.FieldValidation{
				Valid:      false,
				Confidence: confidenceMissing,
				Error:      "campo requerido ausente",
			})
		case !scalar:
			record(field, domain.FieldValidation{Valid: true, Confidence: confidenceValid})
		default:
			record(field, applyNamedValidator(tr.Validators[field], value))
		}
	}

	for _, field := range tr.Optional {
		value, scalar, present := stringField(fields, field)
		switch {
		case !present:
			summary.Warnings = append(summary.Warnings, fmt.Sprintf("%s: campo opcional ausente", field))
		case !scalar:
			record(field, domain.FieldValidation{Valid: true, Confidence: confidenceValid})
		default:
			record(field, applyNamedValidator(tr.Validators[field], value))
		}
	}

	if counted > 0 {
		summary.Confidence = total / float64(counted)
	}
	summary.Valid = len(summary.Errors) == 0 && summary.Confidence > summaryValidThreshold
	return verdicts, summary
}

// applyNamedValidator dispatches on the validator name from the rule set.
// An unknown or empty name degrades to a non-blank check.
func applyNamedValidator(name, value string) domain.FieldValidation {
	switch name {
	case "cuit":
		return ValidateCUIT(value)
	case "dni":
		return ValidateDNI(value)
	case "fecha":
		v := domain.FieldValidation{Value: value, Valid: ValidDate(value), Confidence: confidenceValid}
		if !v.Valid {
			v.Confidence = confidenceInvalid
			v.Error = "la fecha no tiene el formato DD/MM/YYYY"
			if dateNumericPrefix.MatchString(value) {
				v.Suggestions = append(v.Suggestions, "probar con "+NormalizeDate(value))
				v.Confidence = confidenceNearMiss
			}
		}
		return v
	case "cae":
		return ValidateCAE(value, "")
	case "monto":
		v := domain.FieldValidation{Value: value, Valid: validCurrency(value), Confidence: confidenceValid}
		if !v.Valid {
			v.Confidence = confidenceInvalid
			v.Error = "el monto no es una cifra monetaria"
		}
		return v
	default:
		v := domain.FieldValidation{Value: value, Valid: strings.TrimSpace(value) != "", Confidence: confidenceValid}
		if !v.Valid {
			v.Confidence = confidenceMissing
			v.Error = "campo vacío"
		}
		return v
	}
}

// stringField digs a field out of the flat map view. Grouped and sequence
// fields report present but not scalar, so they pass on presence alone.
func stringField(fields map[string]any, name string) (value string, scalar, present bool) {
	v, ok := fields[name]
	if !ok {
		return "", false, false
	}
	if s, isString := v.(string); isString {
		return s, true, strings.TrimSpace(s) != ""
	}
	return "", false, true
}
