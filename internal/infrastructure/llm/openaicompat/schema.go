package openaicompat

import (
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/tavalos/papeleo/internal/core/domain"
)

// Model output is schema-checked before it is trusted: every hinted key
// must be a string when present, unknown keys are allowed. Schemas are
// compiled once at package init; a broken schema is a programming error.
var fieldSchemas = map[domain.DocumentType]*jsonschema.Schema{
	domain.TypeFactura:     mustCompileFieldSchema(domain.TypeFactura),
	domain.TypeRecibo:      mustCompileFieldSchema(domain.TypeRecibo),
	domain.TypeDNI:         mustCompileFieldSchema(domain.TypeDNI),
	domain.TypeTitulo:      mustCompileFieldSchema(domain.TypeTitulo),
	domain.TypeCertificado: mustCompileFieldSchema(domain.TypeCertificado),
}

func mustCompileFieldSchema(docType domain.DocumentType) *jsonschema.Schema {
	hints := fieldHints(docType)
	var props []string
	for _, h := range hints {
		props = append(props, fmt.Sprintf("%q: {\"type\": \"string\"}", h))
	}
	doc := fmt.Sprintf(`{
		"type": "object",
		"properties": {%s},
		"additionalProperties": true
	}`, strings.Join(props, ", "))

	schema, err := jsonschema.CompileString(string(docType)+".json", doc)
	if err != nil {
		panic(fmt.Sprintf("compile %s field schema: %v", docType, err))
	}
	return schema
}

// schemaFor collapses the family aliases onto their base schema. Unknown
// types have no schema and pass unchecked.
func schemaFor(docType domain.DocumentType) *jsonschema.Schema {
	switch docType {
	case domain.TypeFacturaAFIP:
		docType = domain.TypeFactura
	case domain.TypeBoleta:
		docType = domain.TypeRecibo
	case domain.TypeDNITarjeta, domain.TypeDNILibreta, domain.TypePasaporte:
		docType = domain.TypeDNI
	case domain.TypeDiploma, domain.TypeLicencia:
		docType = domain.TypeTitulo
	}
	return fieldSchemas[docType]
}

func validateFields(docType domain.DocumentType, values map[string]any) error {
	schema := schemaFor(docType)
	if schema == nil {
		return nil
	}
	// jsonschema validates the generic representation; values came from
	// json.Unmarshal so they already have it.
	var generic any = map[string]any(values)
	if err := schema.Validate(generic); err != nil {
		return err
	}
	return nil
}
