package openaicompat

import (
	"strings"

	"github.com/tavalos/papeleo/internal/core/domain"
)

const systemPrompt = `You extract structured fields from Argentine business and identity documents.
Return a strict JSON object. Use the exact key names you are given, in Spanish.
Omit any key you cannot find in the document. Never invent values.
No markdown, no commentary, no extra keys beyond what the document supports.`

// fieldHints lists the JSON keys the model is asked for per document
// family. The names match the typed field sets so the binding layer can
// move them without translation.
func fieldHints(docType domain.DocumentType) []string {
	switch docType {
	case domain.TypeFactura, domain.TypeFacturaAFIP:
		return []string{"numero_factura", "fecha", "emisor", "receptor", "cuit", "condicion_iva"}
	case domain.TypeRecibo, domain.TypeBoleta:
		return []string{"numero_recibo", "fecha", "emisor", "receptor", "monto", "concepto", "forma_pago"}
	case domain.TypeDNI, domain.TypeDNITarjeta, domain.TypeDNILibreta, domain.TypePasaporte:
		return []string{"numero_dni", "apellido", "nombre", "sexo", "fecha_nacimiento", "nacionalidad", "domicilio"}
	case domain.TypeTitulo, domain.TypeDiploma, domain.TypeLicencia, domain.TypeCertificado:
		return []string{"institucion", "titulo_otorgado", "nombre_estudiante", "fecha_emision", "numero_registro", "calificacion", "area_estudio"}
	default:
		return nil
	}
}

func buildExtractionPrompt(docType domain.DocumentType, text string) string {
	const maxSnippet = 8000
	snippet := text
	if len(snippet) > maxSnippet {
		snippet = snippet[:maxSnippet]
	}

	var b strings.Builder
	b.WriteString("Document type: ")
	b.WriteString(string(docType))
	b.WriteString("\n")
	if hints := fieldHints(docType); hints != nil {
		b.WriteString("Extract these fields when present: ")
		b.WriteString(strings.Join(hints, ", "))
		b.WriteString(".\n")
		b.WriteString("Dates as DD/MM/YYYY. CUIT as XX-XXXXXXXX-X.\n")
	} else {
		b.WriteString("Extract every labeled field you can identify, keys in lowercase Spanish with underscores.\n")
	}
	b.WriteString("\nDocument:\n")
	b.WriteString(snippet)
	return b.String()
}
