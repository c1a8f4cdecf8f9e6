package extraction

import (
	"github.com/tavalos/papeleo/internal/core/domain"
)

// bindLLMFields turns the generic mapping a language model returned into
// the typed variant of the document family. Known keys move into struct
// fields; everything else survives in the residual map so model output is
// never silently dropped.
func bindLLMFields(docType domain.DocumentType, values map[string]any) domain.FieldSet {
	take := func(key string) string {
		s, _ := values[key].(string)
		delete(values, key)
		return s
	}

	switch docType {
	case domain.TypeFactura, domain.TypeFacturaAFIP:
		return domain.InvoiceFields{
			NumeroFactura: take("numero_factura"),
			Fecha:         NormalizeDate(take("fecha")),
			Emisor:        take("emisor"),
			Receptor:      take("receptor"),
			CUIT:          FormatCUIT(take("cuit")),
			CondicionIVA:  take("condicion_iva"),
			Extra:         values,
		}

	case domain.TypeRecibo, domain.TypeBoleta:
		return domain.ReceiptFields{
			NumeroRecibo: take("numero_recibo"),
			Fecha:        NormalizeDate(take("fecha")),
			Emisor:       take("emisor"),
			Receptor:     take("receptor"),
			Monto:        take("monto"),
			Concepto:     take("concepto"),
			FormaPago:    take("forma_pago"),
			Extra:        values,
		}

	case domain.TypeDNI, domain.TypeDNITarjeta, domain.TypeDNILibreta, domain.TypePasaporte:
		return domain.IdentityFields{
			Tipo:            docType,
			NumeroDNI:       take("numero_dni"),
			Apellido:        CleanPersonName(take("apellido")),
			Nombre:          CleanPersonName(take("nombre")),
			Sexo:            CleanSexo(take("sexo")),
			FechaNacimiento: NormalizeDate(take("fecha_nacimiento")),
			Nacionalidad:    CleanNacionalidad(take("nacionalidad")),
			Domicilio:       take("domicilio"),
		}

	case domain.TypeTitulo, domain.TypeDiploma, domain.TypeLicencia, domain.TypeCertificado:
		return domain.CredentialFields{
			Tipo:             docType,
			Institucion:      take("institucion"),
			TituloOtorgado:   take("titulo_otorgado"),
			NombreEstudiante: take("nombre_estudiante"),
			FechaEmision:     NormalizeDate(take("fecha_emision")),
			NumeroRegistro:   take("numero_registro"),
			Calificacion:     take("calificacion"),
			AreaEstudio:      take("area_estudio"),
		}

	default:
		return domain.GenericFields{Tipo: docType, Extra: values}
	}
}
