package extraction

import (
	"strings"

	"github.com/tavalos/papeleo/internal/core/domain"
)

// bindEntities maps recognized entities onto the typed field set of a
// document family. The NLP family reads people, organizations, dates and
// amounts; layout-anchored fields stay with the pattern family.
func bindEntities(docType domain.DocumentType, ents domain.Entities) domain.FieldSet {
	switch docType {
	case domain.TypeFactura, domain.TypeFacturaAFIP:
		f := domain.InvoiceFields{Entidades: ents}
		if len(ents.Organizaciones) > 0 {
			f.Emisor = ents.Organizaciones[0]
		}
		if len(ents.Organizaciones) > 1 {
			f.Receptor = ents.Organizaciones[1]
		} else if len(ents.Personas) > 0 {
			f.Receptor = ents.Personas[0]
		}
		if len(ents.Fechas) > 0 {
			f.Fecha = NormalizeDate(ents.Fechas[0])
		}
		for _, m := range ents.Dinero {
			f.Montos = append(f.Montos, domain.MoneyAmount{Valor: m, Moneda: "ARS"})
		}
		return f

	case domain.TypeRecibo, domain.TypeBoleta:
		f := domain.ReceiptFields{}
		if len(ents.Organizaciones) > 0 {
			f.Emisor = ents.Organizaciones[0]
		}
		if len(ents.Personas) > 0 {
			f.Receptor = ents.Personas[0]
		}
		if len(ents.Fechas) > 0 {
			f.Fecha = NormalizeDate(ents.Fechas[0])
		}
		if len(ents.Dinero) > 0 {
			f.Monto = ents.Dinero[0]
		}
		return f

	case domain.TypeDNI, domain.TypeDNITarjeta, domain.TypeDNILibreta, domain.TypePasaporte:
		f := domain.IdentityFields{Tipo: docType}
		if len(ents.Personas) > 0 {
			apellido, nombre := splitFullName(ents.Personas[0])
			f.Apellido = CleanPersonName(apellido)
			f.Nombre = CleanPersonName(nombre)
		}
		if len(ents.Fechas) > 0 {
			f.FechaNacimiento = NormalizeDate(ents.Fechas[0])
		}
		if len(ents.Lugares) > 0 {
			f.LugarNacimiento = ents.Lugares[0]
		}
		return f

	case domain.TypeTitulo, domain.TypeDiploma, domain.TypeLicencia, domain.TypeCertificado:
		f := domain.CredentialFields{Tipo: docType}
		if len(ents.Organizaciones) > 0 {
			f.Institucion = ents.Organizaciones[0]
		}
		if len(ents.Personas) > 0 {
			f.NombreEstudiante = ents.Personas[0]
		}
		if len(ents.Fechas) > 0 {
			f.FechaEmision = NormalizeDate(ents.Fechas[0])
		}
		if len(ents.Lugares) > 0 {
			f.Sede = ents.Lugares[0]
		}
		return f

	default:
		return domain.GenericFields{
			Tipo:      docType,
			Fechas:    ents.Fechas,
			Entidades: ents,
		}
	}
}

// splitFullName treats the last word as the given name when a person
// entity reads SURNAME NAME, the layout argentine identity documents use.
func splitFullName(full string) (apellido, nombre string) {
	words := strings.Fields(full)
	if len(words) < 2 {
		return full, ""
	}
	return strings.Join(words[:len(words)-1], " "), words[len(words)-1]
}
