package extraction

import (
	"github.com/tavalos/papeleo/internal/core/domain"
)

// mergeFieldSets overlays a later field set onto an earlier one: for any
// field both populate the later value wins, fields only one populates are
// kept. The hybrid family calls this with pattern results as the base and
// NLP results on top.
func mergeFieldSets(base, top domain.FieldSet) domain.FieldSet {
	switch b := base.(type) {
	case domain.InvoiceFields:
		t, ok := top.(domain.InvoiceFields)
		if !ok {
			return base
		}
		overlay(&b.NumeroFactura, t.NumeroFactura)
		overlay(&b.Fecha, t.Fecha)
		overlay(&b.Emisor, t.Emisor)
		overlay(&b.Receptor, t.Receptor)
		overlay(&b.CUIT, t.CUIT)
		overlay(&b.CondicionIVA, t.CondicionIVA)
		if len(t.Montos) > 0 {
			b.Montos = t.Montos
		}
		if len(t.Items) > 0 {
			b.Items = t.Items
		}
		if !t.Totales.Empty() {
			b.Totales = t.Totales
		}
		if !t.Entidades.Empty() {
			b.Entidades = t.Entidades
		}
		b.Extra = mergeMaps(b.Extra, t.Extra)
		return b

	case domain.ReceiptFields:
		t, ok := top.(domain.ReceiptFields)
		if !ok {
			return base
		}
		overlay(&b.NumeroRecibo, t.NumeroRecibo)
		overlay(&b.Fecha, t.Fecha)
		overlay(&b.Emisor, t.Emisor)
		overlay(&b.Receptor, t.Receptor)
		overlay(&b.Monto, t.Monto)
		overlay(&b.Concepto, t.Concepto)
		overlay(&b.FormaPago, t.FormaPago)
		b.Extra = mergeMaps(b.Extra, t.Extra)
		return b

	case domain.IdentityFields:
		t, ok := top.(domain.IdentityFields)
		if !ok {
			return base
		}
		overlay(&b.NumeroDNI, t.NumeroDNI)
		overlay(&b.Apellido, t.Apellido)
		overlay(&b.Nombre, t.Nombre)
		overlay(&b.Sexo, t.Sexo)
		overlay(&b.FechaNacimiento, t.FechaNacimiento)
		overlay(&b.LugarNacimiento, t.LugarNacimiento)
		overlay(&b.Nacionalidad, t.Nacionalidad)
		overlay(&b.FechaEmision, t.FechaEmision)
		overlay(&b.FechaVencimiento, t.FechaVencimiento)
		overlay(&b.LugarEmision, t.LugarEmision)
		overlay(&b.Domicilio, t.Domicilio)
		overlay(&b.EstadoCivil, t.EstadoCivil)
		overlay(&b.Profesion, t.Profesion)
		return b

	case domain.CredentialFields:
		t, ok := top.(domain.CredentialFields)
		if !ok {
			return base
		}
		overlay(&b.Institucion, t.Institucion)
		overlay(&b.TituloOtorgado, t.TituloOtorgado)
		overlay(&b.NombreEstudiante, t.NombreEstudiante)
		overlay(&b.FechaEmision, t.FechaEmision)
		overlay(&b.NumeroRegistro, t.NumeroRegistro)
		overlay(&b.Calificacion, t.Calificacion)
		overlay(&b.AreaEstudio, t.AreaEstudio)
		overlay(&b.Sede, t.Sede)
		return b

	case domain.GenericFields:
		t, ok := top.(domain.GenericFields)
		if !ok {
			return base
		}
		if len(t.Fechas) > 0 {
			b.Fechas = t.Fechas
		}
		if len(t.Montos) > 0 {
			b.Montos = t.Montos
		}
		if !t.Entidades.Empty() {
			b.Entidades = t.Entidades
		}
		b.Extra = mergeMaps(b.Extra, t.Extra)
		return b

	default:
		// AFIP layouts have no NLP counterpart; the rigid table wins.
		return base
	}
}

func overlay(base *string, top string) {
	if top != "" {
		*base = top
	}
}

func mergeMaps(base, top map[string]any) map[string]any {
	if len(top) == 0 {
		return base
	}
	if base == nil {
		base = make(map[string]any, len(top))
	}
	for k, v := range top {
		base[k] = v
	}
	return base
}
