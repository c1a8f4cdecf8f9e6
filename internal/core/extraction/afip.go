package extraction

import (
	"regexp"
	"strings"

	"github.com/tavalos/papeleo/internal/core/domain"
)

var (
	comprobanteCode = regexp.MustCompile(`COD\.?\s*(\w+)`)
	productRow      = regexp.MustCompile(`(\w+)\s+([^\n\r]+?)\s+(\d+,\d+)\s+(\w+)\s+([\d,\.]+)\s+(\d+,\d+)\s+([\d,\.]+)\s+([\d,\.]+)`)
)

var comprobanteTypes = map[string]string{
	"C": "Factura C",
	"A": "Factura A",
	"B": "Factura B",
	"E": "Factura E",
}

// extractAFIP runs the fiscal invoice table. AFIP layouts are rigid, so
// each field takes the first pattern capture that passes its validation
// instead of scoring candidates.
func extractAFIP(lib *Library, text string) domain.AFIPInvoiceFields {
	get := func(field string) string { return firstValidAFIP(lib, text, field) }

	cuits := collectValidCUITs(lib, text)
	var emisorCUIT, compradorCUIT string
	if len(cuits) > 0 {
		emisorCUIT = cuits[0]
	}
	if len(cuits) > 1 {
		compradorCUIT = cuits[1]
	}

	pagActual, pagTotal := paginaInfo(lib, text)

	return domain.AFIPInvoiceFields{
		Comprobante: domain.AFIPComprobante{
			Tipo:             comprobanteTipo(text),
			PuntoVenta:       get("punto_venta"),
			Numero:           get("numero_comprobante"),
			FechaEmision:     get("fecha_emision"),
			FechaVencimiento: get("fecha_vencimiento"),
		},
		Emisor: domain.AFIPEmisor{
			RazonSocial:  get("razon_social_emisor"),
			Domicilio:    get("domicilio_comercial"),
			CUIT:         emisorCUIT,
			CondicionIVA: get("condicion_iva_emisor"),
			PeriodoDesde: get("periodo_desde"),
			PeriodoHasta: get("periodo_hasta"),
		},
		Comprador: domain.AFIPComprador{
			CUIT:              compradorCUIT,
			RazonSocial:       get("razon_social_comprador"),
			Domicilio:         get("domicilio_comprador"),
			CondicionIVA:      get("condicion_iva_comprador"),
			CondicionVenta:    get("condicion_venta"),
			IngresosBrutos:    get("ingresos_brutos"),
			InicioActividades: get("fecha_inicio_actividades"),
		},
		Productos: collectProducts(text),
		Totales: domain.AFIPTotales{
			Subtotal:      get("subtotal"),
			OtrosTributos: get("importe_otros_tributos"),
			Total:         get("importe_total"),
		},
		Autorizacion: domain.AFIPAutorizacion{
			CAENumero:      get("cae_numero"),
			CAEVencimiento: get("fecha_vencimiento_cae"),
			PaginaActual:   pagActual,
			TotalPaginas:   pagTotal,
		},
	}
}

func firstValidAFIP(lib *Library, text, field string) string {
	for _, p := range lib.PatternsFor(domain.TypeFacturaAFIP, field) {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v := strings.TrimSpace(m[1])
		if validAFIPField(field, v) {
			return v
		}
	}
	return ""
}

// validAFIPField applies the per-field structural check. The CAE is
// validated on its cleaned digits but stored as captured.
func validAFIPField(field, value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}
	switch field {
	case "cuit":
		return ValidCUIT(value)
	case "fecha_emision", "fecha_vencimiento", "periodo_desde", "periodo_hasta", "fecha_inicio_actividades":
		return validAFIPDate(value)
	case "punto_venta", "numero_comprobante":
		return allDigits(value)
	case "subtotal", "importe_total", "importe_otros_tributos":
		return validCurrency(value)
	case "cae_numero":
		return ValidCAE(digitsOnly(value))
	}
	return true
}

// collectValidCUITs scans the whole text; document order is meaningful:
// the issuer's CUIT prints before the buyer's.
func collectValidCUITs(lib *Library, text string) []string {
	var found []string
	for _, p := range lib.PatternsFor(domain.TypeFacturaAFIP, "cuit") {
		for _, m := range p.FindAllStringSubmatch(text, -1) {
			if ValidCUIT(m[1]) {
				found = append(found, m[1])
			}
		}
	}
	return found
}

func comprobanteTipo(text string) string {
	m := comprobanteCode.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	if tipo, known := comprobanteTypes[m[1]]; known {
		return tipo
	}
	return "Comprobante " + m[1]
}

func collectProducts(text string) []domain.AFIPProducto {
	var productos []domain.AFIPProducto
	for _, m := range productRow.FindAllStringSubmatch(text, -1) {
		productos = append(productos, domain.AFIPProducto{
			Codigo:                 m[1],
			Descripcion:            strings.TrimSpace(m[2]),
			Cantidad:               m[3],
			UnidadMedida:           m[4],
			PrecioUnitario:         m[5],
			PorcentajeBonificacion: m[6],
			ImporteBonificacion:    m[7],
			Subtotal:               m[8],
		})
	}
	return productos
}

func paginaInfo(lib *Library, text string) (string, string) {
	for _, p := range lib.PatternsFor(domain.TypeFacturaAFIP, "pagina_info") {
		if m := p.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
		}
	}
	return "", ""
}
