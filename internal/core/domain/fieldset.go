package domain

// FieldSet is the typed view over the fields extracted from one document.
// Map returns the generic mapping used for serialization and persistence:
// a field without a value is absent from the map, never an empty string.
type FieldSet interface {
	Kind() DocumentType
	Map() map[string]any
}

// MoneyAmount is one detected amount and its guessed currency.
type MoneyAmount struct {
	Valor  string `json:"valor"`
	Moneda string `json:"moneda"`
}

// LineItem is one quantity/description/price row detected in a body of text.
type LineItem struct {
	Cantidad    string `json:"cantidad"`
	Descripcion string `json:"descripcion"`
	Precio      string `json:"precio"`
}

// Totals groups the monetary summary of an invoice.
type Totals struct {
	Subtotal string `json:"subtotal,omitempty"`
	IVA      string `json:"iva,omitempty"`
	Total    string `json:"total,omitempty"`
}

func (t Totals) Empty() bool {
	return t.Subtotal == "" && t.IVA == "" && t.Total == ""
}

func (t Totals) asMap() map[string]any {
	m := map[string]any{}
	putNonEmpty(m, "subtotal", t.Subtotal)
	putNonEmpty(m, "iva", t.IVA)
	putNonEmpty(m, "total", t.Total)
	return m
}

// Entities holds named entities recognized in the raw text.
type Entities struct {
	Personas       []string `json:"personas,omitempty"`
	Organizaciones []string `json:"organizaciones,omitempty"`
	Lugares        []string `json:"lugares,omitempty"`
	Fechas         []string `json:"fechas,omitempty"`
	Dinero         []string `json:"dinero,omitempty"`
}

func (e Entities) Empty() bool {
	return len(e.Personas) == 0 && len(e.Organizaciones) == 0 && len(e.Lugares) == 0 &&
		len(e.Fechas) == 0 && len(e.Dinero) == 0
}

func (e Entities) asMap() map[string]any {
	m := map[string]any{}
	putStrings(m, "personas", e.Personas)
	putStrings(m, "organizaciones", e.Organizaciones)
	putStrings(m, "lugares", e.Lugares)
	putStrings(m, "fechas", e.Fechas)
	putStrings(m, "dinero", e.Dinero)
	return m
}

// InvoiceFields is the extracted record of a generic factura.
type InvoiceFields struct {
	NumeroFactura string         `json:"numero_factura,omitempty"`
	Fecha         string         `json:"fecha,omitempty"`
	Emisor        string         `json:"emisor,omitempty"`
	Receptor      string         `json:"receptor,omitempty"`
	CUIT          string         `json:"cuit,omitempty"`
	CondicionIVA  string         `json:"condicion_iva,omitempty"`
	Montos        []MoneyAmount  `json:"montos,omitempty"`
	Items         []LineItem     `json:"items,omitempty"`
	Totales       Totals         `json:"totales,omitempty"`
	Entidades     Entities       `json:"entidades,omitempty"`
	Extra         map[string]any `json:"-"`
}

func (f InvoiceFields) Kind() DocumentType { return TypeFactura }

func (f InvoiceFields) Map() map[string]any {
	m := map[string]any{"tipo_documento": string(TypeFactura)}
	putNonEmpty(m, "numero_factura", f.NumeroFactura)
	putNonEmpty(m, "fecha", f.Fecha)
	putNonEmpty(m, "emisor", f.Emisor)
	putNonEmpty(m, "receptor", f.Receptor)
	putNonEmpty(m, "cuit", f.CUIT)
	putNonEmpty(m, "condicion_iva", f.CondicionIVA)
	if len(f.Montos) > 0 {
		m["montos"] = f.Montos
	}
	if len(f.Items) > 0 {
		m["items"] = f.Items
	}
	if !f.Totales.Empty() {
		m["totales"] = f.Totales.asMap()
	}
	if !f.Entidades.Empty() {
		m["entidades"] = f.Entidades.asMap()
	}
	mergeExtra(m, f.Extra)
	return m
}

// AFIPComprobante identifies the fiscal receipt itself.
type AFIPComprobante struct {
	Tipo             string `json:"tipo,omitempty"`
	PuntoVenta       string `json:"punto_venta,omitempty"`
	Numero           string `json:"numero,omitempty"`
	FechaEmision     string `json:"fecha_emision,omitempty"`
	FechaVencimiento string `json:"fecha_vencimiento,omitempty"`
}

type AFIPEmisor struct {
	RazonSocial  string `json:"razon_social,omitempty"`
	Domicilio    string `json:"domicilio,omitempty"`
	CUIT         string `json:"cuit,omitempty"`
	CondicionIVA string `json:"condicion_iva,omitempty"`
	PeriodoDesde string `json:"periodo_desde,omitempty"`
	PeriodoHasta string `json:"periodo_hasta,omitempty"`
}

type AFIPComprador struct {
	CUIT              string `json:"cuit,omitempty"`
	RazonSocial       string `json:"razon_social,omitempty"`
	Domicilio         string `json:"domicilio,omitempty"`
	CondicionIVA      string `json:"condicion_iva,omitempty"`
	CondicionVenta    string `json:"condicion_venta,omitempty"`
	IngresosBrutos    string `json:"ingresos_brutos,omitempty"`
	InicioActividades string `json:"fecha_inicio_actividades,omitempty"`
}

// AFIPProducto is one row of the product table of an AFIP invoice.
type AFIPProducto struct {
	Codigo                 string `json:"codigo"`
	Descripcion            string `json:"descripcion"`
	Cantidad               string `json:"cantidad"`
	UnidadMedida           string `json:"unidad_medida"`
	PrecioUnitario         string `json:"precio_unitario"`
	PorcentajeBonificacion string `json:"porcentaje_bonificacion"`
	ImporteBonificacion    string `json:"importe_bonificacion"`
	Subtotal               string `json:"subtotal"`
}

type AFIPTotales struct {
	Subtotal      string `json:"subtotal,omitempty"`
	OtrosTributos string `json:"otros_tributos,omitempty"`
	Total         string `json:"total,omitempty"`
}

// AFIPAutorizacion carries the CAE authorization block.
type AFIPAutorizacion struct {
	CAENumero      string `json:"cae_numero,omitempty"`
	CAEVencimiento string `json:"cae_vencimiento,omitempty"`
	PaginaActual   string `json:"pagina_actual,omitempty"`
	TotalPaginas   string `json:"total_paginas,omitempty"`
}

// AFIPInvoiceFields is the extracted record of an AFIP fiscal invoice. Its
// map view keeps the grouped layout (comprobante, emisor, comprador,
// productos, totales, afip) consumers of the result expect.
type AFIPInvoiceFields struct {
	Comprobante  AFIPComprobante  `json:"informacion_comprobante"`
	Emisor       AFIPEmisor       `json:"emisor"`
	Comprador    AFIPComprador    `json:"comprador"`
	Productos    []AFIPProducto   `json:"productos,omitempty"`
	Totales      AFIPTotales      `json:"totales"`
	Autorizacion AFIPAutorizacion `json:"afip"`
}

func (f AFIPInvoiceFields) Kind() DocumentType { return TypeFacturaAFIP }

func (f AFIPInvoiceFields) Map() map[string]any {
	m := map[string]any{"tipo_documento": string(TypeFacturaAFIP)}

	comprobante := map[string]any{}
	putNonEmpty(comprobante, "tipo", f.Comprobante.Tipo)
	putNonEmpty(comprobante, "punto_venta", f.Comprobante.PuntoVenta)
	putNonEmpty(comprobante, "numero", f.Comprobante.Numero)
	putNonEmpty(comprobante, "fecha_emision", f.Comprobante.FechaEmision)
	putNonEmpty(comprobante, "fecha_vencimiento", f.Comprobante.FechaVencimiento)
	if len(comprobante) > 0 {
		m["informacion_comprobante"] = comprobante
	}

	emisor := map[string]any{}
	putNonEmpty(emisor, "razon_social", f.Emisor.RazonSocial)
	putNonEmpty(emisor, "domicilio", f.Emisor.Domicilio)
	putNonEmpty(emisor, "cuit", f.Emisor.CUIT)
	putNonEmpty(emisor, "condicion_iva", f.Emisor.CondicionIVA)
	putNonEmpty(emisor, "periodo_desde", f.Emisor.PeriodoDesde)
	putNonEmpty(emisor, "periodo_hasta", f.Emisor.PeriodoHasta)
	if len(emisor) > 0 {
		m["emisor"] = emisor
	}

	comprador := map[string]any{}
	putNonEmpty(comprador, "cuit", f.Comprador.CUIT)
	putNonEmpty(comprador, "razon_social", f.Comprador.RazonSocial)
	putNonEmpty(comprador, "domicilio", f.Comprador.Domicilio)
	putNonEmpty(comprador, "condicion_iva", f.Comprador.CondicionIVA)
	putNonEmpty(comprador, "condicion_venta", f.Comprador.CondicionVenta)
	putNonEmpty(comprador, "ingresos_brutos", f.Comprador.IngresosBrutos)
	putNonEmpty(comprador, "fecha_inicio_actividades", f.Comprador.InicioActividades)
	if len(comprador) > 0 {
		m["comprador"] = comprador
	}

	if len(f.Productos) > 0 {
		m["productos"] = f.Productos
	}

	totales := map[string]any{}
	putNonEmpty(totales, "subtotal", f.Totales.Subtotal)
	putNonEmpty(totales, "otros_tributos", f.Totales.OtrosTributos)
	putNonEmpty(totales, "total", f.Totales.Total)
	if len(totales) > 0 {
		m["totales"] = totales
	}

	afip := map[string]any{}
	putNonEmpty(afip, "cae_numero", f.Autorizacion.CAENumero)
	putNonEmpty(afip, "cae_vencimiento", f.Autorizacion.CAEVencimiento)
	putNonEmpty(afip, "pagina_actual", f.Autorizacion.PaginaActual)
	putNonEmpty(afip, "total_paginas", f.Autorizacion.TotalPaginas)
	if len(afip) > 0 {
		m["afip"] = afip
	}

	return m
}

// ReceiptFields is the extracted record of a payment receipt.
type ReceiptFields struct {
	NumeroRecibo string         `json:"numero_recibo,omitempty"`
	Fecha        string         `json:"fecha,omitempty"`
	Emisor       string         `json:"emisor,omitempty"`
	Receptor     string         `json:"receptor,omitempty"`
	Monto        string         `json:"monto,omitempty"`
	Concepto     string         `json:"concepto,omitempty"`
	FormaPago    string         `json:"forma_pago,omitempty"`
	Extra        map[string]any `json:"-"`
}

func (f ReceiptFields) Kind() DocumentType { return TypeRecibo }

func (f ReceiptFields) Map() map[string]any {
	m := map[string]any{"tipo_documento": string(TypeRecibo)}
	putNonEmpty(m, "numero_recibo", f.NumeroRecibo)
	putNonEmpty(m, "fecha", f.Fecha)
	putNonEmpty(m, "emisor", f.Emisor)
	putNonEmpty(m, "receptor", f.Receptor)
	putNonEmpty(m, "monto", f.Monto)
	putNonEmpty(m, "concepto", f.Concepto)
	putNonEmpty(m, "forma_pago", f.FormaPago)
	mergeExtra(m, f.Extra)
	return m
}

// IdentityFields is the extracted record of a DNI, libreta or pasaporte.
// Tipo carries the detected subtype; the card variant is the default.
type IdentityFields struct {
	Tipo               DocumentType `json:"tipo_documento,omitempty"`
	NumeroDNI          string       `json:"numero_dni,omitempty"`
	Apellido           string       `json:"apellido,omitempty"`
	Nombre             string       `json:"nombre,omitempty"`
	Sexo               string       `json:"sexo,omitempty"`
	FechaNacimiento    string       `json:"fecha_nacimiento,omitempty"`
	LugarNacimiento    string       `json:"lugar_nacimiento,omitempty"`
	Nacionalidad       string       `json:"nacionalidad,omitempty"`
	FechaEmision       string       `json:"fecha_emision,omitempty"`
	FechaVencimiento   string       `json:"fecha_vencimiento,omitempty"`
	LugarEmision       string       `json:"lugar_emision,omitempty"`
	NumeroTramite      string       `json:"numero_tramite,omitempty"`
	CodigoVerificacion string       `json:"codigo_verificacion,omitempty"`
	Domicilio          string       `json:"domicilio,omitempty"`
	EstadoCivil        string       `json:"estado_civil,omitempty"`
	Profesion          string       `json:"profesion,omitempty"`
}

func (f IdentityFields) Kind() DocumentType {
	if f.Tipo == "" {
		return TypeDNITarjeta
	}
	return f.Tipo
}

func (f IdentityFields) Map() map[string]any {
	m := map[string]any{"tipo_documento": string(f.Kind())}
	putNonEmpty(m, "numero_dni", f.NumeroDNI)
	putNonEmpty(m, "apellido", f.Apellido)
	putNonEmpty(m, "nombre", f.Nombre)
	putNonEmpty(m, "sexo", f.Sexo)
	putNonEmpty(m, "fecha_nacimiento", f.FechaNacimiento)
	putNonEmpty(m, "lugar_nacimiento", f.LugarNacimiento)
	putNonEmpty(m, "nacionalidad", f.Nacionalidad)
	putNonEmpty(m, "fecha_emision", f.FechaEmision)
	putNonEmpty(m, "fecha_vencimiento", f.FechaVencimiento)
	putNonEmpty(m, "lugar_emision", f.LugarEmision)
	putNonEmpty(m, "numero_tramite", f.NumeroTramite)
	putNonEmpty(m, "codigo_verificacion", f.CodigoVerificacion)
	putNonEmpty(m, "domicilio", f.Domicilio)
	putNonEmpty(m, "estado_civil", f.EstadoCivil)
	putNonEmpty(m, "profesion", f.Profesion)
	return m
}

// CredentialFields is the extracted record of an academic title, diploma,
// licencia or course certificate.
type CredentialFields struct {
	Tipo               DocumentType `json:"tipo_documento,omitempty"`
	Institucion        string       `json:"institucion,omitempty"`
	TituloOtorgado     string       `json:"titulo_otorgado,omitempty"`
	NombreEstudiante   string       `json:"nombre_estudiante,omitempty"`
	FechaEmision       string       `json:"fecha_emision,omitempty"`
	NumeroRegistro     string       `json:"numero_registro,omitempty"`
	Calificacion       string       `json:"calificacion,omitempty"`
	Duracion           string       `json:"duracion,omitempty"`
	Modalidad          string       `json:"modalidad,omitempty"`
	NivelAcademico     string       `json:"nivel_academico,omitempty"`
	AreaEstudio        string       `json:"area_estudio,omitempty"`
	Creditos           string       `json:"creditos,omitempty"`
	HorasCursadas      string       `json:"horas_cursadas,omitempty"`
	DirectorTesis      string       `json:"director_tesis,omitempty"`
	Jurado             []string     `json:"jurado,omitempty"`
	Instructor         string       `json:"instructor,omitempty"`
	CodigoVerificacion string       `json:"codigo_verificacion,omitempty"`
	Sede               string       `json:"sede,omitempty"`
	Facultad           string       `json:"facultad,omitempty"`
	Carrera            string       `json:"carrera,omitempty"`
	Resolucion         string       `json:"resolucion,omitempty"`
	NumeroDocumento    string       `json:"numero_documento,omitempty"`
	FechaVencimiento   string       `json:"fecha_vencimiento,omitempty"`
	ValidezNacional    string       `json:"validez_nacional,omitempty"`
	Equivalencia       string       `json:"equivalencia,omitempty"`
}

func (f CredentialFields) Kind() DocumentType {
	if f.Tipo == "" {
		return TypeTitulo
	}
	return f.Tipo
}

func (f CredentialFields) Map() map[string]any {
	m := map[string]any{"tipo_documento": string(f.Kind())}
	putNonEmpty(m, "institucion", f.Institucion)
	putNonEmpty(m, "titulo_otorgado", f.TituloOtorgado)
	putNonEmpty(m, "nombre_estudiante", f.NombreEstudiante)
	putNonEmpty(m, "fecha_emision", f.FechaEmision)
	putNonEmpty(m, "numero_registro", f.NumeroRegistro)
	putNonEmpty(m, "calificacion", f.Calificacion)
	putNonEmpty(m, "duracion", f.Duracion)
	putNonEmpty(m, "modalidad", f.Modalidad)
	putNonEmpty(m, "nivel_academico", f.NivelAcademico)
	putNonEmpty(m, "area_estudio", f.AreaEstudio)
	putNonEmpty(m, "creditos", f.Creditos)
	putNonEmpty(m, "horas_cursadas", f.HorasCursadas)
	putNonEmpty(m, "director_tesis", f.DirectorTesis)
	putStrings(m, "jurado", f.Jurado)
	putNonEmpty(m, "instructor", f.Instructor)
	putNonEmpty(m, "codigo_verificacion", f.CodigoVerificacion)
	putNonEmpty(m, "sede", f.Sede)
	putNonEmpty(m, "facultad", f.Facultad)
	putNonEmpty(m, "carrera", f.Carrera)
	putNonEmpty(m, "resolucion", f.Resolucion)
	putNonEmpty(m, "numero_documento", f.NumeroDocumento)
	putNonEmpty(m, "fecha_vencimiento", f.FechaVencimiento)
	putNonEmpty(m, "validez_nacional", f.ValidezNacional)
	putNonEmpty(m, "equivalencia", f.Equivalencia)
	return m
}

// GenericFields is the extracted record of a document that matched no
// specific layout. Extra carries residual keys from model-based extraction.
type GenericFields struct {
	Tipo      DocumentType   `json:"-"`
	Fechas    []string       `json:"fechas,omitempty"`
	Montos    []MoneyAmount  `json:"montos,omitempty"`
	Emails    []string       `json:"emails,omitempty"`
	Telefonos []string       `json:"telefonos,omitempty"`
	Entidades Entities       `json:"entidades,omitempty"`
	Extra     map[string]any `json:"-"`
}

func (f GenericFields) Kind() DocumentType {
	if f.Tipo == "" {
		return TypeDesconocido
	}
	return f.Tipo
}

func (f GenericFields) Map() map[string]any {
	m := map[string]any{}
	putStrings(m, "fechas", f.Fechas)
	if len(f.Montos) > 0 {
		m["montos"] = f.Montos
	}
	putStrings(m, "emails", f.Emails)
	putStrings(m, "telefonos", f.Telefonos)
	if !f.Entidades.Empty() {
		m["entidades"] = f.Entidades.asMap()
	}
	mergeExtra(m, f.Extra)
	return m
}

// RawFields is the generic mapping view of a persisted field set, used when
// a result is loaded back from storage.
type RawFields struct {
	DocType DocumentType
	Values  map[string]any
}

func (r RawFields) Kind() DocumentType { return r.DocType }

func (r RawFields) Map() map[string]any {
	if r.Values == nil {
		return map[string]any{}
	}
	return r.Values
}

func putNonEmpty(m map[string]any, key, value string) {
	if value != "" {
		m[key] = value
	}
}

func putStrings(m map[string]any, key string, values []string) {
	if len(values) > 0 {
		m[key] = values
	}
}

func mergeExtra(m, extra map[string]any) {
	for k, v := range extra {
		if _, taken := m[k]; !taken {
			m[k] = v
		}
	}
}
