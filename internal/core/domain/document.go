package domain

import "time"

type DocumentStatus string

const (
	StatusUploaded   DocumentStatus = "uploaded"
	StatusProcessing DocumentStatus = "processing"
	StatusReady      DocumentStatus = "ready"
	StatusFailed     DocumentStatus = "failed"
)

// DocumentType tags the layout family a text belongs to. Identity and
// academic documents are refined to a subtype (dni_tarjeta, diploma)
// during extraction.
type DocumentType string

const (
	TypeFactura     DocumentType = "factura"
	TypeFacturaAFIP DocumentType = "factura_afip"
	TypeRecibo      DocumentType = "recibo"
	TypeBoleta      DocumentType = "boleta"
	TypeTitulo      DocumentType = "titulo"
	TypeDiploma     DocumentType = "diploma"
	TypeLicencia    DocumentType = "licencia"
	TypeCertificado DocumentType = "certificado"
	TypeDNI         DocumentType = "dni"
	TypeDNITarjeta  DocumentType = "dni_tarjeta"
	TypeDNILibreta  DocumentType = "dni_libreta"
	TypePasaporte   DocumentType = "pasaporte"
	TypeDesconocido DocumentType = "desconocido"
)

type Document struct {
	ID               string           `json:"id"`
	Filename         string           `json:"filename"`
	MimeType         string           `json:"mime_type"`
	StoragePath      string           `json:"storage_path"`
	DeclaredType     DocumentType     `json:"declared_type,omitempty"`
	OCRMethod        OCRMethod        `json:"ocr_method"`
	ExtractionMethod ExtractionMethod `json:"extraction_method"`
	Status           DocumentStatus   `json:"status"`
	Error            string           `json:"error,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}
