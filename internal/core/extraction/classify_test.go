package extraction

import (
	"testing"

	"github.com/tavalos/papeleo/internal/core/domain"
)

func TestClassifyKnownTypes(t *testing.T) {
	lib := NewLibrary()
	cases := []struct {
		text string
		want domain.DocumentType
	}{
		{"FACTURA A\nNº: 0001-00001234", domain.TypeFactura},
		{"RECIBO DE PAGO\nConcepto: alquiler", domain.TypeRecibo},
		{"REPÚBLICA ARGENTINA\nDOCUMENTO NACIONAL DE IDENTIDAD\nDNI: 12345678", domain.TypeDNI},
		{"PASAPORTE\nREPÚBLICA ARGENTINA", domain.TypePasaporte},
		{"UNIVERSIDAD DE BUENOS AIRES otorga el título de Licenciado en Sistemas", domain.TypeTitulo},
		{"Se certifica el curso de soldadura", domain.TypeCertificado},
	}
	for _, tc := range cases {
		if got := lib.Classify(tc.text); got != tc.want {
			t.Fatalf("Classify(%.30q) = %s, want %s", tc.text, got, tc.want)
		}
	}
}

func TestClassifyFallbackNeverErrors(t *testing.T) {
	lib := NewLibrary()
	for _, text := range []string{"", "texto sin ninguna señal", "lorem ipsum dolor"} {
		if got := lib.Classify(text); got != domain.TypeDesconocido {
			t.Fatalf("expected desconocido for %q, got %s", text, got)
		}
	}
}

func TestClassifyPriorityOrder(t *testing.T) {
	lib := NewLibrary()
	// A receipt that mentions an invoice still reads as whatever signature
	// comes first in the fixed order.
	got := lib.Classify("FACTURA asociada al RECIBO 42")
	if got != domain.TypeFactura {
		t.Fatalf("expected factura by priority, got %s", got)
	}
}

func TestDetectIdentitySubtype(t *testing.T) {
	lib := NewLibrary()
	if got := lib.DetectIdentitySubtype("LIBRETA CÍVICA Nº 1234567"); got != domain.TypeDNILibreta {
		t.Fatalf("expected dni_libreta, got %s", got)
	}
	if got := lib.DetectIdentitySubtype("texto ilegible"); got != domain.TypeDNITarjeta {
		t.Fatalf("unrecognized layout must default to dni_tarjeta, got %s", got)
	}
}

func TestIsAFIPInvoiceThreshold(t *testing.T) {
	lib := NewLibrary()
	afipText := "AFIP\nComprobante Autorizado\nPunto de Venta: 0001\nComp. Nro: 123\nCUIT: 30-71234567-1\nImporte Total: $100"
	if !lib.IsAFIPInvoice(afipText) {
		t.Fatalf("five fiscal markers must route to the AFIP table")
	}
	if lib.IsAFIPInvoice("FACTURA simple\nCUIT: 20-12345678-6") {
		t.Fatalf("one marker is not an AFIP comprobante")
	}
}
