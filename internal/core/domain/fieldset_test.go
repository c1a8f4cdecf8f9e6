package domain

import "testing"

func TestInvoiceFieldsMapOmitsEmptyFields(t *testing.T) {
	fields := InvoiceFields{
		NumeroFactura: "0001-00001234",
		CUIT:          "20-12345678-9",
	}

	m := fields.Map()

	if m["numero_factura"] != "0001-00001234" {
		t.Fatalf("expected numero_factura in map, got %v", m["numero_factura"])
	}
	if m["tipo_documento"] != "factura" {
		t.Fatalf("expected tipo_documento factura, got %v", m["tipo_documento"])
	}
	for _, absent := range []string{"fecha", "emisor", "receptor", "totales", "items", "montos"} {
		if _, ok := m[absent]; ok {
			t.Fatalf("field %q must be absent when empty", absent)
		}
	}
}

func TestIdentityFieldsDefaultSubtype(t *testing.T) {
	fields := IdentityFields{NumeroDNI: "12345678"}
	if fields.Kind() != TypeDNITarjeta {
		t.Fatalf("expected default subtype dni_tarjeta, got %s", fields.Kind())
	}
	if fields.Map()["tipo_documento"] != "dni_tarjeta" {
		t.Fatalf("map must carry the default subtype")
	}

	fields.Tipo = TypePasaporte
	if fields.Kind() != TypePasaporte {
		t.Fatalf("expected pasaporte, got %s", fields.Kind())
	}
}

func TestAFIPInvoiceFieldsMapGroups(t *testing.T) {
	fields := AFIPInvoiceFields{
		Comprobante:  AFIPComprobante{Tipo: "Factura A", PuntoVenta: "0001", Numero: "00001234"},
		Emisor:       AFIPEmisor{CUIT: "30-71234567-0"},
		Autorizacion: AFIPAutorizacion{CAENumero: "74123456789012"},
	}

	m := fields.Map()

	comprobante, ok := m["informacion_comprobante"].(map[string]any)
	if !ok {
		t.Fatalf("expected grouped comprobante, got %T", m["informacion_comprobante"])
	}
	if comprobante["punto_venta"] != "0001" {
		t.Fatalf("expected punto_venta 0001, got %v", comprobante["punto_venta"])
	}
	if _, ok := m["comprador"]; ok {
		t.Fatalf("empty comprador group must be absent")
	}
	afip, ok := m["afip"].(map[string]any)
	if !ok || afip["cae_numero"] != "74123456789012" {
		t.Fatalf("expected cae_numero in afip group, got %v", m["afip"])
	}
}

func TestGenericFieldsExtraDoesNotOverride(t *testing.T) {
	fields := GenericFields{
		Emails: []string{"a@b.com"},
		Extra:  map[string]any{"emails": "clobber", "concepto": "alquiler"},
	}

	m := fields.Map()

	if _, ok := m["emails"].([]string); !ok {
		t.Fatalf("extra keys must not override populated fields")
	}
	if m["concepto"] != "alquiler" {
		t.Fatalf("expected residual extra key to be kept")
	}
}
