package extraction

import (
	"regexp"
	"strings"

	"github.com/tavalos/papeleo/internal/core/domain"
)

// Collectors shared by the free-form business extractors. Amount shapes
// accept both argentine (1.234,56) and english (1,234.56) grouping.
var (
	dollarAmount   = regexp.MustCompile(`(?i)\$\s*(\d{1,3}(?:[.,]\d{3})*(?:[.,]\d{2})?)`)
	wordedAmount   = regexp.MustCompile(`(?i)(\d{1,3}(?:[.,]\d{3})*(?:[.,]\d{2})?)\s*(?:pesos|dolares|usd|ars)`)
	labeledTotal   = regexp.MustCompile(`(?i)(?:total|importe total|monto total)[:\s]*\$?\s*(\d{1,3}(?:[.,]\d{3})*(?:[.,]\d{2})?)`)
	itemRow        = regexp.MustCompile(`(\d+)\s+([A-Za-z\s]+)\s+\$?\s*(\d+[.,]\d{2})`)
	subtotalLine   = regexp.MustCompile(`(?i)(?:subtotal)[:\s]*\$?\s*(\d{1,3}(?:[.,]\d{3})*(?:[.,]\d{2})?)`)
	ivaLine        = regexp.MustCompile(`(?i)(?:iva|i\.v\.a\.)[:\s]*\$?\s*(\d{1,3}(?:[.,]\d{3})*(?:[.,]\d{2})?)`)
	totalLine      = regexp.MustCompile(`(?i)(?:total)[:\s]*\$?\s*(\d{1,3}(?:[.,]\d{3})*(?:[.,]\d{2})?)`)
	emailToken     = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)
	loosePhone     = regexp.MustCompile(`\+?\d{1,3}[-.\s]?\(?\d{1,4}\)?[-.\s]?\d{1,4}[-.\s]?\d{1,9}`)
	areaCodePhone  = regexp.MustCompile(`\(\d{3,4}\)\s*\d{6,8}`)
	spelledDateAny = regexp.MustCompile(`(?i)\d{1,2}\s+de\s+\w+\s+de\s+\d{4}`)
)

// extractInvoice runs the factura table plus the shared collectors. Issuer
// name comes from the document header, not a pattern.
func extractInvoice(lib *Library, text string) domain.InvoiceFields {
	return domain.InvoiceFields{
		NumeroFactura: extractFirst(text, lib.PatternsFor(domain.TypeFactura, "numero_factura")),
		Fecha:         firstDate(text),
		Emisor:        companyFromHeader(text),
		Receptor:      extractFirst(text, lib.PatternsFor(domain.TypeFactura, "receptor")),
		CUIT:          FormatCUIT(extractFirst(text, lib.PatternsFor(domain.TypeFactura, "cuit"))),
		CondicionIVA:  ivaCondition(lib, text),
		Montos:        collectAmounts(text),
		Items:         collectItems(text),
		Totales:       collectTotals(text),
	}
}

func extractReceipt(lib *Library, text string) domain.ReceiptFields {
	return domain.ReceiptFields{
		NumeroRecibo: extractFirst(text, lib.PatternsFor(domain.TypeRecibo, "numero_recibo")),
		Fecha:        firstDate(text),
		Emisor:       companyFromHeader(text),
		Receptor:     extractFirst(text, lib.PatternsFor(domain.TypeRecibo, "receptor")),
		Monto:        totalAmount(text),
		Concepto:     extractFirst(text, lib.PatternsFor(domain.TypeRecibo, "concepto")),
	}
}

// extractGeneric is the fallback for documents matching no known layout.
// Named entities are attached later by the NLP family when available.
func extractGeneric(docType domain.DocumentType, text string) domain.GenericFields {
	return domain.GenericFields{
		Tipo:      docType,
		Fechas:    collectDates(text),
		Montos:    collectAmounts(text),
		Emails:    collectEmails(text),
		Telefonos: collectPhones(text),
	}
}

func collectDates(text string) []string {
	dates := dateNumericAny.FindAllString(text, -1)
	dates = append(dates, spelledDateAny.FindAllString(text, -1)...)
	return dedupeStrings(dates)
}

func firstDate(text string) string {
	if dates := collectDates(text); len(dates) > 0 {
		return dates[0]
	}
	return ""
}

// collectAmounts gathers every monetary figure. The currency guess is
// document-wide: any mention of pesos marks all amounts ARS.
func collectAmounts(text string) []domain.MoneyAmount {
	currency := "USD"
	if strings.Contains(strings.ToLower(text), "peso") {
		currency = "ARS"
	}
	var amounts []domain.MoneyAmount
	for _, p := range [...]*regexp.Regexp{dollarAmount, wordedAmount} {
		for _, m := range p.FindAllStringSubmatch(text, -1) {
			amounts = append(amounts, domain.MoneyAmount{Valor: m[1], Moneda: currency})
		}
	}
	return amounts
}

// totalAmount prefers a labeled total and falls back to the last amount
// seen, which on receipts is usually the figure that matters.
func totalAmount(text string) string {
	if m := labeledTotal.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if amounts := collectAmounts(text); len(amounts) > 0 {
		return amounts[len(amounts)-1].Valor
	}
	return ""
}

func collectItems(text string) []domain.LineItem {
	var items []domain.LineItem
	for _, m := range itemRow.FindAllStringSubmatch(text, -1) {
		items = append(items, domain.LineItem{
			Cantidad:    m[1],
			Descripcion: strings.TrimSpace(m[2]),
			Precio:      m[3],
		})
	}
	return items
}

func collectTotals(text string) domain.Totals {
	var t domain.Totals
	if m := subtotalLine.FindStringSubmatch(text); m != nil {
		t.Subtotal = m[1]
	}
	if m := ivaLine.FindStringSubmatch(text); m != nil {
		t.IVA = m[1]
	}
	if m := totalLine.FindStringSubmatch(text); m != nil {
		t.Total = m[1]
	}
	return t
}

func collectEmails(text string) []string {
	return emailToken.FindAllString(text, -1)
}

func collectPhones(text string) []string {
	phones := loosePhone.FindAllString(text, -1)
	phones = append(phones, areaCodePhone.FindAllString(text, -1)...)
	return dedupeStrings(phones)
}

func ivaCondition(lib *Library, text string) string {
	raw := extractFirst(text, lib.PatternsFor(domain.TypeFactura, "condicion_iva"))
	if raw == "" {
		return ""
	}
	return titleCase(raw)
}

func headerLines(text string) []string {
	lines := strings.Split(text, "\n")
	if len(lines) > 10 {
		lines = lines[:10]
	}
	return lines
}

// companyFromHeader scans the document header for an issuer label and takes
// the following line as the company name.
func companyFromHeader(text string) string {
	lines := headerLines(text)
	for i, line := range lines {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "razón social") ||
			strings.Contains(lower, "empresa") ||
			strings.Contains(lower, "emisor") {
			if i+1 < len(lines) {
				return strings.TrimSpace(lines[i+1])
			}
		}
	}
	return ""
}

func headerText(text string) string {
	return strings.Join(headerLines(text), " ")
}
