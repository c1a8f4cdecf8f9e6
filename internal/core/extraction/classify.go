package extraction

import (
	"strings"

	"github.com/tavalos/papeleo/internal/core/domain"
)

// Classify guesses the document family from keyword signatures, in
// priority order. Earlier families win when a document mentions several.
func (l *Library) Classify(text string) domain.DocumentType {
	lower := strings.ToLower(text)
	for _, sig := range l.signatures {
		for _, kw := range sig.keywords {
			if strings.Contains(lower, kw) {
				return sig.docType
			}
		}
	}
	return domain.TypeDesconocido
}

// DetectIdentitySubtype distinguishes card and booklet DNI layouts from
// passports. Unrecognized layouts count as the modern card.
func (l *Library) DetectIdentitySubtype(text string) domain.DocumentType {
	upper := strings.ToUpper(text)
	for _, sig := range l.identity {
		for _, p := range sig.patterns {
			if p.MatchString(upper) {
				return sig.docType
			}
		}
	}
	return domain.TypeDNITarjeta
}

// IsAFIPInvoice reports whether the text carries enough fiscal markers
// (CAE, CUIT, IVA condition and the like) to be treated as a formal AFIP
// comprobante rather than a free-form invoice.
func (l *Library) IsAFIPInvoice(text string) bool {
	lower := strings.ToLower(text)
	found := 0
	for _, ind := range l.afipIndicators {
		if strings.Contains(lower, ind) {
			found++
			if found >= 5 {
				return true
			}
		}
	}
	return false
}
