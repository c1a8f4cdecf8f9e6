package extraction

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tavalos/papeleo/internal/core/domain"
)

var (
	cuitShape     = regexp.MustCompile(`^\d{2}-\d{8}-\d{1}$`)
	currencyShape = regexp.MustCompile(`^\d{1,3}(?:[.,]\d{3})*(?:[.,]\d{2})?$`)
	digitsShape   = regexp.MustCompile(`^\d+$`)
)

// cuitMultipliers weight the first ten digits of a CUIT for its mod-11
// check digit.
var cuitMultipliers = [...]int{5, 4, 3, 2, 7, 6, 5, 4, 3, 2}

// ValidDNI reports whether a string is a plausible argentine DNI number:
// seven or eight digits inside the issued range.
func ValidDNI(dni string) bool {
	if !dniShape.MatchString(dni) {
		return false
	}
	n, err := strconv.Atoi(dni)
	if err != nil {
		return false
	}
	return n >= 1_000_000 && n <= 99_999_999
}

// ValidCUIT checks the NN-NNNNNNNN-N grouping and the mod-11 check digit.
func ValidCUIT(cuit string) bool {
	if !cuitShape.MatchString(cuit) {
		return false
	}
	digits := digitsOnly(cuit)

	sum := 0
	for i, mult := range cuitMultipliers {
		sum += int(digits[i]-'0') * mult
	}
	rest := sum % 11
	check := rest
	if rest > 1 {
		check = 11 - rest
	}
	return check == int(digits[10]-'0')
}

// ValidCAE checks a cleaned CAE number: fourteen digits whose leading
// eight read as an issue date in the electronic invoicing era.
func ValidCAE(cae string) bool {
	if len(cae) != 14 || !digitsShape.MatchString(cae) {
		return false
	}
	year, _ := strconv.Atoi(cae[0:4])
	month, _ := strconv.Atoi(cae[4:6])
	day, _ := strconv.Atoi(cae[6:8])
	return year >= 2000 && year <= 2030 && month >= 1 && month <= 12 && day >= 1 && day <= 31
}

// ValidCAEVencimiento requires the CAE expiry to parse as a real calendar
// date. Expired codes still validate, only the format matters here.
func ValidCAEVencimiento(fecha string) bool {
	_, err := time.Parse("02/01/2006", fecha)
	return err == nil
}

func validAFIPDate(fecha string) bool {
	return dateNumericShape.MatchString(fecha)
}

func allDigits(s string) bool {
	return digitsShape.MatchString(s)
}

func validCurrency(s string) bool {
	return currencyShape.MatchString(strings.TrimSpace(s))
}

// ValidateDNI is the standalone verdict form of ValidDNI.
func ValidateDNI(dni string) domain.FieldValidation {
	v := domain.FieldValidation{Value: dni, Valid: ValidDNI(dni), Confidence: confidenceValid}
	if !v.Valid {
		v.Confidence = confidenceInvalid
		v.Error = "el DNI debe tener 7 u 8 dígitos dentro del rango emitido"
		if digitsShape.MatchString(dni) && len(dni) > 8 {
			v.Suggestions = append(v.Suggestions, "verificar dígitos de más leídos por OCR")
		}
	}
	return v
}

// ValidateCUIT is the standalone verdict form of ValidCUIT. Eleven loose
// digits earn a formatting suggestion instead of a silent failure.
func ValidateCUIT(cuit string) domain.FieldValidation {
	v := domain.FieldValidation{Value: cuit, Valid: ValidCUIT(cuit), Confidence: confidenceValid}
	if !v.Valid {
		v.Confidence = confidenceInvalid
		v.Error = "el CUIT debe tener el formato NN-NNNNNNNN-N con dígito verificador válido"
		if digits := digitsOnly(cuit); len(digits) == 11 {
			v.Suggestions = append(v.Suggestions, "probar con el formato "+FormatCUIT(digits))
			v.Confidence = confidenceNearMiss
		}
	}
	return v
}

// ValidateCAE validates the authorization code together with its expiry.
func ValidateCAE(cae, vencimiento string) domain.FieldValidation {
	cleaned := digitsOnly(cae)
	v := domain.FieldValidation{Value: cae, Valid: true, Confidence: confidenceValid}
	if !ValidCAE(cleaned) {
		v.Valid = false
		v.Confidence = confidenceInvalid
		v.Error = "el CAE debe tener 14 dígitos con fecha de emisión plausible"
		return v
	}
	if vencimiento != "" && !ValidCAEVencimiento(vencimiento) {
		v.Valid = false
		v.Confidence = confidenceNearMiss
		v.Error = fmt.Sprintf("vencimiento de CAE no es una fecha DD/MM/YYYY: %q", vencimiento)
	}
	return v
}

// ValidDate accepts the two date shapes the extractor emits.
func ValidDate(fecha string) bool {
	if _, err := time.Parse("02/01/2006", fecha); err == nil {
		return true
	}
	return dateNumericShape.MatchString(fecha) || dateSpelledShape.MatchString(fecha)
}
