package extraction

import "testing"

func TestValidDNI(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"12345678", true},
		{"1234567", true},
		{"123456789", false},
		{"abc12345", false},
		{"0999999", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := ValidDNI(tc.in); got != tc.want {
			t.Fatalf("ValidDNI(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestValidCUIT(t *testing.T) {
	if !ValidCUIT("20-12345678-6") {
		t.Fatalf("expected valid check digit")
	}
	if ValidCUIT("20-12345678-9") {
		t.Fatalf("wrong check digit must fail")
	}
	if ValidCUIT("20123456786") {
		t.Fatalf("undashed grouping must fail the format check")
	}
	if ValidCUIT("2-012345678-6") {
		t.Fatalf("wrong grouping must fail")
	}
}

func TestValidCAE(t *testing.T) {
	if !ValidCAE("20240115123456") {
		t.Fatalf("expected valid CAE")
	}
	if ValidCAE("19990115123456") {
		t.Fatalf("pre electronic era year must fail")
	}
	if ValidCAE("20241315123456") {
		t.Fatalf("month 13 must fail")
	}
	if ValidCAE("2024011512345") {
		t.Fatalf("13 digits must fail")
	}
}

func TestValidateCUITSuggestsFormatting(t *testing.T) {
	v := ValidateCUIT("20123456786")
	if v.Valid {
		t.Fatalf("undashed CUIT is invalid")
	}
	if len(v.Suggestions) == 0 {
		t.Fatalf("eleven loose digits deserve a formatting suggestion")
	}
}

func TestValidateCAEChecksExpiryFormat(t *testing.T) {
	v := ValidateCAE("20240115123456", "31/02/2024")
	if v.Valid {
		t.Fatalf("impossible calendar date must fail")
	}
	v = ValidateCAE("20240115123456", "15/02/2024")
	if !v.Valid {
		t.Fatalf("valid CAE with parseable expiry must pass, got %q", v.Error)
	}
}

func TestValidatorsNeverPanicOnGarbage(t *testing.T) {
	for _, in := range []string{"", "   ", "\x00\xff", "ñandú", "99-99999999-9"} {
		_ = ValidateDNI(in)
		_ = ValidateCUIT(in)
		_ = ValidateCAE(in, in)
	}
}
