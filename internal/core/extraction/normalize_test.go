package extraction

import "testing"

func TestNormalizeDate(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"already normalized", "15/03/1985", "15/03/1985"},
		{"zero pads day and month", "1/2/1999", "01/02/1999"},
		{"dashes become slashes", "15-03-1985", "15/03/1985"},
		{"two digit year keeps literal twenty prefix", "15-03-85", "15/03/2085"},
		{"spelled out spanish month", "15 de marzo de 1985", "15/03/1985"},
		{"unknown month resolves to january", "3 de brumario de 1985", "03/01/1985"},
		{"unrecognized input passes through", "ayer", "ayer"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeDate(tc.in); got != tc.want {
				t.Fatalf("NormalizeDate(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestCleanPersonName(t *testing.T) {
	if got := CleanPersonName("  pérez,  juan. 123 "); got != "PÉREZ JUAN" {
		t.Fatalf("got %q", got)
	}
	if got := CleanPersonName("GONZÁLEZ"); got != "GONZÁLEZ" {
		t.Fatalf("accented letters must survive, got %q", got)
	}
}

func TestCleanSexo(t *testing.T) {
	for in, want := range map[string]string{
		"M": "M", "masculino": "M", "FEMENINO": "F", "f": "F", "X": "X",
	} {
		if got := CleanSexo(in); got != want {
			t.Fatalf("CleanSexo(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCleanNacionalidad(t *testing.T) {
	if got := CleanNacionalidad("argentina"); got != "ARGENTINO" {
		t.Fatalf("got %q", got)
	}
	if got := CleanNacionalidad("URUGUAYA"); got != "URUGUAYA" {
		t.Fatalf("non argentine labels pass through, got %q", got)
	}
}

func TestFormatCUIT(t *testing.T) {
	if got := FormatCUIT("20123456786"); got != "20-12345678-6" {
		t.Fatalf("got %q", got)
	}
	if got := FormatCUIT("20-12345678-6"); got != "20-12345678-6" {
		t.Fatalf("dashed input must be stable, got %q", got)
	}
	if got := FormatCUIT("12345"); got != "12345" {
		t.Fatalf("short input passes through, got %q", got)
	}
}
