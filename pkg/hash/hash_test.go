package hash

import (
	"testing"
)

func TestSHA256Hex(t *testing.T) {
	// Known SHA256 of "hello"
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	got := SHA256Hex("hello")
	if got != want {
		t.Errorf("SHA256Hex(\"hello\") = %s, want %s", got, want)
	}
}

func TestSHA256Hex_Empty(t *testing.T) {
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	got := SHA256Hex("")
	if got != want {
		t.Errorf("SHA256Hex(\"\") = %s, want %s", got, want)
	}
}

func TestPrefix(t *testing.T) {
	full := SHA256Hex("general|nota|daily")

	tests := []struct {
		name      string
		prefixLen int
		want      string
	}{
		{"4 char prefix", 4, full[:4]},
		{"16 char prefix", 16, full[:16]},
		{"full hash if prefix too long", 100, full},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Prefix("general|nota|daily", tt.prefixLen)
			if got != tt.want {
				t.Errorf("Prefix(%d) = %s, want %s", tt.prefixLen, got, tt.want)
			}
		})
	}
}

func TestFingerprint(t *testing.T) {
	type filters struct {
		Dashboard string
		Date      string
	}

	a, err := Fingerprint(filters{"general", "2025-05-01"}, 16)
	if err != nil {
		t.Fatalf("Fingerprint error: %v", err)
	}
	b, _ := Fingerprint(filters{"general", "2025-05-01"}, 16)
	c, _ := Fingerprint(filters{"general", "2025-05-02"}, 16)

	if len(a) != 16 {
		t.Errorf("len = %d, want 16", len(a))
	}
	if a != b {
		t.Errorf("equal filters gave %s and %s", a, b)
	}
	if a == c {
		t.Error("different filters should give different keys")
	}
}

func TestFingerprint_Unencodable(t *testing.T) {
	if _, err := Fingerprint(make(chan int), 16); err == nil {
		t.Error("expected an error for a channel value")
	}
}
