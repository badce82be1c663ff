package database

import "testing"

func TestUUIDRoundTrip(t *testing.T) {
	id := NewUUID()
	if !id.Valid {
		t.Fatal("NewUUID() produced invalid UUID")
	}

	s := UUIDString(id)
	if s == "" {
		t.Fatal("UUIDString() returned empty for valid UUID")
	}

	parsed := ParseUUID(s)
	if !parsed.Valid {
		t.Fatalf("ParseUUID(%q) invalid", s)
	}
	if parsed.Bytes != id.Bytes {
		t.Errorf("round trip changed UUID: %v != %v", parsed.Bytes, id.Bytes)
	}
}

func TestParseUUIDInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty string", input: ""},
		{name: "not a uuid", input: "not-a-uuid"},
		{name: "truncated", input: "123e4567-e89b-12d3-a456"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseUUID(tt.input); got.Valid {
				t.Errorf("ParseUUID(%q).Valid = true, want false", tt.input)
			}
		})
	}
}

func TestUUIDStringInvalid(t *testing.T) {
	if got := UUIDString(ParseUUID("")); got != "" {
		t.Errorf("UUIDString(invalid) = %q, want empty", got)
	}
}
