package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // valid UUIDv7
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B", // valid UUIDv7 (uppercase)
	}
	invalid := []string{
		"123e4567-e89b-12d3-a456-426614174000", // not v7
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",     // missing dashes
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // invalid hex
		"",                                     // empty
	}
	for _, uuid := range valid {
		if !IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = false, want true", uuid)
		}
	}
	for _, uuid := range invalid {
		if IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = true, want false", uuid)
		}
	}
}

func TestParseBool(t *testing.T) {
	cases := []struct {
		input  string
		want   bool
		wantOK bool
	}{
		{"True", true, true},
		{"False", false, true},
		{"1", true, true},
		{"0", false, true},
		{" true ", true, true},
		{"maybe", false, false},
		{"", false, false},
	}
	for _, c := range cases {
		got, ok := ParseBool(c.input)
		if got != c.want || ok != c.wantOK {
			t.Errorf("ParseBool(%q) = %v, %v, want %v, %v", c.input, got, ok, c.want, c.wantOK)
		}
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "ids", Message: "ids is required"},
		{Field: "view", Message: "view is required"},
	}
	m := errs.ToMap()
	if m["ids"] != "ids is required" || m["view"] != "view is required" {
		t.Errorf("ToMap() = %v", m)
	}
	if errs.Error() != "ids: ids is required; view: view is required" {
		t.Errorf("Error() = %q", errs.Error())
	}
}
