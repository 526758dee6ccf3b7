package api

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestCoerceOptionalBool(t *testing.T) {
	tests := []struct {
		raw       string
		wantValid bool
		want      bool
		wantErr   bool
	}{
		{`true`, true, true, false},
		{`false`, true, false, false},
		{`null`, false, false, false},
		{`1`, true, true, false},
		{`0`, true, false, false},
		{`2`, false, false, true},
		{`"ON"`, true, true, false},
		{`"no"`, true, false, false},
		{`"maybe"`, false, false, true},
		{`[]`, false, false, true},
	}

	for _, tt := range tests {
		got, fe := coerceOptionalBool(json.RawMessage(tt.raw), "is_offer")
		if (fe != nil) != tt.wantErr {
			t.Errorf("coerceOptionalBool(%s) error = %v, wantErr %v", tt.raw, fe, tt.wantErr)
			continue
		}
		if got.Valid != tt.wantValid || got.Bool != tt.want {
			t.Errorf("coerceOptionalBool(%s) = %+v, want valid=%v bool=%v", tt.raw, got, tt.wantValid, tt.want)
		}
	}
}

func TestCoerceFloat(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{`9.99`, 9.99, false},
		{`-3`, -3, false},
		{`" 12.5 "`, 12.5, false},
		{`true`, 1, false},
		{`"NaN"`, 0, true},
		{`"inf"`, 0, true},
		{`"abc"`, 0, true},
		{`null`, 0, true},
		{`{}`, 0, true},
	}

	for _, tt := range tests {
		got, fe := coerceFloat(json.RawMessage(tt.raw), "price")
		if (fe != nil) != tt.wantErr {
			t.Errorf("coerceFloat(%s) error = %v, wantErr %v", tt.raw, fe, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("coerceFloat(%s) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestCoerceString(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{`"Widget"`, "Widget", false},
		{`""`, "", false},
		{`42`, "42", false},
		{`1.5`, "1.5", false},
		{`1e2`, "100.0", false},
		{`-0`, "0", false},
		{`-0.0`, "-0.0", false},
		{`2.50`, "2.5", false},
		{`1e16`, "1e+16", false},
		{`1.5e-5`, "1.5e-05", false},
		{`0.0001`, "0.0001", false},
		{`1e400`, "inf", false},
		{`12345678901234567890`, "12345678901234567890", false},
		{`true`, "", true},
		{`null`, "", true},
		{`["a"]`, "", true},
	}

	for _, tt := range tests {
		got, fe := coerceString(json.RawMessage(tt.raw), "name")
		if (fe != nil) != tt.wantErr {
			t.Errorf("coerceString(%s) error = %v, wantErr %v", tt.raw, fe, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("coerceString(%s) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
