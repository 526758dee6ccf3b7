package api

import (
	"bytes"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/guregu/null.v3"

	"github.com/erazemk/artikli/internal/model"
)

// maxBodyBytes caps item request bodies.
const maxBodyBytes = 1 << 20

// FieldError describes one input that failed type coercion. Loc is the path
// to the value, e.g. ["body", "price"] or ["path", "item_id"].
type FieldError struct {
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

func fieldError(msg, typ string, loc ...any) FieldError {
	return FieldError{Loc: loc, Msg: msg, Type: typ}
}

// parseItemID coerces the {id} path segment to an integer.
func parseItemID(r *http.Request) (int64, *FieldError) {
	id, err := strconv.ParseInt(strings.TrimSpace(r.PathValue("id")), 10, 64)
	if err != nil {
		fe := fieldError("value is not a valid integer", "type_error.integer", "path", "item_id")
		return 0, &fe
	}
	return id, nil
}

// decodeItemInput reads an item body and coerces each field to its type.
// All failing fields are reported together.
func decodeItemInput(w http.ResponseWriter, r *http.Request) (model.ItemInput, []FieldError) {
	var in model.ItemInput

	defer r.Body.Close()
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return in, []FieldError{fieldError("request body too large or unreadable", "value_error", "body")}
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return in, []FieldError{fieldError("field required", "value_error.missing", "body")}
	}

	if !json.Valid(data) {
		return in, []FieldError{fieldError("invalid JSON body", "value_error.jsondecode", "body")}
	}
	if kindOf(data) != '{' {
		return in, []FieldError{fieldError("value is not a valid dict", "type_error.dict", "body")}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return in, []FieldError{fieldError(err.Error(), "value_error.jsondecode", "body")}
	}

	var (
		errs  []FieldError
		name  string
		price float64
		offer null.Bool
	)

	if v, ok := fields["name"]; !ok {
		errs = append(errs, fieldError("field required", "value_error.missing", "body", "name"))
	} else if s, fe := coerceString(v, "name"); fe != nil {
		errs = append(errs, *fe)
	} else {
		name = s
	}

	if v, ok := fields["price"]; !ok {
		errs = append(errs, fieldError("field required", "value_error.missing", "body", "price"))
	} else if f, fe := coerceFloat(v, "price"); fe != nil {
		errs = append(errs, *fe)
	} else {
		price = f
	}

	if v, ok := fields["is_offer"]; ok {
		b, fe := coerceOptionalBool(v, "is_offer")
		if fe != nil {
			errs = append(errs, *fe)
		} else {
			offer = b
		}
	}

	if len(errs) > 0 {
		return in, errs
	}

	input := model.NewItemInput(name, price)
	if offer.Valid {
		input.WithOffer(offer.Bool)
	}
	return *input, nil
}

func kindOf(v json.RawMessage) byte {
	v = bytes.TrimSpace(v)
	if len(v) == 0 {
		return 0
	}
	switch c := v[0]; {
	case c == '"', c == 't', c == 'f', c == 'n', c == '{', c == '[':
		return c
	case c == '-' || (c >= '0' && c <= '9'):
		return '0'
	}
	return 0
}

func notNone(field string) *FieldError {
	fe := fieldError("none is not an allowed value", "type_error.none.not_allowed", "body", field)
	return &fe
}

// coerceString accepts strings and numbers. Integers keep their digits;
// other numbers are written as decimal text, e.g. 1e2 becomes "100.0".
func coerceString(v json.RawMessage, field string) (string, *FieldError) {
	switch kindOf(v) {
	case '"':
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			return s, nil
		}
	case '0':
		if s, ok := numberText(string(bytes.TrimSpace(v))); ok {
			return s, nil
		}
	case 'n':
		return "", notNone(field)
	}
	fe := fieldError("str type expected", "type_error.str", "body", field)
	return "", &fe
}

// numberText renders a JSON number literal as text. Integer literals stay
// as written (minus zero becomes 0). Fractional or exponent literals use
// the shortest round-trip digits: fixed notation with at least one
// decimal for exponents in [-4, 16), scientific notation otherwise.
func numberText(lit string) (string, bool) {
	if !strings.ContainsAny(lit, ".eE") {
		if strings.Trim(lit, "-0") == "" {
			return "0", true
		}
		return lit, true
	}

	f, err := strconv.ParseFloat(lit, 64)
	if err != nil && !math.IsInf(f, 0) {
		return "", false
	}
	switch {
	case math.IsInf(f, 1):
		return "inf", true
	case math.IsInf(f, -1):
		return "-inf", true
	}

	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, _ := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if exp < -4 || exp >= 16 {
		return sci, true
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s, true
}

// coerceFloat accepts numbers, numeric strings and booleans (as 1 and 0).
// NaN and infinities are rejected because they cannot be written back as JSON.
func coerceFloat(v json.RawMessage, field string) (float64, *FieldError) {
	var f float64
	ok := false

	switch kindOf(v) {
	case '0':
		ok = json.Unmarshal(v, &f) == nil
	case '"':
		var s string
		if json.Unmarshal(v, &s) == nil {
			parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			f, ok = parsed, err == nil
		}
	case 't':
		f, ok = 1, true
	case 'f':
		f, ok = 0, true
	case 'n':
		return 0, notNone(field)
	}

	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		fe := fieldError("value is not a valid float", "type_error.float", "body", field)
		return 0, &fe
	}
	return f, nil
}

var (
	boolTrue  = map[string]bool{"1": true, "on": true, "t": true, "true": true, "y": true, "yes": true}
	boolFalse = map[string]bool{"0": true, "off": true, "f": true, "false": true, "n": true, "no": true}
)

// coerceOptionalBool accepts booleans, null, the numbers 0 and 1, and the
// usual yes/no spellings.
func coerceOptionalBool(v json.RawMessage, field string) (null.Bool, *FieldError) {
	switch kindOf(v) {
	case 'n':
		return null.Bool{}, nil
	case 't', 'f':
		var b bool
		if json.Unmarshal(v, &b) == nil {
			return null.BoolFrom(b), nil
		}
	case '0':
		var f float64
		if json.Unmarshal(v, &f) == nil && (f == 0 || f == 1) {
			return null.BoolFrom(f == 1), nil
		}
	case '"':
		var s string
		if json.Unmarshal(v, &s) == nil {
			s = strings.ToLower(s)
			if boolTrue[s] {
				return null.BoolFrom(true), nil
			}
			if boolFalse[s] {
				return null.BoolFrom(false), nil
			}
		}
	}
	fe := fieldError("value could not be parsed to a boolean", "type_error.bool", "body", field)
	return null.Bool{}, &fe
}
