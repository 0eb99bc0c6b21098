package models

import (
	"bytes"
	"encoding/json"
)

// Payload is a JSON response body. It is always syntactically valid JSON;
// its shape is whatever the server chose to send.
type Payload struct {
	raw json.RawMessage
}

// ParsePayload validates b as JSON. The returned error carries the decoder's
// own message, e.g. "unexpected end of JSON input" for an empty body.
func ParsePayload(b []byte) (Payload, error) {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return Payload{}, err
	}
	return Payload{raw: append(json.RawMessage(nil), b...)}, nil
}

// MustPayload is ParsePayload for literals known to be valid.
func MustPayload(s string) Payload {
	p, err := ParsePayload([]byte(s))
	if err != nil {
		panic(err)
	}
	return p
}

func (p Payload) Raw() json.RawMessage { return p.raw }

// IsNull reports whether the body is the JSON literal null (or empty).
func (p Payload) IsNull() bool {
	t := bytes.TrimSpace(p.raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

// Truthy reports whether the body counts as present: anything except
// null, false, 0 and "".
func (p Payload) Truthy() bool {
	if p.IsNull() {
		return false
	}
	var v any
	if err := json.Unmarshal(p.raw, &v); err != nil {
		return true
	}
	switch value := v.(type) {
	case bool:
		return value
	case float64:
		return value != 0
	case string:
		return value != ""
	}
	return true
}

// ErrorField returns the body's "error" member when the body is an object
// and the member is truthy: not null, false, 0 or "". Non-string values are
// rendered with their JSON text.
func (p Payload) ErrorField() (string, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(p.raw, &obj); err != nil {
		return "", false
	}
	raw, ok := obj["error"]
	if !ok {
		return "", false
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", false
	}
	switch value := v.(type) {
	case nil:
		return "", false
	case bool:
		if !value {
			return "", false
		}
	case float64:
		if value == 0 {
			return "", false
		}
	case string:
		if value == "" {
			return "", false
		}
		return value, true
	}
	return string(bytes.TrimSpace(raw)), true
}

// User interprets the body as the current user. Bodies that are not an
// object still yield a User whose Raw holds them. id and email are decoded
// independently; a malformed one is left empty without losing the other.
func (p Payload) User() User {
	u := User{Raw: p.raw}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(p.raw, &obj); err != nil {
		return u
	}
	if raw, ok := obj["id"]; ok {
		var id UserID
		if err := id.UnmarshalJSON(raw); err == nil {
			u.ID = id
		}
	}
	if raw, ok := obj["email"]; ok {
		_ = json.Unmarshal(raw, &u.Email)
	}
	return u
}

// Indent renders the body the way the response panel shows it.
func (p Payload) Indent() string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, p.raw, "", "  "); err != nil {
		return string(p.raw)
	}
	return buf.String()
}

func (p Payload) String() string {
	return string(p.raw)
}
