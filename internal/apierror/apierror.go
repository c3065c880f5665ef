// Package apierror defines the typed failure returned by the rescue API client
// and the formatter that turns any failure into display text.
package apierror

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultMessage is used when the API fails without saying why. The
	// formatter hides it whenever field errors are available.
	DefaultMessage = "API request failed"

	fallbackMessage = "An error occurred"
)

// APIError reports a failed remote call.
type APIError struct {
	Message     string
	StatusCode  int // zero when the failure happened without an HTTP status
	FieldErrors FieldErrors
}

// New builds an APIError. An empty message becomes DefaultMessage.
func New(message string, statusCode int, fields FieldErrors) *APIError {
	if strings.TrimSpace(message) == "" {
		message = DefaultMessage
	}
	return &APIError{
		Message:     message,
		StatusCode:  statusCode,
		FieldErrors: fields.clone(),
	}
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
	}
	return e.Message
}

// FieldError holds the validation messages reported for one input field.
type FieldError struct {
	Field    string
	Messages []string
}

// FieldErrors keeps field errors in the order the server listed them.
type FieldErrors []FieldError

// Add appends messages for field, merging with an existing entry.
func (f FieldErrors) Add(field string, messages ...string) FieldErrors {
	for i := range f {
		if f[i].Field == field {
			f[i].Messages = append(f[i].Messages, messages...)
			return f
		}
	}
	return append(f, FieldError{Field: field, Messages: messages})
}

// Get returns the messages for field.
func (f FieldErrors) Get(field string) []string {
	for _, fe := range f {
		if fe.Field == field {
			return fe.Messages
		}
	}
	return nil
}

func (f FieldErrors) clone() FieldErrors {
	if len(f) == 0 {
		return nil
	}
	dup := make(FieldErrors, len(f))
	for i, fe := range f {
		dup[i] = FieldError{Field: fe.Field, Messages: append([]string(nil), fe.Messages...)}
	}
	return dup
}

// UnmarshalJSON decodes {"field": ["msg", ...]} keeping key order. A single
// string value is accepted in place of an array.
func (f *FieldErrors) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*f = nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("field errors: expected object, got %v", tok)
	}

	var out FieldErrors
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("field errors: unexpected key %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("field errors: decode %q: %w", key, err)
		}
		messages, err := decodeMessages(raw)
		if err != nil {
			return fmt.Errorf("field errors: decode %q: %w", key, err)
		}
		out = out.Add(key, messages...)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*f = out
	return nil
}

// MarshalJSON encodes field errors as an object in their stored order.
func (f FieldErrors) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, fe := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(fe.Field)
		if err != nil {
			return nil, err
		}
		msgs := fe.Messages
		if msgs == nil {
			msgs = []string{}
		}
		val, err := json.Marshal(msgs)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func decodeMessages(raw json.RawMessage) ([]string, error) {
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var single string
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, err
	}
	return []string{single}, nil
}

// IsAPIError reports whether v is, or wraps, an *APIError.
func IsAPIError(v any) bool {
	return Classify(v).Kind == KindAPI
}

// As returns the *APIError carried by err, if any.
func As(err error) (*APIError, bool) {
	var apiErr *APIError
	if err == nil || !errors.As(err, &apiErr) || apiErr == nil {
		return nil, false
	}
	return apiErr, true
}
