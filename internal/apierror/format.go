package apierror

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Kind tags the variants of Failure.
type Kind int

const (
	KindUnknown Kind = iota // any non-error value
	KindGeneric             // an error that is not an API error
	KindAPI                 // an *APIError, possibly wrapped
)

func (k Kind) String() string {
	switch k {
	case KindAPI:
		return "api"
	case KindGeneric:
		return "generic"
	default:
		return "unknown"
	}
}

// Failure is a caught value sorted into one of three kinds.
type Failure struct {
	Kind Kind

	API     *APIError // KindAPI
	Message string    // KindGeneric
	Value   any       // KindUnknown; nil when nothing was caught
}

// Classify sorts v into a Failure. Typed nil errors classify as an absent
// unknown value.
func Classify(v any) Failure {
	if isNil(v) {
		return Failure{Kind: KindUnknown}
	}
	if err, ok := v.(error); ok {
		if apiErr, ok := As(err); ok {
			return Failure{Kind: KindAPI, API: apiErr}
		}
		return Failure{Kind: KindGeneric, Message: err.Error()}
	}
	return Failure{Kind: KindUnknown, Value: v}
}

// Display renders the failure for a toast or banner.
func (f Failure) Display() string {
	switch f.Kind {
	case KindAPI:
		return formatAPIError(f.API)
	case KindGeneric:
		if f.Message == "" {
			return fallbackMessage
		}
		return f.Message
	default:
		return formatValue(f.Value)
	}
}

// FormatMessage renders any caught value as display text. It never panics.
func FormatMessage(v any) (msg string) {
	defer func() {
		if r := recover(); r != nil {
			msg = fallbackMessage
		}
	}()
	return Classify(v).Display()
}

func formatAPIError(e *APIError) string {
	if len(e.FieldErrors) > 0 {
		var parts []string
		for _, fe := range e.FieldErrors {
			for _, msg := range fe.Messages {
				parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, msg))
			}
		}
		if e.Message != "" && e.Message != DefaultMessage {
			parts = append(parts, e.Message)
		}
		if len(parts) > 0 {
			return strings.Join(parts, ", ")
		}
	}
	message := e.Message
	if strings.TrimSpace(message) == "" {
		message = DefaultMessage
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (%d)", message, e.StatusCode)
	}
	return message
}

func formatValue(v any) string {
	if v == nil {
		return fallbackMessage
	}
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
