package apierror

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMessage_NilAndAbsent(t *testing.T) {
	assert.Equal(t, "An error occurred", FormatMessage(nil))

	var apiErr *APIError
	assert.Equal(t, "An error occurred", FormatMessage(apiErr))

	var err error
	assert.Equal(t, "An error occurred", FormatMessage(err))
}

func TestFormatMessage_GenericError(t *testing.T) {
	assert.Equal(t, "x", FormatMessage(errors.New("x")))
	assert.Equal(t, "An error occurred", FormatMessage(errors.New("")))
	assert.Equal(t, "fetch animals: timeout", FormatMessage(fmt.Errorf("fetch animals: %w", errors.New("timeout"))))
}

func TestFormatMessage_APIError(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want string
	}{
		{
			name: "generic message suppressed when fields present",
			err:  New("API request failed", 400, FieldErrors{}.Add("field1", "Error 1", "Error 2")),
			want: "field1: Error 1, field1: Error 2",
		},
		{
			name: "specific message appended after fields",
			err: New("Validation failed", 400, FieldErrors{}.
				Add("apikey", "Invalid API key").
				Add("search", "Required")),
			want: "apikey: Invalid API key, search: Required, Validation failed",
		},
		{
			name: "status without fields",
			err:  New("API request failed", 500, nil),
			want: "API request failed (500)",
		},
		{
			name: "message only",
			err:  New("Not authorized", 0, nil),
			want: "Not authorized",
		},
		{
			name: "empty message falls back to default",
			err:  New("", 404, nil),
			want: "API request failed (404)",
		},
		{
			name: "zero value literal",
			err:  &APIError{},
			want: "API request failed",
		},
		{
			name: "literal with blank message and status",
			err:  &APIError{Message: "  ", StatusCode: 502},
			want: "API request failed (502)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMessage(tt.err))
		})
	}
}

func TestFormatMessage_ValidationContainsEveryPart(t *testing.T) {
	err := New("Validation failed", 400, FieldErrors{}.
		Add("apikey", "Invalid API key").
		Add("search", "Required"))

	got := FormatMessage(err)
	assert.Contains(t, got, "apikey: Invalid API key")
	assert.Contains(t, got, "search: Required")
	assert.Contains(t, got, "Validation failed")
}

func TestFormatMessage_WrappedAPIError(t *testing.T) {
	err := fmt.Errorf("search animals: %w", New("API request failed", 502, nil))
	assert.Equal(t, "API request failed (502)", FormatMessage(err))
}

func TestFormatMessage_NonErrorValues(t *testing.T) {
	assert.Equal(t, "plain text", FormatMessage("plain text"))
	assert.Equal(t, "42", FormatMessage(42))
	assert.Equal(t, `{"code":"E1"}`, FormatMessage(map[string]string{"code": "E1"}))

	// channels cannot be marshalled, so the %v form is used
	ch := make(chan int)
	assert.Equal(t, fmt.Sprintf("%v", ch), FormatMessage(ch))
}

type panickyError struct{}

func (panickyError) Error() string { panic("boom") }

func TestFormatMessage_NeverPanics(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.Equal(t, "An error occurred", FormatMessage(panickyError{}))
	})
}

func TestFormatMessage_Idempotent(t *testing.T) {
	err := New("Validation failed", 422, FieldErrors{}.Add("location", "Invalid postcode"))
	first := FormatMessage(err)
	second := FormatMessage(err)
	assert.Equal(t, first, second)
}

func TestIsAPIError(t *testing.T) {
	assert.True(t, IsAPIError(New("nope", 401, nil)))
	assert.True(t, IsAPIError(fmt.Errorf("wrapped: %w", New("nope", 401, nil))))

	var typedNil *APIError
	assert.False(t, IsAPIError(typedNil))
	assert.False(t, IsAPIError(errors.New("plain")))
	assert.False(t, IsAPIError("API request failed"))
	assert.False(t, IsAPIError(nil))
	assert.False(t, IsAPIError(map[string]any{"message": "API request failed", "statusCode": 500}))
	assert.False(t, IsAPIError(APIError{Message: "value, not pointer"}))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, KindAPI, Classify(New("x", 0, nil)).Kind)
	assert.Equal(t, KindGeneric, Classify(errors.New("x")).Kind)
	assert.Equal(t, KindUnknown, Classify(3.5).Kind)
	assert.Equal(t, KindUnknown, Classify(nil).Kind)
	assert.Equal(t, "api", KindAPI.String())
}

func TestNew_CopiesFieldErrors(t *testing.T) {
	fields := FieldErrors{}.Add("type", "Unknown type")
	err := New("bad", 400, fields)
	fields[0].Messages[0] = "mutated"
	assert.Equal(t, []string{"Unknown type"}, err.FieldErrors.Get("type"))
}

func TestFieldErrors_UnmarshalKeepsOrder(t *testing.T) {
	var payload struct {
		Message string      `json:"message"`
		Errors  FieldErrors `json:"errors"`
	}
	raw := `{"message":"Validation failed","errors":{"zeta":["z1","z2"],"alpha":"a1","mid":[]}}`
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))

	require.Len(t, payload.Errors, 3)
	assert.Equal(t, "zeta", payload.Errors[0].Field)
	assert.Equal(t, []string{"z1", "z2"}, payload.Errors[0].Messages)
	assert.Equal(t, "alpha", payload.Errors[1].Field)
	assert.Equal(t, []string{"a1"}, payload.Errors[1].Messages)
	assert.Equal(t, "mid", payload.Errors[2].Field)

	encoded, err := json.Marshal(payload.Errors)
	require.NoError(t, err)
	assert.JSONEq(t, `{"zeta":["z1","z2"],"alpha":["a1"],"mid":[]}`, string(encoded))
}

func TestFieldErrors_UnmarshalRejectsNonObject(t *testing.T) {
	var fields FieldErrors
	assert.Error(t, json.Unmarshal([]byte(`["a"]`), &fields))
	require.NoError(t, json.Unmarshal([]byte(`null`), &fields))
	assert.Nil(t, fields)
}
