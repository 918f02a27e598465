package shared

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Title string `json:"title"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr error
		errText string
	}{
		{name: "valid json", body: `{"title":"a"}`},
		{name: "trailing whitespace", body: "{\"title\":\"a\"}\n"},
		{name: "invalid json", body: `{"title":"a",}`, errText: "invalid character"},
		{name: "empty body", body: "", wantErr: ErrEmptyBody},
		{name: "two values", body: `{"title":"a"}{"title":"b"}`, errText: "single JSON value"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(tc.body))

			var p payload
			err := DecodeJSON(req, &p)

			switch {
			case tc.wantErr != nil:
				assert.ErrorIs(t, err, tc.wantErr)
			case tc.errText != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errText)
			default:
				require.NoError(t, err)
				assert.Equal(t, "a", p.Title)
			}
		})
	}
}

func TestDecodeJSON_BodyTooLarge(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"`+strings.Repeat("x", 100)+`"}`))
	req.Body = http.MaxBytesReader(rr, req.Body, 16)

	var p struct {
		Title string `json:"title"`
	}
	assert.ErrorIs(t, DecodeJSON(req, &p), ErrBodyTooLarge)
}
