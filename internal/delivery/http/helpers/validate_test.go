package helpers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidUUID(t *testing.T) {
	assert.True(t, ValidUUID("2b1f0a4e-9d3c-4c5a-8f6e-1a2b3c4d5e6f"))
	assert.True(t, ValidUUID("2B1F0A4E-9D3C-4C5A-8F6E-1A2B3C4D5E6F"))

	for _, s := range []string{
		"",
		"not-a-uuid",
		"2b1f0a4e9d3c4c5a8f6e1a2b3c4d5e6f",
		"2b1f0a4e-9d3c-4c5a-8f6e-1a2b3c4d5e6",
		"2b1f0a4e-9d3c-4c5a-8f6e-1a2b3c4d5e6f-extra",
		"zb1f0a4e-9d3c-4c5a-8f6e-1a2b3c4d5e6f",
	} {
		assert.False(t, ValidUUID(s), "input %q", s)
	}
}

type validatedDTO struct {
	Name string `json:"name"`
}

func (d validatedDTO) Validate() []string {
	if d.Name == "" {
		return []string{"name is required"}
	}
	return nil
}

func TestDecodeAndValidate(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"x"}`))
		rec := httptest.NewRecorder()
		var dto validatedDTO
		require.True(t, DecodeAndValidate(rec, req, &dto))
		assert.Equal(t, "x", dto.Name)
	})

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{`))
		rec := httptest.NewRecorder()
		var dto validatedDTO
		require.False(t, DecodeAndValidate(rec, req, &dto))
		assert.Equal(t, 400, rec.Code)
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"x","bogus":1}`))
		rec := httptest.NewRecorder()
		var dto validatedDTO
		require.False(t, DecodeAndValidate(rec, req, &dto))
		assert.Equal(t, 400, rec.Code)
	})

	t.Run("validation failure", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":""}`))
		rec := httptest.NewRecorder()
		var dto validatedDTO
		require.False(t, DecodeAndValidate(rec, req, &dto))
		assert.Equal(t, 400, rec.Code)
		assert.Contains(t, rec.Body.String(), "name is required")
	})
}

func TestUnmarshalAndValidate(t *testing.T) {
	rec := httptest.NewRecorder()
	var dto validatedDTO
	require.True(t, UnmarshalAndValidate(rec, `{"name":"x"}`, &dto))
	assert.Equal(t, "x", dto.Name)

	rec = httptest.NewRecorder()
	require.False(t, UnmarshalAndValidate(rec, `not json`, &dto))
	assert.Equal(t, 400, rec.Code)
}
