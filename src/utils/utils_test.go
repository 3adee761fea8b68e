package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCurrencyIDR(t *testing.T) {
	assert.Equal(t, "Rp 150.000", FormatCurrency(150000, "IDR"))
	assert.Equal(t, "Rp 0", FormatCurrency(0, "IDR"))
	assert.Equal(t, "Rp 1.250.000", FormatCurrency(1250000, "idr"))
	assert.Equal(t, "-Rp 5.000", FormatCurrency(-5000, "IDR"))
}

func TestFormatCurrencyUnknownCode(t *testing.T) {
	assert.Equal(t, "XYZ 12", FormatCurrency(12, "xyz"))
}

func TestGenerateETagIsStable(t *testing.T) {
	a, err := GenerateETag(map[string]int{"b": 2, "a": 1})
	require.NoError(t, err)
	b, err := GenerateETag(map[string]int{"a": 1, "b": 2})
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := GenerateETag(map[string]int{"a": 1, "b": 3})
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestMatchesETag(t *testing.T) {
	assert.True(t, MatchesETag(`"abc"`, `"abc"`))
	assert.True(t, MatchesETag(`"x", "abc"`, `"abc"`))
	assert.True(t, MatchesETag(`W/"abc"`, `"abc"`))
	assert.False(t, MatchesETag(``, `"abc"`))
	assert.False(t, MatchesETag(`"abd"`, `"abc"`))
}

func TestSendJSONError(t *testing.T) {
	rec := httptest.NewRecorder()
	SendJSONError(rec, "boom", http.StatusBadRequest)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "boom", body["error"])
}
