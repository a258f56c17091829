package fetcher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSONObject(t *testing.T) {
	type doc struct {
		Title string `json:"title"`
		Count int    `json:"count"`
	}

	got, err := DecodeJSONObject[doc](strings.NewReader(`{"title": "quakes", "count": 7}`))
	require.NoError(t, err)
	assert.Equal(t, "quakes", got.Title)
	assert.Equal(t, 7, got.Count)
}

func TestDecodeJSONObject_Malformed(t *testing.T) {
	type doc struct{}

	_, err := DecodeJSONObject[doc](strings.NewReader(`{"title": `))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode object")
}
