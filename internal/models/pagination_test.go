package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roger120981/buenavida-admin/internal/models"
)

func TestPage_NavigationFlags(t *testing.T) {
	middle := models.Page[models.Participant]{Page: 2, PageSize: 10, Total: 21, TotalPages: 3, HasNext: true}
	assert.True(t, middle.CanPrevious())
	assert.True(t, middle.CanNext())

	first := models.Page[models.Participant]{Page: 1, PageSize: 10, Total: 21, TotalPages: 3, HasNext: true}
	assert.False(t, first.CanPrevious())
	assert.True(t, first.CanNext())

	last := models.Page[models.Participant]{Page: 3, PageSize: 10, Total: 21, TotalPages: 3, HasNext: false}
	assert.True(t, last.CanPrevious())
	assert.False(t, last.CanNext())
}

func TestPage_DecodesServerEnvelope(t *testing.T) {
	payload := `{
		"data": [{"id": 1, "name": "Sunrise Care"}],
		"total": 1,
		"page": 1,
		"pageSize": 10,
		"totalPages": 1,
		"hasNext": false
	}`

	var page models.Page[models.Agency]
	require.NoError(t, json.Unmarshal([]byte(payload), &page))
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Sunrise Care", page.Data[0].Name)
	assert.Equal(t, 1, page.Total)
	assert.False(t, page.CanNext())
}
