package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serkanbykl/yargi-mcp/internal/models"
	"github.com/serkanbykl/yargi-mcp/internal/services/kik"
)

func TestHandleGetKikDocumentEmptyID(t *testing.T) {
	handler := handleGetKikDocument(kik.NewClient(nil), nil)

	result, err := handler(context.Background(), callRequest(map[string]interface{}{
		"karar_id": "   ",
	}))
	require.NoError(t, err)

	var doc models.KikDocument
	decodeResult(t, result, &doc)
	assert.Equal(t, "karar_id is required and must be a non-empty string.", doc.ErrorMessage)
	assert.Equal(t, 1, doc.CurrentPage)
	assert.Equal(t, 1, doc.TotalPages)
	assert.False(t, doc.IsPaginated)
}

func TestHandleGetKikDocumentEmptyIDEchoesPage(t *testing.T) {
	handler := handleGetKikDocument(kik.NewClient(nil), nil)

	result, err := handler(context.Background(), callRequest(map[string]interface{}{
		"page_number": 5,
	}))
	require.NoError(t, err)

	var doc models.KikDocument
	decodeResult(t, result, &doc)
	assert.NotEmpty(t, doc.ErrorMessage)
	assert.Equal(t, 5, doc.CurrentPage)
}

func TestHandleGetKikDocumentMalformedID(t *testing.T) {
	handler := handleGetKikDocument(kik.NewClient(nil), nil)

	result, err := handler(context.Background(), callRequest(map[string]interface{}{
		"karar_id": "not-base64!",
	}))
	require.NoError(t, err)

	var doc models.KikDocument
	decodeResult(t, result, &doc)
	assert.Equal(t, "not-base64!", doc.RetrievedWithKararID)
	assert.Contains(t, doc.ErrorMessage, "karar_id")
}

func TestHandleSearchKikRejectsBadDate(t *testing.T) {
	handler := handleSearchKik(kik.NewClient(nil), nil)

	result, err := handler(context.Background(), callRequest(map[string]interface{}{
		"karar_tarihi_baslangic": "2024-01-01",
	}))
	require.NoError(t, err)

	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), models.KindInvalidInput)
}
