package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYargitayChambers(t *testing.T) {
	chambers := YargitayChambers()

	require.Len(t, chambers, 52)
	assert.Equal(t, "", chambers[0])
	assert.Equal(t, "Hukuk Genel Kurulu", chambers[1])
	assert.Equal(t, "1. Hukuk Dairesi", chambers[2])
	assert.Equal(t, "23. Hukuk Dairesi", chambers[24])
	assert.Equal(t, "Hukuk Daireleri Başkanlar Kurulu", chambers[25])
	assert.Equal(t, "Ceza Genel Kurulu", chambers[26])
	assert.Equal(t, "1. Ceza Dairesi", chambers[27])
	assert.Equal(t, "23. Ceza Dairesi", chambers[49])
	assert.Equal(t, "Ceza Daireleri Başkanlar Kurulu", chambers[50])
	assert.Equal(t, "Büyük Genel Kurulu", chambers[51])
}

func TestYargitaySearchRequestDefaults(t *testing.T) {
	req := YargitaySearchRequest{ArananKelime: "mülkiyet"}
	req.ApplyDefaults()

	assert.Equal(t, "3", req.Siralama)
	assert.Equal(t, "desc", req.SiralamaDirection)
	assert.Equal(t, 10, req.PageSize)
	assert.Equal(t, 1, req.PageNumber)

	// explicit values survive
	req2 := YargitaySearchRequest{Siralama: "1", SiralamaDirection: "asc", PageSize: 50, PageNumber: 3}
	req2.ApplyDefaults()
	assert.Equal(t, "1", req2.Siralama)
	assert.Equal(t, "asc", req2.SiralamaDirection)
	assert.Equal(t, 50, req2.PageSize)
	assert.Equal(t, 3, req2.PageNumber)
}

func TestYargitaySearchRequestValidation(t *testing.T) {
	req := YargitaySearchRequest{ArananKelime: "test"}
	req.ApplyDefaults()
	assert.NoError(t, Validate("yargitay", &req))

	oversized := req
	oversized.PageSize = 500
	err := Validate("yargitay", &oversized)
	require.Error(t, err)
	assert.Equal(t, KindInvalidInput, KindOf(err))

	badSort := req
	badSort.SiralamaDirection = "sideways"
	assert.Error(t, Validate("yargitay", &badSort))
}

func TestYargitaySearchRequestChamberValidation(t *testing.T) {
	req := YargitaySearchRequest{ArananKelime: "test"}
	req.ApplyDefaults()

	req.BirimYrgKurulDaire = "Ceza Genel Kurulu"
	assert.NoError(t, Validate("yargitay", &req))

	req.BirimYrgKurulDaire = "99. Hukuk Dairesi"
	err := Validate("yargitay", &req)
	require.Error(t, err)
	assert.Equal(t, KindInvalidInput, KindOf(err))
}

func TestDanistayKeywordRequestDefaults(t *testing.T) {
	req := DanistayKeywordSearchRequest{AndKelimeler: []string{"vergi"}}
	req.ApplyDefaults()

	assert.Equal(t, 10, req.PageSize)
	assert.Equal(t, 1, req.PageNumber)
	// nil lists become empty so the payload carries them explicitly
	assert.NotNil(t, req.OrKelimeler)
	assert.NotNil(t, req.NotAndKelimeler)
	assert.NotNil(t, req.NotOrKelimeler)
}

func TestDanistayDecisionEntryChamber(t *testing.T) {
	assert.Equal(t, "3. Daire", DanistayDecisionEntry{Daire: "3. Daire"}.Chamber())
	assert.Equal(t, "Vergi Dava Daireleri Kurulu", DanistayDecisionEntry{DaireKurul: "Vergi Dava Daireleri Kurulu"}.Chamber())
	assert.Equal(t, "", DanistayDecisionEntry{}.Chamber())
}
