package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeKikKararID(t *testing.T) {
	id := EncodeKikKararID(KikKararTipiUyusmazlik, "2024/UH.II-1766")

	tipi, kararNo, err := DecodeKikKararID(id)
	require.NoError(t, err)
	assert.Equal(t, KikKararTipiUyusmazlik, tipi)
	assert.Equal(t, "2024/UH.II-1766", kararNo)
}

func TestDecodeKikKararIDRejectsGarbage(t *testing.T) {
	_, _, err := DecodeKikKararID("not-base64!!!")
	assert.Error(t, err)

	// valid base64 but no separator
	_, _, err = DecodeKikKararID("aGVsbG8=")
	assert.Error(t, err)

	// valid shape but unknown decision type
	_, _, err = DecodeKikKararID(EncodeKikKararID(KikKararTipi("rbBilinmeyen"), "2024/1"))
	assert.Error(t, err)
}

func TestNormalizeKikKararNo(t *testing.T) {
	assert.Equal(t, "2024/UH.II-1766", NormalizeKikKararNo("2024_UH.II-1766"))
	assert.Equal(t, "2024/UH.II-1766", NormalizeKikKararNo("2024/UH.II-1766"))
	assert.Equal(t, "", NormalizeKikKararNo(""))
}

func TestKikSearchRequestDefaults(t *testing.T) {
	req := KikSearchRequest{}
	req.ApplyDefaults()

	assert.Equal(t, KikKararTipiUyusmazlik, req.KararTipi)
	assert.Equal(t, 1, req.Page)
}

func TestKikSearchRequestDateValidation(t *testing.T) {
	valid := KikSearchRequest{KararTipi: KikKararTipiMahkeme, KararTarihiBaslangic: "01.01.2024", Page: 1}
	assert.NoError(t, Validate("kik", &valid))

	invalid := KikSearchRequest{KararTipi: KikKararTipiMahkeme, KararTarihiBaslangic: "2024-01-01", Page: 1}
	err := Validate("kik", &invalid)
	require.Error(t, err)
	assert.Equal(t, KindInvalidInput, KindOf(err))
}
