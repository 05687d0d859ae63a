package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"haircolor-mixer/models"
)

func TestFormatHex(t *testing.T) {
	assert.Equal(t, "#800080", FormatHex(models.RGB{R: 128, G: 0, B: 128}))
	assert.Equal(t, "#f5f5f5", FormatHex(models.RGB{R: 245, G: 245, B: 245}))
	assert.Equal(t, "#000000", FormatHex(models.RGB{}))
	assert.Equal(t, "#ffffff", FormatHex(models.RGB{R: 255, G: 255, B: 255}))
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    models.RGB
		wantErr bool
	}{
		{in: "#B39C86", want: models.RGB{R: 0xb3, G: 0x9c, B: 0x86}},
		{in: "#b39c86", want: models.RGB{R: 0xb3, G: 0x9c, B: 0x86}},
		{in: " #000000 ", want: models.RGB{}},
		{in: "B39C86", wantErr: true},
		{in: "#B39C8", wantErr: true},
		{in: "#B39C86FF", wantErr: true},
		{in: "#fff", wantErr: true},
		{in: "#GGGGGG", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				assert.False(t, IsValidHex(tt.in))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, IsValidHex(tt.in))
		})
	}
}

func TestNormalizeHex(t *testing.T) {
	hex, err := NormalizeHex("#D4B0A8")
	require.NoError(t, err)
	assert.Equal(t, "#d4b0a8", hex)

	_, err = NormalizeHex("pink")
	assert.Error(t, err)
}

func TestNearestPreset(t *testing.T) {
	presets := []models.PresetColor{
		{Hex: "#b39c86", Name: "Ash beige"},
		{Hex: "#d4b0a8", Name: "Pink beige"},
		{Hex: "not-a-hex", Name: "Broken"},
		{Hex: "#c5b8b0", Name: "Silver ash"},
	}

	p, ok := NearestPreset(models.RGB{R: 0xb5, G: 0x9e, B: 0x88}, presets)
	require.True(t, ok)
	assert.Equal(t, "Ash beige", p.Name)

	p, ok = NearestPreset(models.RGB{R: 0xd4, G: 0xb0, B: 0xa8}, presets)
	require.True(t, ok)
	assert.Equal(t, "Pink beige", p.Name)

	dup := []models.PresetColor{{Hex: "#000000", Name: "first"}, {Hex: "#000000", Name: "second"}}
	p, ok = NearestPreset(models.RGB{}, dup)
	require.True(t, ok)
	assert.Equal(t, "first", p.Name)

	_, ok = NearestPreset(models.RGB{}, nil)
	assert.False(t, ok)
}
