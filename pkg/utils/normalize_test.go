package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTicket(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"sentinel", "Not presented", ""},
		{"sentinel any case", "  not PRESENTED ", ""},
		{"float export", "2981234567890.0", "2981234567890"},
		{"spaces", "298 123 456", "298123456"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTicket(tt.input))
		})
	}
}

func TestNormalizeFlightNumber(t *testing.T) {
	assert.Equal(t, "SU1234", NormalizeFlightNumber("su 1234"))
	assert.Equal(t, "SU1234", NormalizeFlightNumber("SU-1234"))
	assert.Equal(t, "FL100", NormalizeFlightNumber("FL100"))
}

func TestNormalizeDocument(t *testing.T) {
	assert.Equal(t, "4510123456", NormalizeDocument("4510 123456"))
	assert.Equal(t, "AB123", NormalizeDocument(" ab123 "))
}

func TestNormalizeFFKey(t *testing.T) {
	assert.Equal(t, "SU123456", NormalizeFFKey("SU", "123 456"))
	assert.Equal(t, "SU123456", NormalizeFFKey("su-123456"))
	assert.Equal(t, "", NormalizeFFKey("", " - "))
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2024-05-01", "2024-05-01"},
		{"01.05.2024", "2024-05-01"},
		{"2024/05/01", "2024-05-01"},
		{"01 May 2024", "2024-05-01"},
		{"2024-05-01T10:30:00Z", "2024-05-01"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := NormalizeDate(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := NormalizeDate("yesterday")
	assert.Error(t, err)
}

func TestNormalizeTime(t *testing.T) {
	got, err := NormalizeTime("09:05:00")
	require.NoError(t, err)
	assert.Equal(t, "09:05", got)

	got, err = NormalizeTime("9:05 PM")
	require.NoError(t, err)
	assert.Equal(t, "21:05", got)

	_, err = NormalizeTime("noon")
	assert.Error(t, err)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "IVANOV IVAN P", DisplayName("IVANOV", "IVAN", "petrovich"))
	assert.Equal(t, "Smith John", DisplayName(" Smith ", "John", ""))
}

func TestExtractFFReferences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"hash form", "DOCS/FF#SU 1234567/MEAL VGML", []string{"SU1234567"}},
		{"colon form", "ff: dl-998877 seat 12A", []string{"DL998877"}},
		{"duplicates collapse", "FF SU1234567; FF#SU1234567", []string{"SU1234567"}},
		{"two programs", "FF#SU1234567 FF#AF445566", []string{"SU1234567", "AF445566"}},
		{"none", "no loyalty here", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractFFReferences(tt.text))
		})
	}
}
