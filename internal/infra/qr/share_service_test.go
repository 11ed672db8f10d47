package qr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShareCodeService(t *testing.T) {
	tests := []struct {
		name                 string
		errorCorrectionLevel string
	}{
		{"Low error correction", "L"},
		{"Medium error correction", "M"},
		{"High error correction", "Q"},
		{"Highest error correction", "H"},
		{"Default error correction", "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewShareCodeService("https://afisha.kz", 256, tt.errorCorrectionLevel)
			assert.NotNil(t, service)
		})
	}
}

func TestShareCodeService_EventShareURL(t *testing.T) {
	service := NewShareCodeService("https://afisha.kz/", 256, "M")

	assert.Equal(t, "https://afisha.kz/events/event-jazz", service.EventShareURL("event-jazz"))
}

func TestShareCodeService_EventShareQR(t *testing.T) {
	service := NewShareCodeService("https://afisha.kz", 256, "M")

	qrBytes, err := service.EventShareQR("event-jazz")
	require.NoError(t, err)
	assert.NotEmpty(t, qrBytes)

	// Verify it's a valid PNG (starts with PNG magic number)
	assert.Equal(t, byte(0x89), qrBytes[0])
	assert.Equal(t, byte(0x50), qrBytes[1])
	assert.Equal(t, byte(0x4E), qrBytes[2])
	assert.Equal(t, byte(0x47), qrBytes[3])
}

func TestShareCodeService_DifferentSizes(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"Small QR", 128},
		{"Medium QR", 256},
		{"Zero falls back to default", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewShareCodeService("https://afisha.kz", tt.size, "M")

			qrBytes, err := service.EventShareQR("event-yoga")
			require.NoError(t, err)
			assert.NotEmpty(t, qrBytes)
		})
	}
}
