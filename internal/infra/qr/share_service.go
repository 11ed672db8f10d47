// Package qr renders share links as QR codes.
package qr

import (
	"fmt"
	"strings"

	"afisha/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

type shareCodeService struct {
	publicBaseURL        string
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// NewShareCodeService creates a share-code service that points QR codes at
// the public web catalog under publicBaseURL.
func NewShareCodeService(publicBaseURL string, size int, errorCorrectionLevel string) service.ShareCodeService {
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	if size <= 0 {
		size = 256
	}

	return &shareCodeService{
		publicBaseURL:        strings.TrimRight(publicBaseURL, "/"),
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// EventShareURL builds the public web link of an event.
func (s *shareCodeService) EventShareURL(eventID string) string {
	return fmt.Sprintf("%s/events/%s", s.publicBaseURL, eventID)
}

// EventShareQR renders the public link of an event as a PNG QR code.
func (s *shareCodeService) EventShareQR(eventID string) ([]byte, error) {
	code, err := qrcode.New(s.EventShareURL(eventID), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "create share QR code")
	}

	pngBytes, err := code.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "render share QR PNG")
	}

	return pngBytes, nil
}
