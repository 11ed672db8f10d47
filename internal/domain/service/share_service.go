package service

// ShareCodeService defines the interface for share-code generation.
type ShareCodeService interface {
	// EventShareQR renders the public link of an event as a PNG QR code.
	EventShareQR(eventID string) ([]byte, error)

	// EventShareURL builds the public web link of an event.
	EventShareURL(eventID string) string
}
