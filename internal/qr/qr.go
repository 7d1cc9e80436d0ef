// Package qr handles the final checkpoint's QR code: verifying scanned
// payloads and generating the printable code for the admin to post at the
// hidden location. Decoding video frames happens client-side.
package qr

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultPayload is the string encoded in the posted QR code.
const DefaultPayload = "This is the final checkpoint"

// pngSize is the generated image edge length, mobile-friendly for printing.
const pngSize = 320

// Verifier checks scanned payloads against the expected value.
type Verifier struct {
	payload string
}

// NewVerifier uses the given payload, falling back to DefaultPayload when
// empty.
func NewVerifier(payload string) *Verifier {
	if payload == "" {
		payload = DefaultPayload
	}
	return &Verifier{payload: payload}
}

// Verify reports whether a scanned payload matches exactly. The comparison is
// case-sensitive: a case-varied scan of the right text is still a wrong code.
func (v *Verifier) Verify(scanned string) bool {
	return scanned == v.payload
}

// PNG renders the expected payload as a QR code image.
func (v *Verifier) PNG() ([]byte, error) {
	png, err := qrcode.Encode(v.payload, qrcode.Medium, pngSize)
	if err != nil {
		return nil, fmt.Errorf("qr generation failed: %w", err)
	}
	return png, nil
}
