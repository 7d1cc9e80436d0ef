package qr

import (
	"bytes"
	"testing"
)

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		scanned string
		want    bool
	}{
		{name: "default payload matches", scanned: DefaultPayload, want: true},
		{name: "case matters", scanned: "this is the final checkpoint", want: false},
		{name: "wrong payload", scanned: "some other code", want: false},
		{name: "empty scan", scanned: "", want: false},
		{name: "custom payload matches", payload: "hunt-2026", scanned: "hunt-2026", want: true},
		{name: "default rejected under custom payload", payload: "hunt-2026", scanned: DefaultPayload, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewVerifier(tt.payload)
			if got := v.Verify(tt.scanned); got != tt.want {
				t.Errorf("Verify(%q) = %v, want %v", tt.scanned, got, tt.want)
			}
		})
	}
}

func TestPNG(t *testing.T) {
	png, err := NewVerifier("").PNG()
	if err != nil {
		t.Fatalf("PNG failed: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("Expected a PNG image")
	}
}
