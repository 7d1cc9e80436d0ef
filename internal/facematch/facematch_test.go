package facematch

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
)

type stubComparer struct {
	score float64
	err   error
}

func (s *stubComparer) Compare(_ context.Context, _, _ []byte) (float64, error) {
	return s.score, s.err
}

func TestGateCheck(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		score     float64
		err       error
		threshold float64
		wantMatch bool
		wantScore float64
		wantErr   bool
	}{
		{name: "score above default threshold", score: 92.5, wantMatch: true, wantScore: 92.5},
		{name: "score at threshold", score: 70, wantMatch: true, wantScore: 70},
		{name: "score below threshold", score: 65, wantMatch: false, wantScore: 65},
		{name: "custom threshold", score: 65, threshold: 60, wantMatch: true, wantScore: 65},
		{name: "no faces is a non-match, not an error", err: ErrNoFaces, wantMatch: false, wantScore: 0},
		{name: "service failure propagates", err: errors.New("throttled"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := NewGate(&stubComparer{score: tt.score, err: tt.err}, tt.threshold)

			result, err := gate.Check(ctx, []byte("a"), []byte("b"))
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Check failed: %v", err)
			}
			if result.IsMatch != tt.wantMatch {
				t.Errorf("IsMatch = %v, want %v", result.IsMatch, tt.wantMatch)
			}
			if result.Score != tt.wantScore {
				t.Errorf("Score = %v, want %v", result.Score, tt.wantScore)
			}
		})
	}
}

func TestDecodeImage(t *testing.T) {
	raw := []byte{0xff, 0xd8, 0xff, 0xe0}
	encoded := base64.StdEncoding.EncodeToString(raw)

	tests := []struct {
		name    string
		input   string
		want    []byte
		wantErr bool
	}{
		{name: "raw base64", input: encoded, want: raw},
		{name: "data URI", input: "data:image/jpeg;base64," + encoded, want: raw},
		{name: "not base64", input: "!!!", wantErr: true},
		{name: "empty payload", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeImage(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeImage failed: %v", err)
			}
			if string(got) != string(tt.want) {
				t.Errorf("DecodeImage = %v, want %v", got, tt.want)
			}
		})
	}
}
