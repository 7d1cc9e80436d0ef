// Package facematch wraps the delegated face-similarity service behind a
// small interface: given two images, return a similarity score. The game only
// ever asks "are these the same person, at this threshold".
package facematch

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// DefaultThreshold is the similarity score (0-100) a comparison must reach to
// count as a match.
const DefaultThreshold = 70.0

// ErrNoFaces is returned when the service finds no matching faces at all in
// the compared images.
var ErrNoFaces = errors.New("no matching faces found")

// Result is the outcome of one comparison.
type Result struct {
	// IsMatch is true when Score reached the gate's threshold.
	IsMatch bool

	// Score is the similarity reported by the service, in [0,100].
	Score float64
}

// Comparer computes a similarity score between a source and a target image.
type Comparer interface {
	// Compare returns the best similarity score between faces in the two
	// images. Returns ErrNoFaces when nothing matches at any score.
	Compare(ctx context.Context, source, target []byte) (float64, error)
}

// Gate applies a threshold on top of a Comparer.
type Gate struct {
	comparer  Comparer
	threshold float64
}

// NewGate wraps a comparer with the given threshold. A zero threshold falls
// back to DefaultThreshold.
func NewGate(comparer Comparer, threshold float64) *Gate {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Gate{comparer: comparer, threshold: threshold}
}

// Check compares two images and gates the score. ErrNoFaces maps to a
// non-match with score zero rather than an error: an absent face is a game
// outcome, not a service failure.
func (g *Gate) Check(ctx context.Context, source, target []byte) (Result, error) {
	score, err := g.comparer.Compare(ctx, source, target)
	if errors.Is(err, ErrNoFaces) {
		return Result{IsMatch: false, Score: 0}, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("face comparison failed: %w", err)
	}

	return Result{IsMatch: score >= g.threshold, Score: score}, nil
}

// DecodeImage accepts either raw base64 or a data URI
// ("data:image/jpeg;base64,...") and returns the image bytes.
func DecodeImage(data string) ([]byte, error) {
	if i := strings.Index(data, ";base64,"); i >= 0 {
		data = data[i+len(";base64,"):]
	}

	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 image: %w", err)
	}
	if len(decoded) == 0 {
		return nil, errors.New("image is empty")
	}

	return decoded, nil
}
