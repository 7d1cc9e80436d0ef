package facematch

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/rekognition"
	"github.com/aws/aws-sdk-go/service/rekognition/rekognitioniface"
)

// Ensure Rekognition implements Comparer
var _ Comparer = (*Rekognition)(nil)

// Rekognition implements Comparer using AWS Rekognition CompareFaces.
// Credentials come from the default AWS chain (env, shared config, role).
type Rekognition struct {
	client rekognitioniface.RekognitionAPI
}

// NewRekognition creates a Rekognition comparer in the given region.
func NewRekognition(region string) (*Rekognition, error) {
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &Rekognition{client: rekognition.New(sess)}, nil
}

// NewRekognitionWithClient wires an existing client, used by tests.
func NewRekognitionWithClient(client rekognitioniface.RekognitionAPI) *Rekognition {
	return &Rekognition{client: client}
}

// Compare returns the highest similarity among the faces Rekognition matched
// between the two images.
func (r *Rekognition) Compare(ctx context.Context, source, target []byte) (float64, error) {
	out, err := r.client.CompareFacesWithContext(ctx, &rekognition.CompareFacesInput{
		// Ask for every candidate; the gate applies the real threshold.
		SimilarityThreshold: aws.Float64(0),
		SourceImage:         &rekognition.Image{Bytes: source},
		TargetImage:         &rekognition.Image{Bytes: target},
	})
	if err != nil {
		return 0, fmt.Errorf("rekognition CompareFaces: %w", err)
	}

	if len(out.FaceMatches) == 0 {
		return 0, ErrNoFaces
	}

	best := 0.0
	for _, match := range out.FaceMatches {
		if match.Similarity != nil && *match.Similarity > best {
			best = *match.Similarity
		}
	}

	return best, nil
}
