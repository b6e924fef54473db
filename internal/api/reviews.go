package api

import (
	"context"

	"github.com/MubeenKhalid10/SwiftCare/internal/models"
)

// Reviews returns all doctor reviews.
func (c *Client) Reviews(ctx context.Context) ([]models.Review, error) {
	return getRecords[models.Review](ctx, c, "/reviews")
}

// ReviewsByDoctorID returns the reviews left for one doctor, filtered
// client-side from the full list.
func (c *Client) ReviewsByDoctorID(ctx context.Context, doctorID string) ([]models.Review, error) {
	reviews, err := c.Reviews(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]models.Review, 0, len(reviews))
	for _, r := range reviews {
		if r.DoctorID == doctorID {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// ReviewsByPatientID returns the reviews written by one patient.
func (c *Client) ReviewsByPatientID(ctx context.Context, patientID string) ([]models.Review, error) {
	reviews, err := c.Reviews(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]models.Review, 0, len(reviews))
	for _, r := range reviews {
		if r.PatientID == patientID {
			filtered = append(filtered, r)
		}
	}
	return filtered, nil
}

// CreateReview submits a new review.
func (c *Client) CreateReview(ctx context.Context, review models.Review) (models.Review, error) {
	return sendRecord[models.Review](ctx, c, "POST", "/reviews", review)
}

// DeleteReview removes a review.
func (c *Client) DeleteReview(ctx context.Context, id string) error {
	return c.Do(ctx, "DELETE", "/reviews/"+id, nil, nil)
}
