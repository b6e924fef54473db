package api

import (
	"context"

	"github.com/MubeenKhalid10/SwiftCare/internal/models"
)

// Doctors returns all practitioner profiles.
func (c *Client) Doctors(ctx context.Context) ([]models.Doctor, error) {
	return getRecords[models.Doctor](ctx, c, "/doctors")
}

// DoctorByID returns a single doctor by id.
func (c *Client) DoctorByID(ctx context.Context, id string) (models.Doctor, error) {
	return getRecord[models.Doctor](ctx, c, "/doctors/"+id)
}

// DoctorByEmail scans the doctor list for a matching email. The backend has
// no lookup endpoint for this, so the filter runs client-side. Returns false
// when no doctor matches.
func (c *Client) DoctorByEmail(ctx context.Context, email string) (models.Doctor, bool, error) {
	doctors, err := c.Doctors(ctx)
	if err != nil {
		return models.Doctor{}, false, err
	}
	for _, d := range doctors {
		if d.Email == email {
			return d, true, nil
		}
	}
	return models.Doctor{}, false, nil
}

// CreateDoctor registers a new doctor profile. The id field of the input is
// ignored; the backend assigns one.
func (c *Client) CreateDoctor(ctx context.Context, doctor models.Doctor) (models.Doctor, error) {
	return sendRecord[models.Doctor](ctx, c, "POST", "/doctors", doctor)
}

// UpdateDoctor replaces a doctor profile.
func (c *Client) UpdateDoctor(ctx context.Context, id string, doctor models.Doctor) (models.Doctor, error) {
	return sendRecord[models.Doctor](ctx, c, "PUT", "/doctors/"+id, doctor)
}

// DeleteDoctor removes a doctor profile.
func (c *Client) DeleteDoctor(ctx context.Context, id string) error {
	return c.Do(ctx, "DELETE", "/doctors/"+id, nil, nil)
}
