package api

import (
	"context"

	"github.com/MubeenKhalid10/SwiftCare/internal/models"
)

// Patients returns all patient profiles.
func (c *Client) Patients(ctx context.Context) ([]models.Patient, error) {
	return getRecords[models.Patient](ctx, c, "/patients")
}

// PatientByID returns a single patient by id.
func (c *Client) PatientByID(ctx context.Context, id string) (models.Patient, error) {
	return getRecord[models.Patient](ctx, c, "/patients/"+id)
}

// PatientByEmail scans the patient list for a matching email. Returns false
// when no patient matches.
func (c *Client) PatientByEmail(ctx context.Context, email string) (models.Patient, bool, error) {
	patients, err := c.Patients(ctx)
	if err != nil {
		return models.Patient{}, false, err
	}
	for _, p := range patients {
		if p.Email == email {
			return p, true, nil
		}
	}
	return models.Patient{}, false, nil
}

// CreatePatient registers a new patient profile.
func (c *Client) CreatePatient(ctx context.Context, patient models.Patient) (models.Patient, error) {
	return sendRecord[models.Patient](ctx, c, "POST", "/patients", patient)
}

// UpdatePatient replaces a patient profile.
func (c *Client) UpdatePatient(ctx context.Context, id string, patient models.Patient) (models.Patient, error) {
	return sendRecord[models.Patient](ctx, c, "PUT", "/patients/"+id, patient)
}

// DeletePatient removes a patient profile.
func (c *Client) DeletePatient(ctx context.Context, id string) error {
	return c.Do(ctx, "DELETE", "/patients/"+id, nil, nil)
}
