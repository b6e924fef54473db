package api

import (
	"context"

	"github.com/MubeenKhalid10/SwiftCare/internal/models"
)

// Appointments returns all bookings visible to the caller.
func (c *Client) Appointments(ctx context.Context) ([]models.Appointment, error) {
	return getRecords[models.Appointment](ctx, c, "/appointments")
}

// AppointmentByID returns a single booking by id.
func (c *Client) AppointmentByID(ctx context.Context, id string) (models.Appointment, error) {
	return getRecord[models.Appointment](ctx, c, "/appointments/"+id)
}

// AppointmentsByPatientID returns the bookings belonging to one patient.
// The backend only serves the full list, so filtering happens client-side.
func (c *Client) AppointmentsByPatientID(ctx context.Context, patientID string) ([]models.Appointment, error) {
	appointments, err := c.Appointments(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]models.Appointment, 0, len(appointments))
	for _, a := range appointments {
		if a.PatientID == patientID {
			filtered = append(filtered, a)
		}
	}
	return filtered, nil
}

// AppointmentsByDoctorID returns the bookings assigned to one doctor.
func (c *Client) AppointmentsByDoctorID(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	appointments, err := c.Appointments(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]models.Appointment, 0, len(appointments))
	for _, a := range appointments {
		if a.DoctorID == doctorID {
			filtered = append(filtered, a)
		}
	}
	return filtered, nil
}

// CreateAppointment books a new appointment.
func (c *Client) CreateAppointment(ctx context.Context, appointment models.Appointment) (models.Appointment, error) {
	return sendRecord[models.Appointment](ctx, c, "POST", "/appointments", appointment)
}

// UpdateAppointment replaces a booking, typically to change its status.
func (c *Client) UpdateAppointment(ctx context.Context, id string, appointment models.Appointment) (models.Appointment, error) {
	return sendRecord[models.Appointment](ctx, c, "PUT", "/appointments/"+id, appointment)
}

// DeleteAppointment removes a booking.
func (c *Client) DeleteAppointment(ctx context.Context, id string) error {
	return c.Do(ctx, "DELETE", "/appointments/"+id, nil, nil)
}
