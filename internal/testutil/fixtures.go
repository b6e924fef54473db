// Package testutil provides common testing utilities, fixtures, and helpers
// for use across the SwiftCare client's test files.
package testutil

import (
	"github.com/MubeenKhalid10/SwiftCare/internal/models"
)

// TestUser creates a signed-in patient identity with default values.
func TestUser() *models.User {
	return &models.User{
		ID:    "42",
		Name:  "Test Patient",
		Email: "patient@example.com",
		Role:  models.RolePatient,
	}
}

// TestUserWithRole creates a test user with a specific role.
func TestUserWithRole(role models.Role) *models.User {
	user := TestUser()
	user.Role = role
	return user
}

// TestDoctor creates a doctor record as the backend would serve it.
func TestDoctor() models.Doctor {
	return models.Doctor{
		ID:         "d1",
		Name:       "Dr. Sarah Ahmed",
		Email:      "sarah.ahmed@swiftcare.test",
		Specialty:  "Cardiology",
		Location:   "Lahore",
		Rating:     4.8,
		Experience: "12 years",
		Fee:        "$50",
		Available:  true,
	}
}

// TestAppointment creates an appointment record linked to TestDoctor and
// TestUser.
func TestAppointment() models.Appointment {
	return models.Appointment{
		ID:              "a1",
		PatientID:       "42",
		DoctorID:        "d1",
		PatientName:     "Test Patient",
		DoctorName:      "Dr. Sarah Ahmed",
		DoctorSpecialty: "Cardiology",
		Date:            "2026-03-14",
		Time:            "10:30 AM",
		Type:            models.AppointmentVideoCall,
		Status:          models.StatusUpcoming,
	}
}

// MongoDoc builds a Mongo-style document with `_id` instead of `id`,
// the shape the backend actually serves before client-side normalization.
func MongoDoc(id any, fields map[string]any) map[string]any {
	doc := map[string]any{"_id": id}
	for k, v := range fields {
		doc[k] = v
	}
	return doc
}
