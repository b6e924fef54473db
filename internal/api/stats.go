package api

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MubeenKhalid10/SwiftCare/internal/models"
)

const dashboardTopN = 5

// DashboardStats aggregates the counts the admin dashboard renders. The
// backend has no stats endpoint, so the three source lists are fetched
// concurrently and combined here.
func (c *Client) DashboardStats(ctx context.Context) (models.DashboardStats, error) {
	var (
		doctors      []models.Doctor
		patients     []models.Patient
		appointments []models.Appointment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		doctors, err = c.Doctors(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		patients, err = c.Patients(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		appointments, err = c.Appointments(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.DashboardStats{}, err
	}

	doctorsByID := make(map[string]models.Doctor, len(doctors))
	for _, d := range doctors {
		doctorsByID[d.ID] = d
	}
	patientsByID := make(map[string]models.Patient, len(patients))
	for _, p := range patients {
		patientsByID[p.ID] = p
	}

	// Revenue is the sum of the consulting fee of every booked appointment.
	totalRevenue := 0
	appointmentCount := make(map[string]int, len(doctors))
	for _, a := range appointments {
		appointmentCount[a.DoctorID]++
		if d, ok := doctorsByID[a.DoctorID]; ok {
			totalRevenue += parseFee(d.Fee)
		}
	}

	topDoctors := make([]models.DoctorStats, 0, len(doctors))
	for _, d := range doctors {
		topDoctors = append(topDoctors, models.DoctorStats{
			Doctor:            d,
			TotalAppointments: appointmentCount[d.ID],
		})
	}
	sort.SliceStable(topDoctors, func(i, j int) bool {
		return topDoctors[i].TotalAppointments > topDoctors[j].TotalAppointments
	})
	if len(topDoctors) > dashboardTopN {
		topDoctors = topDoctors[:dashboardTopN]
	}

	recent := make([]models.Appointment, len(appointments))
	copy(recent, appointments)
	sort.SliceStable(recent, func(i, j int) bool {
		return parseAppointmentDate(recent[i].Date).After(parseAppointmentDate(recent[j].Date))
	})
	if len(recent) > dashboardTopN {
		recent = recent[:dashboardTopN]
	}
	for i := range recent {
		if d, ok := doctorsByID[recent[i].DoctorID]; ok {
			recent[i].DoctorName = d.Name
		} else {
			recent[i].DoctorName = "Unknown"
		}
		if p, ok := patientsByID[recent[i].PatientID]; ok {
			recent[i].PatientName = p.Name
		} else {
			recent[i].PatientName = "Unknown"
		}
	}

	return models.DashboardStats{
		TotalDoctors:       len(doctors),
		TotalPatients:      len(patients),
		TotalAppointments:  len(appointments),
		TotalRevenue:       totalRevenue,
		TopDoctors:         topDoctors,
		RecentAppointments: recent,
	}, nil
}

// parseFee extracts the integer amount from a display fee like "$50".
func parseFee(fee string) int {
	var digits strings.Builder
	for _, r := range fee {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return n
}

var appointmentDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"January 2, 2006",
	"Jan 2, 2006",
}

// parseAppointmentDate interprets the loosely formatted date strings the
// backend stores. Unparseable dates sort last.
func parseAppointmentDate(s string) time.Time {
	for _, layout := range appointmentDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
