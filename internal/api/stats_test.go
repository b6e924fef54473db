package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MubeenKhalid10/SwiftCare/internal/testutil"
)

func TestDashboardStats(t *testing.T) {
	ctx := context.Background()

	doctors := []map[string]any{
		testutil.MongoDoc("d1", map[string]any{"name": "Dr. Busy", "fee": "$50"}),
		testutil.MongoDoc("d2", map[string]any{"name": "Dr. Quiet", "fee": "$30"}),
	}
	patients := []map[string]any{
		testutil.MongoDoc("42", map[string]any{"name": "Test Patient"}),
	}
	appointments := []map[string]any{
		testutil.MongoDoc("a1", map[string]any{"patientId": "42", "doctorId": "d1", "date": "2026-03-14"}),
		testutil.MongoDoc("a2", map[string]any{"patientId": "42", "doctorId": "d1", "date": "2026-03-20"}),
		testutil.MongoDoc("a3", map[string]any{"patientId": "99", "doctorId": "d2", "date": "2026-01-02"}),
	}

	backend := testutil.NewStubBackend(t)
	backend.Handle("GET", "/doctors", testutil.RespondJSON(http.StatusOK, doctors))
	backend.Handle("GET", "/patients", testutil.RespondJSON(http.StatusOK, patients))
	backend.Handle("GET", "/appointments", testutil.RespondJSON(http.StatusOK, appointments))
	client, store := newTestClient(t, backend)
	store.SetAccessToken("T1")

	stats, err := client.DashboardStats(ctx)
	require.NoError(t, err)

	t.Run("counts", func(t *testing.T) {
		assert.Equal(t, 2, stats.TotalDoctors)
		assert.Equal(t, 1, stats.TotalPatients)
		assert.Equal(t, 3, stats.TotalAppointments)
	})

	t.Run("revenue sums each appointment's doctor fee", func(t *testing.T) {
		// Two $50 bookings and one $30 booking.
		assert.Equal(t, 130, stats.TotalRevenue)
	})

	t.Run("top doctors ranked by appointment count", func(t *testing.T) {
		require.Len(t, stats.TopDoctors, 2)
		assert.Equal(t, "d1", stats.TopDoctors[0].ID)
		assert.Equal(t, 2, stats.TopDoctors[0].TotalAppointments)
		assert.Equal(t, 1, stats.TopDoctors[1].TotalAppointments)
	})

	t.Run("recent appointments newest first with names patched", func(t *testing.T) {
		require.Len(t, stats.RecentAppointments, 3)
		assert.Equal(t, "a2", stats.RecentAppointments[0].ID)
		assert.Equal(t, "Dr. Busy", stats.RecentAppointments[0].DoctorName)
		assert.Equal(t, "Test Patient", stats.RecentAppointments[0].PatientName)
		// The patient record for "99" does not exist.
		assert.Equal(t, "Unknown", stats.RecentAppointments[2].PatientName)
	})
}

func TestParseFee(t *testing.T) {
	assert.Equal(t, 50, parseFee("$50"))
	assert.Equal(t, 1200, parseFee("PKR 1,200"))
	assert.Equal(t, 0, parseFee("free"))
	assert.Equal(t, 0, parseFee(""))
}
