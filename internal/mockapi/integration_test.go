package mockapi_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MubeenKhalid10/SwiftCare/internal/api"
	"github.com/MubeenKhalid10/SwiftCare/internal/credentials"
	"github.com/MubeenKhalid10/SwiftCare/internal/mockapi"
	"github.com/MubeenKhalid10/SwiftCare/internal/models"
	"github.com/MubeenKhalid10/SwiftCare/internal/session"
	"github.com/MubeenKhalid10/SwiftCare/pkg/config"
)

// These tests run the real client pipeline against the mock backend,
// end to end: login, token refresh over the rotating cookie, resource
// normalization and logout.

func setupPipeline(t *testing.T, accessExpiry time.Duration) (*api.Client, *session.Manager, credentials.Store) {
	t.Helper()

	server := httptest.NewServer(mockapi.NewServer(config.MockConfig{
		Environment:    "test",
		JWTSecret:      []byte("test-secret-key-at-least-32-bytes!!"),
		AccessExpiry:   accessExpiry,
		RefreshExpiry:  time.Hour,
		AllowedOrigins: []string{"*"},
	}).Router())
	t.Cleanup(server.Close)

	store := credentials.NewMemoryStore()
	client := api.New(config.APIConfig{BaseURL: server.URL, Timeout: 5 * time.Second}, store)
	return client, session.NewManager(client), store
}

func TestPipelineLoginAndFetch(t *testing.T) {
	ctx := context.Background()
	client, manager, store := setupPipeline(t, 15*time.Minute)

	result := manager.Login(ctx, "patient@swiftcare.test", "patient123")
	require.True(t, result.Success, result.Error)
	assert.NotEmpty(t, store.AccessToken())

	doctors, err := client.Doctors(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, doctors)
	assert.Equal(t, "d1", doctors[0].ID, "ids arrive normalized")

	appointments, err := client.AppointmentsByPatientID(ctx, "1")
	require.NoError(t, err)
	require.Len(t, appointments, 1)
	assert.Equal(t, models.StatusUpcoming, appointments[0].Status)
}

func TestPipelineTransparentRefresh(t *testing.T) {
	ctx := context.Background()
	// Tokens expire immediately, so every resource call takes the
	// 401, refresh, retry path.
	client, manager, store := setupPipeline(t, -time.Second)

	result := manager.Login(ctx, "patient@swiftcare.test", "patient123")
	require.True(t, result.Success, result.Error)

	// The refreshed token is also pre-expired, so the retry's 401 is
	// terminal after exactly one refresh.
	err := client.Do(ctx, "GET", "/doctors", nil, nil)
	assert.ErrorIs(t, err, api.ErrAuthExpired)
	assert.NotEmpty(t, store.AccessToken(), "a successful refresh leaves its token stored")
}

func TestPipelineRefreshRecovery(t *testing.T) {
	ctx := context.Background()
	client, manager, store := setupPipeline(t, 15*time.Minute)

	result := manager.Login(ctx, "patient@swiftcare.test", "patient123")
	require.True(t, result.Success, result.Error)

	// Corrupt the stored token; the live refresh cookie repairs the
	// session without the caller noticing.
	store.SetAccessToken("stale-token")

	doctors, err := client.Doctors(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, doctors)
	assert.NotEqual(t, "stale-token", store.AccessToken())
}

func TestPipelineLogoutEndsRefresh(t *testing.T) {
	ctx := context.Background()
	client, manager, store := setupPipeline(t, 15*time.Minute)

	require.True(t, manager.Login(ctx, "patient@swiftcare.test", "patient123").Success)
	manager.Logout(ctx)

	assert.Empty(t, store.AccessToken())
	assert.False(t, manager.IsAuthenticated())

	// With the refresh credential revoked server-side, an authenticated
	// call cannot resurrect the session.
	err := client.Do(ctx, "GET", "/doctors", nil, nil)
	assert.ErrorIs(t, err, api.ErrRefreshFailed)
}

func TestPipelineRegisterThenBook(t *testing.T) {
	ctx := context.Background()
	client, manager, _ := setupPipeline(t, 15*time.Minute)

	result := manager.Register(ctx, "New Patient", "new@swiftcare.test", "secret123", models.RolePatient)
	require.True(t, result.Success, result.Error)

	user, ok := manager.CurrentUser()
	require.True(t, ok)

	booked, err := client.CreateAppointment(ctx, models.Appointment{
		PatientID:   user.ID,
		DoctorID:    "d1",
		PatientName: user.Name,
		DoctorName:  "Dr. Sarah Ahmed",
		Date:        "2026-09-20",
		Time:        "11:00 AM",
		Type:        models.AppointmentChat,
		Status:      models.StatusUpcoming,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, booked.ID)

	mine, err := client.AppointmentsByPatientID(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, booked.ID, mine[0].ID)
}
