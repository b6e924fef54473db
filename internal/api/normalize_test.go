package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MubeenKhalid10/SwiftCare/internal/models"
)

func TestDecodeRecord(t *testing.T) {
	t.Run("moves _id into id", func(t *testing.T) {
		raw := json.RawMessage(`{"_id":"65f1c2","name":"Dr. Sarah Ahmed","specialty":"Cardiology"}`)

		doctor, err := decodeRecord[models.Doctor](raw)

		require.NoError(t, err)
		assert.Equal(t, "65f1c2", doctor.ID)
		assert.Equal(t, "Dr. Sarah Ahmed", doctor.Name)
	})

	t.Run("prefers an existing id over _id", func(t *testing.T) {
		raw := json.RawMessage(`{"_id":"mongo","id":"plain","name":"X"}`)

		doctor, err := decodeRecord[models.Doctor](raw)

		require.NoError(t, err)
		assert.Equal(t, "plain", doctor.ID)
	})

	t.Run("coerces a numeric id to a string", func(t *testing.T) {
		raw := json.RawMessage(`{"_id":42,"name":"X"}`)

		doctor, err := decodeRecord[models.Doctor](raw)

		require.NoError(t, err)
		assert.Equal(t, "42", doctor.ID)
	})

	t.Run("rejects a non-object document", func(t *testing.T) {
		_, err := decodeRecord[models.Doctor](json.RawMessage(`"not an object"`))
		assert.Error(t, err)
	})
}

func TestDecodeRecords(t *testing.T) {
	raw := []json.RawMessage{
		json.RawMessage(`{"_id":1,"patientId":"42","doctorId":"d1"}`),
		json.RawMessage(`{"_id":"a2","patientId":"43","doctorId":"d1"}`),
	}

	appointments, err := decodeRecords[models.Appointment](raw)

	require.NoError(t, err)
	require.Len(t, appointments, 2)
	assert.Equal(t, "1", appointments[0].ID)
	assert.Equal(t, "a2", appointments[1].ID)
}
