package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var at = time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

func TestFormatEvent(t *testing.T) {
	line := formatEvent(DonorEvent{Type: DonorRegistered, DonorID: 7, BloodGroup: "AB-", Location: "New Delhi", OccurredAt: at})
	assert.Equal(t, "[2025-03-01T09:30:00Z] donor.registered | donor_id=7 | blood_group=AB- | location=\"New Delhi\"\n", line)

	line = formatEvent(DonorEvent{Type: DonorDeleted, DonorID: 7, OccurredAt: at})
	assert.Equal(t, "[2025-03-01T09:30:00Z] donor.deleted | donor_id=7\n", line)
}

func TestHandleMessageAppends(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	for _, ev := range []DonorEvent{
		{Type: DonorRegistered, DonorID: 1, BloodGroup: "O+", Location: "Pune", OccurredAt: at},
		{Type: DonorDeleted, DonorID: 1, OccurredAt: at},
	} {
		body, err := json.Marshal(ev)
		require.NoError(t, err)
		require.NoError(t, handleMessage(dir, body))
	}

	b, err := os.ReadFile(filepath.Join(dir, "donors.log"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "donor.registered")
	assert.Contains(t, lines[1], "donor.deleted")
}

func TestHandleMessageRejectsBadPayload(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, handleMessage(dir, []byte("{not json")))
	assert.Error(t, handleMessage(dir, []byte(`{"type":"donor.registered"}`)))

	_, err := os.Stat(filepath.Join(dir, "donors.log"))
	assert.True(t, os.IsNotExist(err))
}
