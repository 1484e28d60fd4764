package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendMemberLog(t *testing.T) {
	dir := t.TempDir()
	ev := MemberRegisteredEvent{
		UserID:       3,
		Username:     "alice",
		Role:         "student",
		RegisteredAt: time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC),
	}
	require.NoError(t, appendMemberLog(dir, ev))
	require.NoError(t, appendMemberLog(dir, ev))

	data, err := os.ReadFile(filepath.Join(dir, "members.log"))
	require.NoError(t, err)
	line := "2026-01-02T15:04:05Z member registered id=3 username=alice role=student\n"
	assert.Equal(t, line+line, string(data), "entries append, never overwrite")
}

func TestHandleDeliveryRejectsBadPayload(t *testing.T) {
	err := handleDelivery([]byte("{not json"))
	assert.Error(t, err)
}

func TestEventPayloadFields(t *testing.T) {
	body, err := json.Marshal(MemberRegisteredEvent{UserID: 7, Username: "bob", Role: "admin"})
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"user_id":7,"username":"bob","role":"admin","registered_at":"0001-01-01T00:00:00Z"}`,
		string(body))
}
