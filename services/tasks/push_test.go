package tasks

import (
	"testing"
	"time"

	"powerup/models"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushTaskRoundTrip(t *testing.T) {
	task, opts, err := NewPushTask(models.PushPayload{NotificationID: "n1", UserID: "u1"}, 2*time.Second)
	require.NoError(t, err)
	assert.Equal(t, TypeSendPush, task.Type())
	assert.Len(t, opts, 3)

	p, err := ParsePushPayload(task)
	require.NoError(t, err)
	assert.Equal(t, models.PushPayload{NotificationID: "n1", UserID: "u1"}, p)

	_, err = ParsePushPayload(asynq.NewTask(TypeSendPush, []byte("{")))
	assert.Error(t, err)
}
