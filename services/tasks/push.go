package tasks

import (
	"encoding/json"
	"time"

	"powerup/models"

	"github.com/hibiken/asynq"
)

const TypeSendPush = "notification:push"

// NewPushTask builds the delivery task for a stored notification. The delay
// leaves room for the enclosing transaction to commit before the worker
// reads the row back.
func NewPushTask(payload models.PushPayload, delay time.Duration) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendPush, b)
	opts := []asynq.Option{
		asynq.ProcessIn(delay),
		asynq.MaxRetry(3),
		asynq.Timeout(30 * time.Second),
	}
	return task, opts, nil
}

// ParsePushPayload decodes the payload of a TypeSendPush task.
func ParsePushPayload(t *asynq.Task) (models.PushPayload, error) {
	var p models.PushPayload
	err := json.Unmarshal(t.Payload(), &p)
	return p, err
}
