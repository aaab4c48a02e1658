package worker

import (
	"context"
	"encoding/json"
	"testing"

	"frontdesk/internal/infra"

	"github.com/stretchr/testify/assert"
)

func TestProgressEmailWorker_MalformedPayloadNotRetried(t *testing.T) {
	w := NewProgressEmailWorker(nil, infra.NewCircuitBreaker(infra.DefaultCBConfig()), t.TempDir())

	// A payload that can never deserialize would retry forever; the worker
	// must swallow it.
	err := w.Process(context.Background(), json.RawMessage(`{"to_email": 42}`))
	assert.NoError(t, err)
}

func TestProgressEmailWorker_EmptyRecipientSkipped(t *testing.T) {
	w := NewProgressEmailWorker(nil, infra.NewCircuitBreaker(infra.DefaultCBConfig()), t.TempDir())

	payload, _ := json.Marshal(ProgressEmailPayload{GuestName: "Ana", BookingRef: "HM1"})
	err := w.Process(context.Background(), payload)
	assert.NoError(t, err)
}
