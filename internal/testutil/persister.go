package testutil

import (
	"context"
	"sync"

	"github.com/alexanderramin/revgantt/internal/wire"
)

// FailingPersister records save payloads and fails the first FailTimes calls
// with Err. A negative FailTimes fails every call.
type FailingPersister struct {
	Err       error
	FailTimes int

	mu    sync.Mutex
	calls int
	saved [][]wire.StagePayload
}

func (p *FailingPersister) SaveStages(_ context.Context, _ string, payload []wire.StagePayload) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.FailTimes < 0 || p.calls <= p.FailTimes {
		return p.Err
	}
	p.saved = append(p.saved, payload)
	return nil
}

// Calls counts every SaveStages call, failed or not.
func (p *FailingPersister) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// Saved returns the payloads of successful saves, oldest first.
func (p *FailingPersister) Saved() [][]wire.StagePayload {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([][]wire.StagePayload, len(p.saved))
	copy(out, p.saved)
	return out
}
