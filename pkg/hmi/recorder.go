package hmi

import (
	"context"
	"sync"
)

// Recorder is an in-memory Notifier that keeps every message in submission order.
type Recorder struct {
	mu        sync.Mutex
	messages  []Message
	responses []*RegisterAppInterfaceResponse
	failing   map[FunctionID]bool
	respErr   error
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{failing: make(map[FunctionID]bool)}
}

// FailFunction makes SendHMI report fn as not submitted.
func (r *Recorder) FailFunction(fn FunctionID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.failing[fn] = true
}

// FailResponses makes SendClientResponse return err.
func (r *Recorder) FailResponses(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.respErr = err
}

// SendHMI implements Notifier. Failed messages are not recorded.
func (r *Recorder) SendHMI(_ context.Context, msg Message) bool {
	if msg == nil {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failing[msg.FunctionID()] {
		return false
	}

	r.messages = append(r.messages, msg)

	return true
}

// SendClientResponse implements Notifier.
func (r *Recorder) SendClientResponse(_ context.Context, resp *RegisterAppInterfaceResponse) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.responses = append(r.responses, resp)

	return r.respErr
}

// Messages returns the submitted HMI messages.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Message(nil), r.messages...)
}

// Functions returns the function ids of the submitted HMI messages.
func (r *Recorder) Functions() []FunctionID {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]FunctionID, 0, len(r.messages))
	for _, m := range r.messages {
		out = append(out, m.FunctionID())
	}

	return out
}

// Responses returns every client response, including ones that failed.
func (r *Recorder) Responses() []*RegisterAppInterfaceResponse {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]*RegisterAppInterfaceResponse(nil), r.responses...)
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages = nil
	r.responses = nil
}
