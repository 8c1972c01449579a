package ai

import (
	"context"
	"strings"
	"sync"
)

type StreamEventType string

const (
	StreamChunk StreamEventType = "chunk"
	StreamDone  StreamEventType = "done"
	StreamError StreamEventType = "error"
)

// StreamEvent is one incremental update of an in-progress model message. Text is
// always the full message so far.
type StreamEvent struct {
	Type   StreamEventType `json:"type"`
	Delta  string          `json:"delta,omitempty"`
	Text   string          `json:"text"`
	Notice string          `json:"notice,omitempty"`
}

// PendingMessage is the handle of a model message that is still being generated.
// Updates is closed after the final done or error event.
type PendingMessage struct {
	ConversationID string
	// Index is the position of the model message in the conversation.
	Index int

	ctx       context.Context
	cancel    context.CancelFunc
	abandoned chan struct{}
	once      sync.Once

	mu      sync.Mutex
	text    strings.Builder
	updates chan StreamEvent
}

const streamBuffer = 64

func newPendingMessage(ctx context.Context, convID string, index int) *PendingMessage {
	ctx, cancel := context.WithCancel(ctx)
	return &PendingMessage{
		ConversationID: convID,
		Index:          index,
		ctx:            ctx,
		cancel:         cancel,
		abandoned:      make(chan struct{}),
		updates:        make(chan StreamEvent, streamBuffer),
	}
}

func (p *PendingMessage) Updates() <-chan StreamEvent {
	return p.updates
}

// Text returns the message accumulated so far.
func (p *PendingMessage) Text() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.text.String()
}

// Cancel stops generation. The consumer need not drain Updates afterwards.
func (p *PendingMessage) Cancel() {
	p.once.Do(func() { close(p.abandoned) })
	p.cancel()
}

// appendChunk extends the message and publishes the chunk.
func (p *PendingMessage) appendChunk(delta string) error {
	p.mu.Lock()
	p.text.WriteString(delta)
	full := p.text.String()
	p.mu.Unlock()
	return p.emit(StreamEvent{Type: StreamChunk, Delta: delta, Text: full})
}

// emit publishes ev, waiting for buffer space until the consumer cancels or the
// request deadline passes.
func (p *PendingMessage) emit(ev StreamEvent) error {
	select {
	case p.updates <- ev:
		return nil
	default:
	}
	select {
	case p.updates <- ev:
		return nil
	case <-p.abandoned:
		return context.Canceled
	case <-p.ctx.Done():
		return p.ctx.Err()
	}
}

// finish publishes the final event and closes Updates.
func (p *PendingMessage) finish(ev StreamEvent) {
	_ = p.emit(ev)
	close(p.updates)
	p.cancel()
}
