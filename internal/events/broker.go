// Package events pushes integration changes to open frontend pages.
package events

import (
	"encoding/json"
	"sync"
	"sync/atomic"
)

const subscriberBufSize = 32

const (
	TypeUpdated = "favicon_updated"
	TypeRemoved = "favicon_removed"
)

// Event is a single change notification.
type Event struct {
	Type     string `json:"type"`
	EntryID  string `json:"entry_id,omitempty"`
	Title    string `json:"title,omitempty"`
	IconPath string `json:"icon_path,omitempty"`
}

// JSON encodes the event for the wire.
func (e Event) JSON() []byte {
	data, _ := json.Marshal(e)
	return data
}

// Broker fans out events to all subscribed clients.
type Broker struct {
	mu          sync.RWMutex
	subscribers map[int64]chan Event
	nextID      atomic.Int64
}

func NewBroker() *Broker {
	return &Broker{
		subscribers: make(map[int64]chan Event),
	}
}

// Subscribe registers a new client. The channel is buffered; slow consumers will have
// events dropped.
func (b *Broker) Subscribe() (int64, <-chan Event) {
	id := b.nextID.Add(1)
	ch := make(chan Event, subscriberBufSize)
	b.mu.Lock()
	b.subscribers[id] = ch
	b.mu.Unlock()
	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Broker) Unsubscribe(id int64) {
	b.mu.Lock()
	ch, ok := b.subscribers[id]
	if ok {
		delete(b.subscribers, id)
		close(ch)
	}
	b.mu.Unlock()
}

// Publish sends an event to all subscribers without blocking.
func (b *Broker) Publish(evt Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subscribers {
		select {
		case ch <- evt:
		default:
		}
	}
}

// ClientCount returns the number of active subscribers.
func (b *Broker) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
