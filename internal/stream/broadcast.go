package stream

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/gefkit/platform/input"
)

// Broadcaster turns controller snapshots into messages for the hub. Only
// slots whose state changed since the last Publish are sent.
type Broadcaster struct {
	hub    *Hub
	logger *slog.Logger

	mu   sync.Mutex
	last []input.ControllerState
	seq  int64
}

func NewBroadcaster(h *Hub, logger *slog.Logger) *Broadcaster {
	if logger == nil {
		logger = slog.Default()
	}
	return &Broadcaster{hub: h, logger: logger}
}

// Publish records states, one per slot, and sends the changed ones.
func (b *Broadcaster) Publish(states []input.ControllerState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for slot, st := range states {
		if slot < len(b.last) && b.last[slot] == st {
			continue
		}
		b.sendLocked(slot, st)
	}
	b.last = append(b.last[:0], states...)
}

// Sync resends every slot's last state.
func (b *Broadcaster) Sync() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for slot, st := range b.last {
		b.sendLocked(slot, st)
	}
}

// SendInitialState sends c the last state of the slot it watches.
func (b *Broadcaster) SendInitialState(c *Client) {
	b.mu.Lock()
	defer b.mu.Unlock()
	slot := c.Slot()
	var st input.ControllerState
	if slot < len(b.last) {
		st = b.last[slot]
	}
	b.seq++
	data, err := json.Marshal(NewFullMessage(b.seq, slot, st))
	if err != nil {
		b.logger.Error("Failed to marshal initial state", "error", err)
		return
	}
	b.hub.SendTo(c, data)
}

func (b *Broadcaster) sendLocked(slot int, st input.ControllerState) {
	b.seq++
	data, err := json.Marshal(NewFullMessage(b.seq, slot, st))
	if err != nil {
		b.logger.Error("Failed to marshal state", "slot", slot, "error", err)
		return
	}
	b.hub.BroadcastToSlot(data, slot)
}
