package stream

import (
	"time"

	"github.com/gefkit/platform/input"
)

// Message types sent to clients.
const (
	TypeFull     = "full"
	TypeSelected = "slot_selected"
	TypeError    = "error"
)

// Message types accepted from clients.
const (
	TypeSelectSlot = "select_slot"
	TypeOutput     = "output"
)

// Message is a server to client frame.
type Message struct {
	Type      string                 `json:"type"`
	Seq       int64                  `json:"seq"`
	Timestamp int64                  `json:"timestamp"`
	Slot      int                    `json:"slot"`
	Data      *input.ControllerState `json:"data,omitempty"`
	Down      []string               `json:"down,omitempty"`
	Pressed   []string               `json:"pressed,omitempty"`
	Released  []string               `json:"released,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

func NewFullMessage(seq int64, slot int, state input.ControllerState) *Message {
	return &Message{
		Type:      TypeFull,
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Slot:      slot,
		Data:      &state,
		Down:      state.Down.Names(),
		Pressed:   state.Pressed().Names(),
		Released:  state.Released().Names(),
	}
}

func NewSelectedMessage(slot int) *Message {
	return &Message{Type: TypeSelected, Timestamp: time.Now().UnixMilli(), Slot: slot}
}

func NewErrorMessage(slot int, err error) *Message {
	return &Message{Type: TypeError, Timestamp: time.Now().UnixMilli(), Slot: slot, Error: err.Error()}
}

// ClientMessage is a client to server frame. Output carries the request for
// TypeOutput; Trigger and TriggerParams describe an adaptive trigger effect
// applied to both triggers.
type ClientMessage struct {
	Type          string               `json:"type"`
	Slot          int                  `json:"slot"`
	Output        *input.OutputRequest `json:"output,omitempty"`
	Trigger       string               `json:"trigger,omitempty"`
	TriggerParams []float32            `json:"triggerParams,omitempty"`
}
