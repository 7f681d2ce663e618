// Package hub fans messages out to websocket clients: encoded video frames to
// preview viewers and serial lines to serial monitors.
package hub

// MessageType indicates the websocket message format
type MessageType int

const (
	// TextMessage is UTF-8 text: a serial line or a JSON document
	TextMessage MessageType = iota
	// BinaryMessage is raw binary data (JPEG frames)
	BinaryMessage
)

// Message is one websocket message broadcast to every client of a hub
type Message struct {
	Type MessageType
	Data []byte
}

// NewTextMessage creates a text message
func NewTextMessage(data []byte) Message {
	return Message{Type: TextMessage, Data: data}
}

// NewBinaryMessage creates a binary message
func NewBinaryMessage(data []byte) Message {
	return Message{Type: BinaryMessage, Data: data}
}
