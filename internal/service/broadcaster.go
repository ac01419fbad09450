package service

// Broadcaster pushes events to a form owner's WebSocket connections
// (interface here avoids an import cycle with transport/ws)
type Broadcaster interface {
	BroadcastToForm(formID string, msgType string, payload interface{})
}

type nopBroadcaster struct{}

func (nopBroadcaster) BroadcastToForm(string, string, interface{}) {}
