package monitor

import "sync/atomic"

// ConnectionMonitor tracks whether a node's directory connection is
// currently believed to be up. It is safe for concurrent use: the node's
// own goroutine reports transitions, while application code may poll
// Connected from any goroutine.
type ConnectionMonitor struct {
	connected atomic.Bool
}

// New returns a monitor starting in the disconnected state.
func New() *ConnectionMonitor {
	return &ConnectionMonitor{}
}

// NotifyConnected records a successful connect event.
func (m *ConnectionMonitor) NotifyConnected() {
	m.connected.Store(true)
}

// NotifyDisconnected records a disconnect or failed round-trip.
func (m *ConnectionMonitor) NotifyDisconnected() {
	m.connected.Store(false)
}

// Connected reports whether the most recent event was a connect with no
// subsequent disconnect.
func (m *ConnectionMonitor) Connected() bool {
	return m.connected.Load()
}
