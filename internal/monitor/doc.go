// Package monitor exposes a connected() signal for a node's directory
// socket.
//
// libmvsim derives this from a ZeroMQ monitor socket subscribed to the
// underlying REQ socket's connect/disconnect events. go-zeromq/zmq4 does
// not expose an equivalent monitor-socket API, so here the node itself
// reports connect/disconnect transitions at the call sites where it
// already knows the outcome (a successful registration round-trip, a
// transport error, shutdown). The externally observable behavior -
// Connected() reflects the most recent outcome - matches the original
// even though the mechanism is push-based rather than event-stream-based.
package monitor
