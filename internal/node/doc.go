// Package node implements the client side of the messaging fabric: a
// named process that registers with a directory, advertises topics and
// services, publishes telemetry, and invokes services on other nodes.
//
// A Node owns its directory REQ socket, its shared service REP socket,
// and the maps of topics and services it has advertised. Application
// code is expected to serialize its own calls into advertise/publish/call
// the same way libmvsim documents for its Client: the directory socket is
// not safe for concurrent use from multiple goroutines.
package node
