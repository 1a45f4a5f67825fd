// Package wire defines the request/reply and publish/subscribe message
// shapes that flow between a node, the directory it registers with, and
// any peer it calls a service on. Every message is wrapped in an
// [Envelope] carrying a type name, which stands in for the descriptor-based
// type introspection a heavier serialization framework would give for
// free: a publisher records the type name it advertised with and checks
// each later publish call against it, and [Envelope.Matches] is how a
// received reply's type is checked against the type the caller expects.
package wire
