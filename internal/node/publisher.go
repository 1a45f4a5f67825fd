package node

import (
	"fmt"
	"sync"

	"github.com/go-zeromq/zmq4"

	"github.com/san-kum/mvsim/internal/wire"
)

// publisherSendHWM bounds a publisher's outgoing queue so a slow or
// absent subscriber cannot make Publish block; once full, ZMQ drops
// rather than backs up, matching the fire-and-forget contract topics
// are published under.
const publisherSendHWM = 1000

type advertisedTopic struct {
	typeName string
	sock     zmq4.Socket
	endpoint string
}

// publisherRegistry is a node's map of advertised topics. Advertise
// rejects a duplicate topic name before any network I/O; Publish takes
// only a read lock so concurrent publishes on different topics proceed
// independently.
type publisherRegistry struct {
	node *Node

	mu     sync.RWMutex
	topics map[string]*advertisedTopic
}

func newPublisherRegistry(n *Node) *publisherRegistry {
	return &publisherRegistry{node: n, topics: make(map[string]*advertisedTopic)}
}

// Advertise binds a PUB socket for topicName and announces it to the
// directory. A duplicate name fails fast without touching the network.
func (p *publisherRegistry) Advertise(topicName, typeName string) error {
	p.mu.Lock()
	if _, exists := p.topics[topicName]; exists {
		p.mu.Unlock()
		return fmt.Errorf("%w: %s", wire.ErrDuplicateAdvertisement, topicName)
	}

	n := p.node
	n.mu.Lock()
	zctx := n.zctx
	n.mu.Unlock()

	sock := zmq4.NewPub(zctx)
	if err := sock.SetOption(zmq4.OptionHWM, publisherSendHWM); err != nil {
		p.mu.Unlock()
		return fmt.Errorf("%w: set send HWM: %v", wire.ErrTransportUnavailable, err)
	}
	if err := sock.Listen("tcp://0.0.0.0:0"); err != nil {
		p.mu.Unlock()
		return fmt.Errorf("%w: bind publisher socket: %v", wire.ErrTransportUnavailable, err)
	}
	endpoint := "tcp://" + sock.Addr().String()

	topic := &advertisedTopic{typeName: typeName, sock: sock, endpoint: endpoint}
	p.topics[topicName] = topic
	p.mu.Unlock()

	req := wire.AdvertiseTopicRequest{
		TopicName:     topicName,
		Endpoint:      endpoint,
		TopicTypeName: typeName,
		NodeName:      n.name,
	}
	var ans wire.GenericAnswer
	if err := n.roundTrip(wire.TypeAdvertiseTopicRequest, req, wire.TypeGenericAnswer, &ans); err != nil {
		return err
	}
	if !ans.Success {
		return fmt.Errorf("directory rejected advertise of %s: %s", topicName, ans.ErrorMessage)
	}
	return nil
}

// Publish sends payload (already serialized as typeName) on topicName's
// PUB socket. It fails if the topic was never advertised or if typeName
// does not match what Advertise recorded.
func (p *publisherRegistry) Publish(topicName, typeName string, payload []byte) error {
	p.mu.RLock()
	topic, ok := p.topics[topicName]
	p.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %s", wire.ErrTopicNotAdvertised, topicName)
	}
	if topic.typeName != typeName {
		return fmt.Errorf("%w: topic %s advertised as %s, got %s", wire.ErrTypeMismatch, topicName, topic.typeName, typeName)
	}

	env := wire.PackRaw(typeName, payload)
	raw, err := env.Marshal()
	if err != nil {
		return err
	}
	return topic.sock.Send(zmq4.NewMsg(raw))
}

// Advertise registers topicName as a topic this node publishes, typed as
// typeName, with the directory.
func (n *Node) Advertise(topicName, typeName string) error {
	return n.topics.Advertise(topicName, typeName)
}

// Publish sends an already-serialized message of typeName on topicName.
// Callers typically build payload with wire.Pack or their own msgpack
// struct and pass its .Payload through.
func (n *Node) Publish(topicName, typeName string, payload []byte) error {
	return n.topics.Publish(topicName, typeName, payload)
}
