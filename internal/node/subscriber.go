package node

import (
	"context"
	"fmt"

	"github.com/go-zeromq/zmq4"

	"github.com/san-kum/mvsim/internal/wire"
)

// Handler receives one decoded publish: the topic's declared type name
// and the raw payload bytes a publisher sent, suitable for wire.Unpack
// or a caller's own msgpack struct.
type Handler func(typeName string, payload []byte)

// Subscribe resolves topicName through the directory and connects a SUB
// socket to every endpoint currently publishing it, delivering each
// message to handler until ctx is canceled. Unlike Advertise/Publish,
// Subscribe does not register anything with the directory itself: a
// subscriber is not itself discoverable, matching the original
// publish/subscribe asymmetry of the messaging fabric.
func (n *Node) Subscribe(ctx context.Context, topicName string, handler Handler) error {
	topics, err := n.ListTopics()
	if err != nil {
		return fmt.Errorf("resolve topic %s: %w", topicName, err)
	}

	var info *wire.TopicInfo
	for i := range topics {
		if topics[i].Name == topicName {
			info = &topics[i]
			break
		}
	}
	if info == nil || len(info.Endpoint) == 0 {
		return fmt.Errorf("%w: %s", wire.ErrTopicNotAdvertised, topicName)
	}

	n.mu.Lock()
	zctx := n.zctx
	n.mu.Unlock()

	sock := zmq4.NewSub(zctx)
	for _, ep := range info.Endpoint {
		if err := sock.Dial(ep); err != nil {
			sock.Close()
			return fmt.Errorf("%w: dial %s: %v", wire.ErrTransportUnavailable, ep, err)
		}
	}
	if err := sock.SetOption(zmq4.OptionSubscribe, ""); err != nil {
		sock.Close()
		return err
	}
	defer sock.Close()

	typeName := info.Type
	for {
		msg, err := sock.Recv()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("%w: %v", wire.ErrTransportUnavailable, err)
		}

		env, err := wire.Unmarshal(msg.Bytes())
		if err != nil {
			n.log.Warn("subscriber: malformed message", "node", n.name, "topic", topicName, "error", err)
			continue
		}
		handler(typeName, env.Payload)

		select {
		case <-ctx.Done():
			return nil
		default:
		}
	}
}
