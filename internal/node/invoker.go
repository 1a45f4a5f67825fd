package node

import (
	"fmt"

	"github.com/go-zeromq/zmq4"

	"github.com/san-kum/mvsim/internal/wire"
)

// Call invokes a remote service by name: it resolves the service's
// endpoint via the directory, opens a fresh one-shot REQ socket to that
// endpoint, sends the serialized input, and returns the serialized
// reply. No retries are performed here; callers wrap this for retry
// semantics.
func (n *Node) Call(serviceName string, serializedInput []byte) ([]byte, error) {
	var info wire.GetServiceInfoAnswer
	if err := n.roundTrip(wire.TypeGetServiceInfoRequest, wire.GetServiceInfoRequest{ServiceName: serviceName}, wire.TypeGetServiceInfoAnswer, &info); err != nil {
		return nil, err
	}
	if !info.Success {
		return nil, fmt.Errorf("%w: %s", wire.ErrServiceNotFound, serviceName)
	}

	n.mu.Lock()
	zctx := n.zctx
	n.mu.Unlock()

	sock := zmq4.NewReq(zctx)
	defer sock.Close()

	if err := sock.Dial(info.ServiceEndpoint); err != nil {
		return nil, fmt.Errorf("%w: dial %s: %v", wire.ErrServiceCallFailed, info.ServiceEndpoint, err)
	}

	req := wire.CallService{ServiceName: serviceName, SerializedInput: serializedInput}
	env, err := wire.Pack(wire.TypeCallService, req)
	if err != nil {
		return nil, err
	}
	raw, err := env.Marshal()
	if err != nil {
		return nil, err
	}
	if err := sock.Send(zmq4.NewMsg(raw)); err != nil {
		return nil, fmt.Errorf("%w: %v", wire.ErrServiceCallFailed, err)
	}

	msg, err := sock.Recv()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", wire.ErrServiceCallFailed, err)
	}

	replyEnv, err := wire.Unmarshal(msg.Bytes())
	if err != nil {
		return nil, err
	}
	if replyEnv.Matches(wire.TypeGenericAnswer) {
		var ans wire.GenericAnswer
		if err := replyEnv.Unpack(&ans); err == nil && !ans.Success {
			return nil, fmt.Errorf("%w: %s", wire.ErrServiceCallFailed, ans.ErrorMessage)
		}
	}

	return replyEnv.Payload, nil
}
