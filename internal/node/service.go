package node

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-zeromq/zmq4"

	"github.com/san-kum/mvsim/internal/wire"
)

// ServiceHandler handles one incoming call: it receives the raw
// serialized input and returns the raw serialized reply, or an error to
// be converted into a GenericAnswer{Success: false}.
type ServiceHandler func(serializedInput []byte) ([]byte, error)

type offeredService struct {
	inputType  string
	outputType string
	handler    ServiceHandler
}

// serviceRegistry is a node's map of offered services, read by the
// dispatcher and written by AdvertiseService.
type serviceRegistry struct {
	mu       sync.RWMutex
	services map[string]*offeredService
}

func newServiceRegistry() *serviceRegistry {
	return &serviceRegistry{services: make(map[string]*offeredService)}
}

func (r *serviceRegistry) advertise(name, inType, outType string, h ServiceHandler) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.services[name]; exists {
		return fmt.Errorf("%w: %s", wire.ErrDuplicateAdvertisement, name)
	}
	r.services[name] = &offeredService{inputType: inType, outputType: outType, handler: h}
	return nil
}

func (r *serviceRegistry) lookup(name string) (*offeredService, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	svc, ok := r.services[name]
	return svc, ok
}

// AdvertiseService registers name as handled by h and announces it to the
// directory, reading the node's shared service endpoint (bound at
// Connect time) rather than opening a new socket.
func (n *Node) AdvertiseService(name, inputType, outputType string, h ServiceHandler) error {
	if err := n.services.advertise(name, inputType, outputType, h); err != nil {
		return err
	}

	n.mu.Lock()
	endpoint := n.srvEndpoint
	n.mu.Unlock()

	req := wire.AdvertiseServiceRequest{
		ServiceName:    name,
		Endpoint:       endpoint,
		InputTypeName:  inputType,
		OutputTypeName: outputType,
		NodeName:       n.name,
	}
	var ans wire.GenericAnswer
	if err := n.roundTrip(wire.TypeAdvertiseServiceRequest, req, wire.TypeGenericAnswer, &ans); err != nil {
		return err
	}
	if !ans.Success {
		return fmt.Errorf("directory rejected advertise of service %s: %s", name, ans.ErrorMessage)
	}
	return nil
}

// dispatchLoop owns the shared REP socket and serially routes every
// CallService request to the right handler. It exits silently when ctx
// is canceled (the transport-terminating signal), which is the only
// cancellation path: there is no separate "closing" flag to race against
// a blocked Recv.
func (n *Node) dispatchLoop(ctx context.Context, sock zmq4.Socket) {
	defer n.dispatchWg.Done()

	for {
		msg, err := sock.Recv()
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			n.log.Warn("dispatcher recv error", "node", n.name, "error", err)
			continue
		}

		reply := n.handleCall(msg.Bytes())
		if err := sock.Send(zmq4.NewMsg(reply)); err != nil {
			if ctx.Err() != nil {
				return
			}
			n.log.Warn("dispatcher send error", "node", n.name, "error", err)
		}
	}
}

func (n *Node) handleCall(raw []byte) []byte {
	env, err := wire.Unmarshal(raw)
	if err != nil {
		return n.genericFailure("malformed request: " + err.Error())
	}
	var req wire.CallService
	if err := env.Unpack(&req); err != nil {
		return n.genericFailure("malformed CallService payload: " + err.Error())
	}

	svc, ok := n.services.lookup(req.ServiceName)
	if !ok {
		return n.genericFailure("unknown service: " + req.ServiceName)
	}

	replyBytes, err := func() (out []byte, handlerErr error) {
		defer func() {
			if r := recover(); r != nil {
				handlerErr = fmt.Errorf("handler panic: %v", r)
			}
		}()
		return svc.handler(req.SerializedInput)
	}()
	if err != nil {
		return n.genericFailure(err.Error())
	}

	replyEnv := wire.PackRaw(svc.outputType, replyBytes)
	raw, err = replyEnv.Marshal()
	if err != nil {
		return n.genericFailure("marshal reply: " + err.Error())
	}
	return raw
}

func (n *Node) genericFailure(msg string) []byte {
	env, _ := wire.Pack(wire.TypeGenericAnswer, wire.GenericAnswer{Success: false, ErrorMessage: msg})
	raw, _ := env.Marshal()
	return raw
}
