package node

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-zeromq/zmq4"

	"github.com/san-kum/mvsim/internal/monitor"
	"github.com/san-kum/mvsim/internal/wire"
)

// Node is one named participant in the messaging fabric. The zero value
// is not usable; construct with New.
type Node struct {
	name string
	log  *slog.Logger

	mu    sync.Mutex // guards state and the directory REQ socket
	state State

	zctx        context.Context
	cancel      context.CancelFunc
	dirSock     zmq4.Socket
	dirEndpoint string

	srvSock     zmq4.Socket
	srvEndpoint string
	dispatchWg  sync.WaitGroup

	monitor *monitor.ConnectionMonitor

	topics   *publisherRegistry
	services *serviceRegistry
}

// New builds a node with the given name. name must be non-empty; it is
// not validated here since a connect attempt with an empty name will be
// rejected by the directory and surfaced as RegistrationRejected.
func New(name string, log *slog.Logger) *Node {
	if log == nil {
		log = slog.Default()
	}
	n := &Node{
		name:    name,
		log:     log,
		monitor: monitor.New(),
	}
	n.topics = newPublisherRegistry(n)
	n.services = newServiceRegistry()
	return n
}

func (n *Node) Name() string { return n.name }

// Connected reports whether the directory connection is currently up,
// per the monitor's most recent observation.
func (n *Node) Connected() bool {
	return n.monitor.Connected()
}

// State returns the node's current lifecycle state.
func (n *Node) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// Connect opens the directory REQ socket, registers the node's name,
// binds the shared service REP socket, and starts the dispatcher.
// Connect requires the node to currently be Disconnected.
func (n *Node) Connect(ctx context.Context, directoryEndpoint string) error {
	n.mu.Lock()
	if n.state != Disconnected {
		n.mu.Unlock()
		return fmt.Errorf("node: Connect called from state %s, want disconnected", n.state)
	}
	n.state = Connecting
	n.mu.Unlock()

	zctx, cancel := context.WithCancel(ctx)

	dirSock := zmq4.NewReq(zctx)
	if err := dirSock.Dial(directoryEndpoint); err != nil {
		cancel()
		n.setState(Disconnected)
		return fmt.Errorf("%w: dial %s: %v", wire.ErrTransportUnavailable, directoryEndpoint, err)
	}

	n.mu.Lock()
	n.zctx = zctx
	n.cancel = cancel
	n.dirSock = dirSock
	n.dirEndpoint = directoryEndpoint
	n.mu.Unlock()

	if err := n.doRegister(); err != nil {
		n.monitor.NotifyDisconnected()
		dirSock.Close()
		cancel()
		n.setState(Disconnected)
		return err
	}
	n.monitor.NotifyConnected()

	srvSock := zmq4.NewRep(zctx)
	if err := srvSock.Listen("tcp://0.0.0.0:0"); err != nil {
		dirSock.Close()
		cancel()
		n.setState(Disconnected)
		return fmt.Errorf("%w: bind service socket: %v", wire.ErrTransportUnavailable, err)
	}

	n.mu.Lock()
	n.srvSock = srvSock
	n.srvEndpoint = "tcp://" + srvSock.Addr().String()
	n.mu.Unlock()

	n.dispatchWg.Add(1)
	go n.dispatchLoop(zctx, srvSock)

	n.setState(Registered)
	n.log.Info("node connected", "name", n.name, "directory", directoryEndpoint, "service_endpoint", n.srvEndpoint)
	return nil
}

func (n *Node) setState(s State) {
	n.mu.Lock()
	n.state = s
	n.mu.Unlock()
}

func (n *Node) doRegister() error {
	req := wire.RegisterNodeRequest{NodeName: n.name}
	var ans wire.RegisterNodeAnswer
	if err := n.roundTrip(wire.TypeRegisterNodeRequest, req, wire.TypeRegisterNodeAnswer, &ans); err != nil {
		return err
	}
	if !ans.Success {
		return fmt.Errorf("%w: %s", wire.ErrRegistrationRejected, ans.ErrorMessage)
	}
	return nil
}

// Shutdown unregisters from the directory (swallowing errors), tears down
// the transport context so the dispatcher's blocked Recv fails and exits,
// joins the dispatcher, and releases sockets. It is idempotent and safe
// to call multiple times or from a deferred cleanup.
func (n *Node) Shutdown() {
	n.mu.Lock()
	if n.state != Registered {
		n.mu.Unlock()
		return
	}
	n.state = ShuttingDown
	dirSock := n.dirSock
	n.mu.Unlock()

	if err := n.doUnregister(); err != nil {
		n.log.Warn("unregister failed during shutdown", "name", n.name, "error", err)
	}

	if n.cancel != nil {
		n.cancel()
	}
	n.dispatchWg.Wait()

	if dirSock != nil {
		dirSock.Close()
	}
	n.mu.Lock()
	if n.srvSock != nil {
		n.srvSock.Close()
	}
	n.mu.Unlock()

	n.monitor.NotifyDisconnected()
	n.setState(Disconnected)
	n.log.Info("node shut down", "name", n.name)
}

func (n *Node) doUnregister() error {
	req := wire.UnregisterNodeRequest{NodeName: n.name}
	var ans wire.GenericAnswer
	return n.roundTrip(wire.TypeUnregisterNodeRequest, req, wire.TypeGenericAnswer, &ans)
}

// roundTrip sends a request envelope on the directory socket and decodes
// the reply into out. Callers on this package's exported API are expected
// not to call it concurrently, matching the single-directory-socket
// discipline the node documents.
func (n *Node) roundTrip(reqType string, req any, wantType string, out any) error {
	n.mu.Lock()
	sock := n.dirSock
	n.mu.Unlock()
	if sock == nil {
		return wire.ErrTransportUnavailable
	}

	env, err := wire.Pack(reqType, req)
	if err != nil {
		return err
	}
	raw, err := env.Marshal()
	if err != nil {
		return err
	}
	if err := sock.Send(zmq4.NewMsg(raw)); err != nil {
		return fmt.Errorf("%w: %v", wire.ErrTransportUnavailable, err)
	}

	msg, err := sock.Recv()
	if err != nil {
		return fmt.Errorf("%w: %v", wire.ErrTransportUnavailable, err)
	}

	replyEnv, err := wire.Unmarshal(msg.Bytes())
	if err != nil {
		return err
	}
	if !replyEnv.Matches(wantType) {
		return fmt.Errorf("%w: got reply type %s, want %s", wire.ErrTypeMismatch, replyEnv.Type, wantType)
	}
	return replyEnv.Unpack(out)
}

// ListNodes asks the directory for every currently registered node name.
func (n *Node) ListNodes() ([]string, error) {
	var ans wire.ListNodesAnswer
	if err := n.roundTrip(wire.TypeListNodesRequest, wire.ListNodesRequest{}, wire.TypeListNodesAnswer, &ans); err != nil {
		return nil, err
	}
	return ans.Nodes, nil
}

// ListTopics asks the directory for every currently advertised topic.
func (n *Node) ListTopics() ([]wire.TopicInfo, error) {
	var ans wire.ListTopicsAnswer
	if err := n.roundTrip(wire.TypeListTopicsRequest, wire.ListTopicsRequest{}, wire.TypeListTopicsAnswer, &ans); err != nil {
		return nil, err
	}
	return ans.Topics, nil
}
