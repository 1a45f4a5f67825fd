package directory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-zeromq/zmq4"

	"github.com/san-kum/mvsim/internal/wire"
)

// Server is the directory process: a single REP socket multiplexing
// registration, advertisement, and lookup requests from every connected
// node. Like a node's own service dispatcher, it processes requests
// strictly sequentially on one goroutine.
type Server struct {
	reg *registry
	log *slog.Logger

	sock     zmq4.Socket
	endpoint string
}

// New builds a directory server with an empty registry.
func New(log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{reg: newRegistry(), log: log}
}

// Listen binds the REP socket at the given endpoint (typically
// "tcp://0.0.0.0:<directory.MainRepPort>", or "tcp://127.0.0.1:0" for an
// ephemeral port in tests) without starting to serve requests yet, so
// callers can read back the bound Addr before any node tries to connect.
func (s *Server) Listen(ctx context.Context, endpoint string) error {
	sock := zmq4.NewRep(ctx)
	if err := sock.Listen(endpoint); err != nil {
		return fmt.Errorf("directory: listen on %s: %w", endpoint, err)
	}
	s.sock = sock
	s.endpoint = "tcp://" + sock.Addr().String()
	return nil
}

// Addr returns the endpoint Listen bound to.
func (s *Server) Addr() string {
	return s.endpoint
}

// Serve processes requests on the socket bound by Listen until ctx is
// canceled. ListenAndServe combines the two for callers that don't need
// the bound address ahead of time.
func (s *Server) Serve(ctx context.Context) error {
	sock := s.sock
	defer sock.Close()

	s.log.Info("directory listening", "endpoint", s.endpoint)

	for {
		msg, err := sock.Recv()
		if err != nil {
			if ctx.Err() != nil {
				s.log.Debug("directory shutting down")
				return nil
			}
			s.log.Warn("directory recv error", "error", err)
			continue
		}

		reply, err := s.handle(msg.Bytes())
		if err != nil {
			s.log.Warn("directory handler error", "error", err)
			continue
		}
		if err := sock.Send(zmq4.NewMsg(reply)); err != nil {
			s.log.Warn("directory send error", "error", err)
		}
	}
}

// ListenAndServe is a convenience wrapper for callers that don't need the
// bound address before Serve starts.
func (s *Server) ListenAndServe(ctx context.Context, endpoint string) error {
	if err := s.Listen(ctx, endpoint); err != nil {
		return err
	}
	return s.Serve(ctx)
}

func (s *Server) handle(raw []byte) ([]byte, error) {
	env, err := wire.Unmarshal(raw)
	if err != nil {
		return nil, fmt.Errorf("directory: malformed request: %w", err)
	}

	switch env.Type {
	case wire.TypeRegisterNodeRequest:
		var req wire.RegisterNodeRequest
		if err := env.Unpack(&req); err != nil {
			return nil, err
		}
		return replyOf(wire.TypeRegisterNodeAnswer, s.doRegister(req))

	case wire.TypeUnregisterNodeRequest:
		var req wire.UnregisterNodeRequest
		if err := env.Unpack(&req); err != nil {
			return nil, err
		}
		s.reg.unregisterNode(req.NodeName)
		return replyOf(wire.TypeGenericAnswer, wire.GenericAnswer{Success: true})

	case wire.TypeListNodesRequest:
		return replyOf(wire.TypeListNodesAnswer, wire.ListNodesAnswer{Nodes: s.reg.listNodes()})

	case wire.TypeListTopicsRequest:
		return replyOf(wire.TypeListTopicsAnswer, s.doListTopics())

	case wire.TypeAdvertiseTopicRequest:
		var req wire.AdvertiseTopicRequest
		if err := env.Unpack(&req); err != nil {
			return nil, err
		}
		s.reg.advertiseTopic(req.TopicName, req.Endpoint, req.TopicTypeName, req.NodeName)
		return replyOf(wire.TypeGenericAnswer, wire.GenericAnswer{Success: true})

	case wire.TypeAdvertiseServiceRequest:
		var req wire.AdvertiseServiceRequest
		if err := env.Unpack(&req); err != nil {
			return nil, err
		}
		ok := s.reg.advertiseService(req.ServiceName, req.Endpoint, req.InputTypeName, req.OutputTypeName, req.NodeName)
		if !ok {
			return replyOf(wire.TypeGenericAnswer, wire.GenericAnswer{Success: false, ErrorMessage: "service already advertised"})
		}
		return replyOf(wire.TypeGenericAnswer, wire.GenericAnswer{Success: true})

	case wire.TypeGetServiceInfoRequest:
		var req wire.GetServiceInfoRequest
		if err := env.Unpack(&req); err != nil {
			return nil, err
		}
		return replyOf(wire.TypeGetServiceInfoAnswer, s.doGetServiceInfo(req))

	default:
		return replyOf(wire.TypeGenericAnswer, wire.GenericAnswer{Success: false, ErrorMessage: "unknown request type " + env.Type})
	}
}

func (s *Server) doRegister(req wire.RegisterNodeRequest) wire.RegisterNodeAnswer {
	if req.NodeName == "" {
		return wire.RegisterNodeAnswer{Success: false, ErrorMessage: "node name must not be empty"}
	}
	s.reg.registerNode(req.NodeName)
	return wire.RegisterNodeAnswer{Success: true}
}

func (s *Server) doListTopics() wire.ListTopicsAnswer {
	recs := s.reg.listTopics()
	topics := make([]wire.TopicInfo, 0, len(recs))
	for name, rec := range recs {
		topics = append(topics, wire.TopicInfo{
			Name:          name,
			Type:          rec.typeName,
			Endpoint:      rec.endpoints,
			PublisherName: rec.publisherName,
		})
	}
	return wire.ListTopicsAnswer{Topics: topics}
}

func (s *Server) doGetServiceInfo(req wire.GetServiceInfoRequest) wire.GetServiceInfoAnswer {
	endpoint, ok := s.reg.serviceEndpoint(req.ServiceName)
	if !ok {
		return wire.GetServiceInfoAnswer{Success: false, ErrorMessage: "service not found"}
	}
	return wire.GetServiceInfoAnswer{Success: true, ServiceEndpoint: endpoint}
}

func replyOf(typeName string, v any) ([]byte, error) {
	env, err := wire.Pack(typeName, v)
	if err != nil {
		return nil, err
	}
	return env.Marshal()
}
