package wire

// Type name constants, used both as Envelope.Type tags and as the
// human-readable type names that travel inside AdvertiseTopicRequest /
// AdvertiseServiceRequest for remote introspection.
const (
	TypeRegisterNodeRequest     = "mvsim.RegisterNodeRequest"
	TypeRegisterNodeAnswer      = "mvsim.RegisterNodeAnswer"
	TypeUnregisterNodeRequest   = "mvsim.UnregisterNodeRequest"
	TypeGenericAnswer           = "mvsim.GenericAnswer"
	TypeListNodesRequest        = "mvsim.ListNodesRequest"
	TypeListNodesAnswer         = "mvsim.ListNodesAnswer"
	TypeListTopicsRequest       = "mvsim.ListTopicsRequest"
	TypeListTopicsAnswer        = "mvsim.ListTopicsAnswer"
	TypeAdvertiseTopicRequest   = "mvsim.AdvertiseTopicRequest"
	TypeAdvertiseServiceRequest = "mvsim.AdvertiseServiceRequest"
	TypeGetServiceInfoRequest   = "mvsim.GetServiceInfoRequest"
	TypeGetServiceInfoAnswer    = "mvsim.GetServiceInfoAnswer"
	TypeCallService             = "mvsim.CallService"
)

type RegisterNodeRequest struct {
	NodeName string `msgpack:"node_name"`
}

type RegisterNodeAnswer struct {
	Success      bool   `msgpack:"success"`
	ErrorMessage string `msgpack:"error_message"`
}

type UnregisterNodeRequest struct {
	NodeName string `msgpack:"node_name"`
}

// GenericAnswer is the catch-all reply for requests that only need to
// report success/failure: unregister, advertise-topic, advertise-service,
// and an unknown-service call.
type GenericAnswer struct {
	Success      bool   `msgpack:"success"`
	ErrorMessage string `msgpack:"error_message"`
}

type ListNodesRequest struct{}

type ListNodesAnswer struct {
	Nodes []string `msgpack:"nodes"`
}

type ListTopicsRequest struct{}

// TopicInfo describes one advertised topic and all of its current
// publishers; Endpoint and PublisherName are parallel arrays, one entry
// per publishing node, since more than one node may advertise the same
// topic name.
type TopicInfo struct {
	Name          string   `msgpack:"name"`
	Type          string   `msgpack:"type"`
	Endpoint      []string `msgpack:"endpoint"`
	PublisherName []string `msgpack:"publisher_name"`
}

type ListTopicsAnswer struct {
	Topics []TopicInfo `msgpack:"topics"`
}

type AdvertiseTopicRequest struct {
	TopicName     string `msgpack:"topic_name"`
	Endpoint      string `msgpack:"endpoint"`
	TopicTypeName string `msgpack:"topic_type_name"`
	NodeName      string `msgpack:"node_name"`
}

type AdvertiseServiceRequest struct {
	ServiceName    string `msgpack:"service_name"`
	Endpoint       string `msgpack:"endpoint"`
	InputTypeName  string `msgpack:"input_type_name"`
	OutputTypeName string `msgpack:"output_type_name"`
	NodeName       string `msgpack:"node_name"`
}

type GetServiceInfoRequest struct {
	ServiceName string `msgpack:"service_name"`
}

type GetServiceInfoAnswer struct {
	Success         bool   `msgpack:"success"`
	ErrorMessage    string `msgpack:"error_message"`
	ServiceEndpoint string `msgpack:"service_endpoint"`
}

// CallService carries a pre-serialized request payload; its reply is an
// Envelope that either carries the handler's serialized output tagged with
// the service's output type, or a GenericAnswer{Success: false} tagged
// TypeGenericAnswer on failure, so the dispatcher can fail fast without
// knowing the service's output type.
type CallService struct {
	ServiceName     string `msgpack:"service_name"`
	SerializedInput []byte `msgpack:"serialized_input"`
}
