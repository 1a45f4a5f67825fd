package wire

import "testing"

func TestEnvelope_RoundTrip(t *testing.T) {
	want := AdvertiseTopicRequest{
		TopicName:     "odom",
		Endpoint:      "tcp://127.0.0.1:5555",
		TopicTypeName: "mvsim.Odometry",
		NodeName:      "n1",
	}

	env, err := Pack(TypeAdvertiseTopicRequest, want)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}

	raw, err := env.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	decoded, err := Unmarshal(raw)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !decoded.Matches(TypeAdvertiseTopicRequest) {
		t.Fatalf("Matches() = false, got type %q", decoded.Type)
	}

	var got AdvertiseTopicRequest
	if err := decoded.Unpack(&got); err != nil {
		t.Fatalf("Unpack: %v", err)
	}

	if got != want {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestEnvelope_TypeMismatch(t *testing.T) {
	env, err := Pack(TypeRegisterNodeRequest, RegisterNodeRequest{NodeName: "n1"})
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	if env.Matches(TypeGenericAnswer) {
		t.Error("Matches() should be false for a different type name")
	}
}

func TestListTopicsAnswer_ParallelArrays(t *testing.T) {
	want := ListTopicsAnswer{
		Topics: []TopicInfo{
			{Name: "odom", Type: "mvsim.Odometry", Endpoint: []string{"tcp://a:1", "tcp://b:2"}, PublisherName: []string{"n1", "n2"}},
		},
	}

	env, err := Pack(TypeListTopicsAnswer, want)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	var got ListTopicsAnswer
	if err := env.Unpack(&got); err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if len(got.Topics) != 1 || len(got.Topics[0].Endpoint) != len(got.Topics[0].PublisherName) {
		t.Errorf("parallel array lengths diverged: %+v", got.Topics)
	}
}
