package node_test

import (
	"context"
	"testing"
	"time"

	"github.com/san-kum/mvsim/internal/directory"
	"github.com/san-kum/mvsim/internal/node"
)

func startTestDirectory(t *testing.T) (string, func()) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	srv := directory.New(nil)
	if err := srv.Listen(ctx, "tcp://127.0.0.1:0"); err != nil {
		t.Fatalf("directory Listen: %v", err)
	}
	done := make(chan struct{})
	go func() {
		srv.Serve(ctx)
		close(done)
	}()
	return srv.Addr(), func() {
		cancel()
		<-done
	}
}

func TestNode_RegistrationRoundTrip(t *testing.T) {
	addr, stop := startTestDirectory(t)
	defer stop()

	n1 := node.New("n1", nil)
	if err := n1.Connect(context.Background(), addr); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer n1.Shutdown()

	if !n1.Connected() {
		t.Error("node should report connected after successful registration")
	}

	nodes, err := n1.ListNodes()
	if err != nil {
		t.Fatalf("ListNodes: %v", err)
	}
	found := false
	for _, name := range nodes {
		if name == "n1" {
			found = true
		}
	}
	if !found {
		t.Errorf("ListNodes() = %v, want it to contain n1", nodes)
	}
}

func TestNode_DuplicateAdvertiseRejected(t *testing.T) {
	addr, stop := startTestDirectory(t)
	defer stop()

	n := node.New("pub1", nil)
	if err := n.Connect(context.Background(), addr); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer n.Shutdown()

	if err := n.Advertise("odom", "mvsim.Odometry"); err != nil {
		t.Fatalf("first Advertise: %v", err)
	}
	if err := n.Advertise("odom", "mvsim.Odometry"); err == nil {
		t.Error("second Advertise of the same topic should fail")
	}

	// first publisher should remain functional
	if err := n.Publish("odom", "mvsim.Odometry", []byte("payload")); err != nil {
		t.Errorf("Publish after a rejected duplicate advertise should still work: %v", err)
	}
}

func TestNode_ServiceRoundTrip(t *testing.T) {
	addr, stop := startTestDirectory(t)
	defer stop()

	a := node.New("a", nil)
	if err := a.Connect(context.Background(), addr); err != nil {
		t.Fatalf("a.Connect: %v", err)
	}
	defer a.Shutdown()

	b := node.New("b", nil)
	if err := b.Connect(context.Background(), addr); err != nil {
		t.Fatalf("b.Connect: %v", err)
	}
	defer b.Shutdown()

	if err := a.AdvertiseService("add", "mvsim.AddRequest", "mvsim.AddReply", func(in []byte) ([]byte, error) {
		return []byte{in[0] + in[1]}, nil
	}); err != nil {
		t.Fatalf("AdvertiseService: %v", err)
	}

	time.Sleep(20 * time.Millisecond) // let directory + advertise settle

	reply, err := b.Call("add", []byte{2, 3})
	if err != nil {
		t.Fatalf("Call(add): %v", err)
	}
	if len(reply) != 1 || reply[0] != 5 {
		t.Errorf("Call(add) = %v, want [5]", reply)
	}

	if _, err := b.Call("mul", []byte{2, 3}); err == nil {
		t.Error("Call of an unknown service should fail")
	}

	// a must still be able to serve "add" after handling the unknown call
	reply2, err := b.Call("add", []byte{10, 20})
	if err != nil {
		t.Fatalf("second Call(add): %v", err)
	}
	if reply2[0] != 30 {
		t.Errorf("second Call(add) = %v, want [30]", reply2)
	}
}
