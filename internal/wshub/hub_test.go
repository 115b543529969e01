package wshub

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

func TestRegisterAndBroadcast(t *testing.T) {
	h := NewHub()

	c1 := &Client{ID: "p1", Send: make(chan []byte, 16)}
	c2 := &Client{ID: "s1", Spectator: true, Send: make(chan []byte, 16)}
	c3 := &Client{ID: "s2", Spectator: true, Send: make(chan []byte, 16)}

	h.Register(c1)
	h.Register(c2)
	h.Register(c3)

	msg := ServerMessage{Type: "score", Data: 120}
	h.BroadcastExcept("p1", msg)

	// s1 and s2 should receive the message, p1 should not
	select {
	case data := <-c2.Send:
		var got struct {
			Type string `json:"t"`
			Data int    `json:"d"`
		}
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got.Type != "score" || got.Data != 120 {
			t.Fatalf("unexpected message: %+v", got)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("s1 did not receive message")
	}

	select {
	case <-c3.Send:
		// expected
	case <-time.After(100 * time.Millisecond):
		t.Fatal("s2 did not receive message")
	}

	select {
	case <-c1.Send:
		t.Fatal("p1 should not receive its own message")
	default:
		// expected
	}
}

func TestBroadcastReachesEveryone(t *testing.T) {
	h := NewHub()
	c1 := NewClient("p1", false, nil)
	c2 := NewClient("s1", true, nil)
	h.Register(c1)
	h.Register(c2)

	h.Broadcast(ServerMessage{Type: "wave", Data: 2})

	for _, c := range []*Client{c1, c2} {
		select {
		case <-c.Send:
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("%s did not receive message", c.ID)
		}
	}
	if h.Count() != 2 {
		t.Errorf("Count() = %d, want 2", h.Count())
	}
}

func TestUnregisterBroadcastsLeave(t *testing.T) {
	h := NewHub()

	c1 := &Client{ID: "s1", Send: make(chan []byte, 16)}
	c2 := &Client{ID: "p1", Send: make(chan []byte, 16)}

	h.Register(c1)
	h.Register(c2)

	h.Unregister("s1")

	// p1 should receive a leave message
	select {
	case data := <-c2.Send:
		var got ServerMessage
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got.Type != "leave" || got.ID != "s1" {
			t.Fatalf("expected leave for s1, got: %+v", got)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("p1 did not receive leave message")
	}

	// s1's Send channel should be closed
	_, ok := <-c1.Send
	if ok {
		t.Fatal("s1.Send should be closed")
	}
}

func TestUnregisterNonexistent(t *testing.T) {
	h := NewHub()
	// Should not panic
	h.Unregister("nonexistent")
}

func TestBroadcastDropsWhenFull(t *testing.T) {
	h := NewHub()

	// Channel with capacity 1
	c := &Client{ID: "p1", Send: make(chan []byte, 1)}
	h.Register(c)

	// Fill the channel
	c.Send <- []byte("filler")

	// This should not block, the message is dropped
	h.BroadcastExcept("other", ServerMessage{Type: "score", Data: 1})

	data := <-c.Send
	if string(data) != "filler" {
		t.Fatalf("expected filler, got: %s", data)
	}

	select {
	case <-c.Send:
		t.Fatal("should be empty after draining filler")
	default:
		// expected
	}
}

func TestCloseRejectsRegister(t *testing.T) {
	h := NewHub()
	c := NewClient("p1", false, nil)
	h.Register(c)
	h.Close()

	if _, ok := <-c.Send; ok {
		t.Fatal("Send should be closed after Close")
	}
	if h.Register(NewClient("p2", false, nil)) {
		t.Error("Register after Close should fail")
	}
	if h.Count() != 0 {
		t.Errorf("Count() = %d, want 0", h.Count())
	}
	// Second close and unregister should not panic
	h.Close()
	h.Unregister("p1")
}

func TestBroadcastMixedFormats(t *testing.T) {
	h := NewHub()
	text := NewClient("p1", false, nil)
	bin := NewClient("s1", true, nil)
	bin.Format = FormatMsgpack
	h.Register(text)
	h.Register(bin)

	h.Broadcast(ServerMessage{Type: "lives", Data: 2})

	data := <-text.Send
	if data[0] != '{' {
		t.Errorf("json client got %q", data)
	}

	data = <-bin.Send
	var got struct {
		Type string `msgpack:"t"`
		Data int    `msgpack:"d"`
	}
	if err := msgpack.Unmarshal(data, &got); err != nil {
		t.Fatalf("msgpack unmarshal: %v", err)
	}
	if got.Type != "lives" || got.Data != 2 {
		t.Errorf("msgpack message = %+v", got)
	}
}

func TestDecodeClientMessage(t *testing.T) {
	msg, err := DecodeClientMessage(websocket.MessageText, []byte(`{"t":"hit","id":7}`))
	if err != nil || msg.Type != "hit" || msg.ID != 7 {
		t.Errorf("json decode = %+v, %v", msg, err)
	}

	raw, _ := msgpack.Marshal(map[string]any{"t": "collect", "id": 3})
	msg, err = DecodeClientMessage(websocket.MessageBinary, raw)
	if err != nil || msg.Type != "collect" || msg.ID != 3 {
		t.Errorf("msgpack decode = %+v, %v", msg, err)
	}

	if _, err := DecodeClientMessage(websocket.MessageText, []byte("{")); err == nil {
		t.Error("expected error for truncated json")
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat("msgpack") != FormatMsgpack {
		t.Error("msgpack not recognised")
	}
	if ParseFormat("") != FormatJSON || ParseFormat("xml") != FormatJSON {
		t.Error("unknown formats should fall back to JSON")
	}
}
