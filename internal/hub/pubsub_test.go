package hub

import (
	"strings"
	"testing"

	"go.uber.org/zap"
)

func testClient(t *testing.T, sessionID int64) *Client {
	t.Helper()

	Setup(zap.NewNop().Sugar(), nil, true)

	client := &Client{
		UserID:    1,
		SessionID: sessionID,
		WsChannel: make(chan string, 8),
	}
	setClient(sessionID, client)
	t.Cleanup(func() {
		deleteClient(sessionID)
		unsubscribeFromAllLocal(sessionID)
	})

	return client
}

func TestSubscribeTwiceDeliversOnce(t *testing.T) {
	client := testClient(t, 1)

	// a client refetches its server list on every reconnect and reload
	for i := 0; i < 3; i++ {
		err := Subscribe(7, ChannelTypeServerList, client.SessionID)
		if err != nil {
			t.Fatal(err)
		}
	}

	err := Emit(ServerModified, ChannelTypeServerList, "payload", 7)
	if err != nil {
		t.Fatal(err)
	}

	if got := len(client.WsChannel); got != 1 {
		t.Errorf("Client received %d events after one Emit, want 1", got)
	}
}

func TestSubscribeRetargetsChannelFeed(t *testing.T) {
	client := testClient(t, 2)

	err := Subscribe(10, ChannelTypeChannel, client.SessionID)
	if err != nil {
		t.Fatal(err)
	}

	// moving to another channel drops the old feed
	err = Subscribe(11, ChannelTypeChannel, client.SessionID)
	if err != nil {
		t.Fatal(err)
	}

	err = Emit(MessageCreated, ChannelTypeChannel, "old", 10)
	if err != nil {
		t.Fatal(err)
	}
	err = Emit(MessageCreated, ChannelTypeChannel, "new", 11)
	if err != nil {
		t.Fatal(err)
	}

	if got := len(client.WsChannel); got != 1 {
		t.Fatalf("Client received %d events, want only the current channel's", got)
	}

	payload := <-client.WsChannel
	if !strings.HasPrefix(payload, MessageCreated+"\n") {
		t.Errorf("Payload %q doesn't start with the event name line", payload)
	}
	if !strings.Contains(payload, "new") {
		t.Errorf("Payload %q is not the current channel's event", payload)
	}
}
