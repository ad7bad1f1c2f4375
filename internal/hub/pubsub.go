package hub

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"
)

var localPubSubMutex sync.RWMutex
var localPubSub = make(map[string][]int64)

func unsubscribeLocal(channel string, sessionID int64) {
	sessionIDs := localPubSub[channel]

	// this won't run in case channel doesn't exist since length will be 0
	for i := range sessionIDs {
		if sessionIDs[i] == sessionID {
			sessionIDs[i] = sessionIDs[len(sessionIDs)-1]
			localPubSub[channel] = sessionIDs[:len(sessionIDs)-1]
			break
		}
	}

	// delete channel from map if no user is subscribed to it
	if len(localPubSub[channel]) == 0 {
		delete(localPubSub, channel)
	}
}

func unsubscribeFromAllLocal(sessionID int64) {
	localPubSubMutex.Lock()
	defer localPubSubMutex.Unlock()

	for key := range localPubSub {
		unsubscribeLocal(key, sessionID)
	}
}

// Subscribe points a session at a server or channel feed, dropping its
// previous subscription of the same type. Server list subscriptions stack
// since all of a user's servers stay in view at once.
func Subscribe(channel int64, channelType string, sessionID int64) error {
	client, exists := GetClient(sessionID)
	if !exists {
		return fmt.Errorf("session ID [%d] tried to subscribe to [%s:%d] but the session isn't connected to hub", sessionID, channelType, channel)
	}

	client.mutex.Lock()
	defer client.mutex.Unlock()

	if selfContained {
		localPubSubMutex.Lock()
		defer localPubSubMutex.Unlock()
	}

	unsub := func(oldKey string) error {
		if selfContained {
			unsubscribeLocal(oldKey, sessionID)
			return nil
		}
		return client.PubSub.Unsubscribe(client.Ctx, oldKey)
	}

	switch channelType {
	case ChannelTypeChannel:
		err := unsub(fmt.Sprintf("%s:%d", channelType, client.CurrentChannelID))
		if err != nil {
			return err
		}
		client.CurrentChannelID = channel
	case ChannelTypeServer:
		err := unsub(fmt.Sprintf("%s:%d", channelType, client.CurrentServerID))
		if err != nil {
			return err
		}
		client.CurrentServerID = channel
	case ChannelTypeServerList:
	default:
		return fmt.Errorf("unknown channel type [%s]", channelType)
	}

	newKey := fmt.Sprintf("%s:%d", channelType, channel)

	if selfContained {
		// refetching the same feed must not double the subscription, one
		// session gets each event once
		for _, subscribed := range localPubSub[newKey] {
			if subscribed == sessionID {
				return nil
			}
		}
		localPubSub[newKey] = append(localPubSub[newKey], sessionID)
		return nil
	}

	// redis subscriptions are a set, resubscribing is a no-op there
	return client.PubSub.Subscribe(client.Ctx, newKey)
}

// Emit publishes an event to everyone subscribed to the given feed.
func Emit(eventType string, channelType string, message any, channel int64) error {
	key := fmt.Sprintf("%s:%d", channelType, channel)

	jsonBytes, err := json.Marshal(message)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.Grow(len(eventType) + 1 + len(jsonBytes))
	buf.WriteString(eventType)
	buf.WriteByte('\n')
	buf.Write(jsonBytes)

	sugar.Debugf("Emitting %s to channel %s", eventType, key)

	if selfContained {
		localPubSubMutex.RLock()
		defer localPubSubMutex.RUnlock()

		for _, sessionID := range localPubSub[key] {
			client, exists := GetClient(sessionID)
			if !exists {
				sugar.Warnf("Session ID %d is supposed to be available", sessionID)
				continue
			}

			select {
			case client.WsChannel <- buf.String():
			default:
				sugar.Warnf("Dropping event for slow session ID %d", sessionID)
			}
		}

		return nil
	}

	return redisClient.Publish(redisCtx, key, buf.String()).Err()
}
