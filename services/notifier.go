package services

import (
	"context"
	"log"

	pubnub "github.com/pubnub/go"
)

// PubNubNotifier pushes toast notifications to the user's realtime channel.
// Fire-and-forget: publish failures are logged and dropped, never surfaced to
// the booking flow.
type PubNubNotifier struct {
	pubnub *pubnub.PubNub
}

func NewPubNubNotifier(pn *pubnub.PubNub) *PubNubNotifier {
	return &PubNubNotifier{pubnub: pn}
}

func (n *PubNubNotifier) Notify(ctx context.Context, userID, title, message, severity string) {
	if n.pubnub == nil {
		return
	}

	channel := "user-" + userID
	_, _, err := n.pubnub.Publish().
		Channel(channel).
		Message(map[string]any{
			"type":     "toast",
			"title":    title,
			"message":  message,
			"severity": severity,
		}).
		Execute()
	if err != nil {
		log.Printf("Error publishing notification to %s: %v", channel, err)
	}
}
