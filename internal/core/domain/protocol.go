package domain

import "encoding/json"

// Signals pushed to clients.
const (
	SignalUserOnline          = "getUser"
	SignalSnapshot            = "getUsers"
	SignalUserRemoved         = "removeUser"
	SignalMessageNotification = "getMessageNotification"
	SignalMessage             = "getMessage"
	SignalFollowNotification  = "getFollowNotification"
	SignalLikeNotification    = "getLikeNotification"
	SignalCommentNotification = "getCommentNotification"
	SignalBlockNotification   = "getBlockNotification"
)

// Events received from clients.
const (
	EventAnnounce         = "getUserId"
	EventSendMessage      = "sendMessage"
	EventSendFollow       = "sendFollow"
	EventSendLike         = "sendLike"
	EventSendTags         = "sendTags"
	EventSendComment      = "sendComment"
	EventSendBlock        = "sendBlockNotification"
	EventManualDisconnect = "manualDisconnect"
)

// Envelope is the wire frame in both directions: a signal/event name plus
// its payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// EncodeSignal frames an outbound signal for the transport.
func EncodeSignal(event string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Data: data})
}

// PendingNotification is the unit queued for the fallback dispatch worker
// when a recipient has no live connection.
type PendingNotification struct {
	RecipientID string          `json:"recipientId"`
	Payload     json.RawMessage `json:"payload"`
}
