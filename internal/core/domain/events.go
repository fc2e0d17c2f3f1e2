package domain

import "encoding/json"

type EventKind string

const (
	KindMessage EventKind = "message"
	KindLike    EventKind = "like"
	KindComment EventKind = "comment"
	KindTag     EventKind = "tag"
	KindFollow  EventKind = "follow"
	KindBlock   EventKind = "block"
)

// Event is the closed set of routable occurrences. Recipient returns the
// user the event must reach; an empty recipient marks the event malformed.
// Body is the payload forwarded verbatim to the transport or the fallback
// path.
type Event interface {
	Kind() EventKind
	Recipient() string
	Body() json.RawMessage
}

// UserRef is the nested user reference social payloads carry.
type UserRef struct {
	ID string `json:"_id"`
}

// MessageEvent is a direct message addressed to a single receiver. SenderID
// is lifted out of the payload so the router can enrich it with the sender's
// display name.
type MessageEvent struct {
	ReceiverID string
	SenderID   string
	Payload    json.RawMessage
}

func (e MessageEvent) Kind() EventKind       { return KindMessage }
func (e MessageEvent) Recipient() string     { return e.ReceiverID }
func (e MessageEvent) Body() json.RawMessage { return e.Payload }

type LikeEvent struct {
	LikedUser UserRef
	Payload   json.RawMessage
}

func (e LikeEvent) Kind() EventKind       { return KindLike }
func (e LikeEvent) Recipient() string     { return e.LikedUser.ID }
func (e LikeEvent) Body() json.RawMessage { return e.Payload }

type CommentEvent struct {
	LikedUser UserRef
	Payload   json.RawMessage
}

func (e CommentEvent) Kind() EventKind       { return KindComment }
func (e CommentEvent) Recipient() string     { return e.LikedUser.ID }
func (e CommentEvent) Body() json.RawMessage { return e.Payload }

// TagEvent is one recipient's slice of a multi-recipient tag action. It is
// like-shaped on the wire and delivered over the like-notification signal.
type TagEvent struct {
	LikedUser UserRef
	Payload   json.RawMessage
}

func (e TagEvent) Kind() EventKind       { return KindTag }
func (e TagEvent) Recipient() string     { return e.LikedUser.ID }
func (e TagEvent) Body() json.RawMessage { return e.Payload }

type FollowEvent struct {
	FollowedUser UserRef
	Payload      json.RawMessage
}

func (e FollowEvent) Kind() EventKind       { return KindFollow }
func (e FollowEvent) Recipient() string     { return e.FollowedUser.ID }
func (e FollowEvent) Body() json.RawMessage { return e.Payload }

type BlockEvent struct {
	UserID  string
	Payload json.RawMessage
}

func (e BlockEvent) Kind() EventKind       { return KindBlock }
func (e BlockEvent) Recipient() string     { return e.UserID }
func (e BlockEvent) Body() json.RawMessage { return e.Payload }

func DecodeMessage(data json.RawMessage) (MessageEvent, error) {
	var in struct {
		ReceiverID string          `json:"receiverId"`
		Message    json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return MessageEvent{}, err
	}
	var body struct {
		SenderID string `json:"senderId"`
	}
	// Sender is optional here; enrichment degrades without it.
	_ = json.Unmarshal(in.Message, &body)
	return MessageEvent{
		ReceiverID: in.ReceiverID,
		SenderID:   body.SenderID,
		Payload:    in.Message,
	}, nil
}

func DecodeLike(data json.RawMessage) (LikeEvent, error) {
	var in struct {
		LikedUser UserRef `json:"likedUser"`
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return LikeEvent{}, err
	}
	return LikeEvent{LikedUser: in.LikedUser, Payload: data}, nil
}

func DecodeComment(data json.RawMessage) (CommentEvent, error) {
	var in struct {
		LikedUser UserRef `json:"likedUser"`
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return CommentEvent{}, err
	}
	return CommentEvent{LikedUser: in.LikedUser, Payload: data}, nil
}

func DecodeFollow(data json.RawMessage) (FollowEvent, error) {
	var in struct {
		FollowedUser UserRef `json:"followedUser"`
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return FollowEvent{}, err
	}
	return FollowEvent{FollowedUser: in.FollowedUser, Payload: data}, nil
}

// DecodeTags splits a batched tag action into one event per tagged user.
// A malformed item never takes its siblings down: it is skipped and counted,
// and the rest of the batch decodes. The error covers only a non-array
// payload.
func DecodeTags(data json.RawMessage) ([]TagEvent, int, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, 0, err
	}
	events := make([]TagEvent, 0, len(items))
	skipped := 0
	for _, item := range items {
		var in struct {
			LikedUser UserRef `json:"likedUser"`
		}
		if err := json.Unmarshal(item, &in); err != nil {
			skipped++
			continue
		}
		events = append(events, TagEvent{LikedUser: in.LikedUser, Payload: item})
	}
	return events, skipped, nil
}

func DecodeBlock(data json.RawMessage) (BlockEvent, error) {
	var in struct {
		UserID string          `json:"userId"`
		Block  json.RawMessage `json:"block"`
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return BlockEvent{}, err
	}
	return BlockEvent{UserID: in.UserID, Payload: in.Block}, nil
}
