package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/IlyaPlyusnin57/social-media-socket/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeMessageLiftsReceiverAndSender(t *testing.T) {
	data := json.RawMessage(`{"receiverId":"bob","message":{"senderId":"alice","text":"hey"}}`)

	ev, err := domain.DecodeMessage(data)
	require.NoError(t, err)
	assert.Equal(t, "bob", ev.Recipient())
	assert.Equal(t, "alice", ev.SenderID)
	assert.JSONEq(t, `{"senderId":"alice","text":"hey"}`, string(ev.Body()))
}

func TestDecodeMessageWithoutReceiverIsMalformed(t *testing.T) {
	ev, err := domain.DecodeMessage(json.RawMessage(`{"message":{"text":"hey"}}`))
	require.NoError(t, err)
	assert.Empty(t, ev.Recipient())
}

func TestDecodeFollowReadsNestedReference(t *testing.T) {
	data := json.RawMessage(`{"followedUser":{"_id":"bob","name":"Bob"},"follower":"alice"}`)

	ev, err := domain.DecodeFollow(data)
	require.NoError(t, err)
	assert.Equal(t, "bob", ev.Recipient())
	// payload forwarded verbatim, nested object and all
	assert.Equal(t, data, ev.Body())
}

func TestDecodeTagsSplitsBatchPerRecipient(t *testing.T) {
	data := json.RawMessage(`[
		{"likedUser":{"_id":"alice"},"postId":"p1"},
		{"likedUser":{"_id":"bob"},"postId":"p1"}
	]`)

	evs, skipped, err := domain.DecodeTags(data)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, evs, 2)
	assert.Equal(t, "alice", evs[0].Recipient())
	assert.Equal(t, "bob", evs[1].Recipient())
	assert.JSONEq(t, `{"likedUser":{"_id":"alice"},"postId":"p1"}`, string(evs[0].Body()))
}

func TestDecodeTagsSkipsMalformedItems(t *testing.T) {
	data := json.RawMessage(`[
		{"likedUser":{"_id":"alice"},"postId":"p1"},
		42,
		{"likedUser":{"_id":"carol"},"postId":"p1"}
	]`)

	evs, skipped, err := domain.DecodeTags(data)
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	require.Len(t, evs, 2)
	assert.Equal(t, "alice", evs[0].Recipient())
	assert.Equal(t, "carol", evs[1].Recipient())
}

func TestDecodeTagsRejectsNonArray(t *testing.T) {
	_, _, err := domain.DecodeTags(json.RawMessage(`{"likedUser":{"_id":"alice"}}`))
	assert.Error(t, err)
}

func TestDecodeBlockUnwrapsPayload(t *testing.T) {
	data := json.RawMessage(`{"userId":"bob","block":{"blockedBy":"alice"}}`)

	ev, err := domain.DecodeBlock(data)
	require.NoError(t, err)
	assert.Equal(t, "bob", ev.Recipient())
	assert.JSONEq(t, `{"blockedBy":"alice"}`, string(ev.Body()))
}

func TestEventKinds(t *testing.T) {
	assert.Equal(t, domain.KindMessage, domain.MessageEvent{}.Kind())
	assert.Equal(t, domain.KindLike, domain.LikeEvent{}.Kind())
	assert.Equal(t, domain.KindComment, domain.CommentEvent{}.Kind())
	assert.Equal(t, domain.KindTag, domain.TagEvent{}.Kind())
	assert.Equal(t, domain.KindFollow, domain.FollowEvent{}.Kind())
	assert.Equal(t, domain.KindBlock, domain.BlockEvent{}.Kind())
}
