package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/livekit/protocol/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testLKKey    = "APItestkey"
	testLKSecret = "testsecret-testsecret-testsecret"
)

type grantPayload struct {
	Token    string `json:"token"`
	RoomName string `json:"roomName"`
	Identity string `json:"identity"`
}

func issueGrant(t *testing.T, path string) grantPayload {
	t.Helper()
	r := newTestRouter()
	r.GET("/token", TokenHandler(testLKKey, testLKSecret))

	w := perform(t, r, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode(t, w)
	require.True(t, resp.Success)
	var payload grantPayload
	require.NoError(t, json.Unmarshal(resp.Data, &payload))
	return payload
}

func TestTokenHandlerEchoesRoomAndIdentity(t *testing.T) {
	payload := issueGrant(t, "/token?room=standup&identity=alice")

	assert.Equal(t, "standup", payload.RoomName)
	assert.Equal(t, "alice", payload.Identity)

	// The token is a verifiable LiveKit grant with the full capability set
	verifier, err := auth.ParseAPIToken(payload.Token)
	require.NoError(t, err)
	assert.Equal(t, testLKKey, verifier.APIKey())

	grants, err := verifier.Verify(testLKSecret)
	require.NoError(t, err)
	require.NotNil(t, grants.Video)
	assert.Equal(t, "alice", grants.Identity)
	assert.Equal(t, "standup", grants.Video.Room)
	assert.True(t, grants.Video.RoomJoin)
	assert.True(t, grants.Video.GetCanPublish())
	assert.True(t, grants.Video.GetCanSubscribe())
	assert.True(t, grants.Video.GetCanPublishData())
}

func TestTokenHandlerGeneratesRandomDefaults(t *testing.T) {
	payload := issueGrant(t, "/token")

	assert.True(t, strings.HasPrefix(payload.RoomName, "room-"))
	assert.Len(t, payload.RoomName, len("room-")+6)
	assert.True(t, strings.HasPrefix(payload.Identity, "identity-"))
	assert.Len(t, payload.Identity, len("identity-")+4)
	assert.NotEmpty(t, payload.Token)

	// Two calls yield different rooms
	other := issueGrant(t, "/token")
	assert.NotEqual(t, payload.RoomName, other.RoomName)
}
