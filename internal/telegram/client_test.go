package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessage(t *testing.T) {
	var gotPath string
	var gotPayload map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		w.Write([]byte(`{"ok":true,"result":{}}`)) //nolint:errcheck,gosec // test server
	}))
	defer srv.Close()

	client := NewClientWithBase("test-token", srv.URL)

	err := client.SendMessage(context.Background(), 42, "hello *world*")

	require.NoError(t, err)
	assert.Equal(t, "/bottest-token/sendMessage", gotPath)
	assert.Equal(t, float64(42), gotPayload["chat_id"])
	assert.Equal(t, "hello *world*", gotPayload["text"])
	assert.Equal(t, "Markdown", gotPayload["parse_mode"])
}

func TestSendMessage_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok":false,"description":"chat not found"}`)) //nolint:errcheck,gosec // test server
	}))
	defer srv.Close()

	client := NewClientWithBase("test-token", srv.URL)

	err := client.SendMessage(context.Background(), 42, "hello")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestSendPhoto(t *testing.T) {
	photo := []byte{0x89, 0x50, 0x4e, 0x47}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "42", r.FormValue("chat_id"))
		assert.Equal(t, "a cat", r.FormValue("caption"))

		file, _, err := r.FormFile("photo")
		require.NoError(t, err)
		defer file.Close()

		buf := make([]byte, len(photo))
		_, err = file.Read(buf)
		require.NoError(t, err)
		assert.Equal(t, photo, buf)

		w.Write([]byte(`{"ok":true,"result":{}}`)) //nolint:errcheck,gosec // test server
	}))
	defer srv.Close()

	client := NewClientWithBase("test-token", srv.URL)

	require.NoError(t, client.SendPhoto(context.Background(), 42, photo, "a cat"))
}

func TestSetMyCommands(t *testing.T) {
	var gotPayload struct {
		Commands []BotCommand `json:"commands"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		w.Write([]byte(`{"ok":true,"result":true}`)) //nolint:errcheck,gosec // test server
	}))
	defer srv.Close()

	client := NewClientWithBase("test-token", srv.URL)

	cmds := []BotCommand{{Command: "help", Description: "Show help"}}
	require.NoError(t, client.SetMyCommands(context.Background(), cmds))
	assert.Equal(t, cmds, gotPayload.Commands)
}

func TestUpdateDecoding(t *testing.T) {
	raw := `{
		"update_id": 7,
		"message": {
			"message_id": 1,
			"from": {"id": 101, "is_bot": false, "first_name": "Ada", "username": "ada"},
			"chat": {"id": -500, "type": "group"},
			"text": "/image a cat"
		}
	}`

	var update Update
	require.NoError(t, json.Unmarshal([]byte(raw), &update))

	assert.Equal(t, int64(7), update.UpdateID)
	require.NotNil(t, update.Message)
	assert.Equal(t, int64(101), update.Message.From.ID)
	assert.Equal(t, int64(-500), update.Message.Chat.ID)
	assert.Equal(t, "/image a cat", update.Message.Text)
}
