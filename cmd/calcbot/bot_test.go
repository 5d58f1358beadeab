package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"Formulary/internal/calc"
)

func TestReply(t *testing.T) {
	b := NewBot("http://unused", "t", calc.Default, zaptest.NewLogger(t))

	assert.Empty(t, b.Reply("hello"))
	assert.Contains(t, b.Reply("/start"), "/list")
	assert.Contains(t, b.Reply("/list"), "/db_gain")
	assert.Contains(t, b.Reply("/gcf@FormularyBot 12 18"), ": 6\n")
	assert.Contains(t, b.Reply("/pythagorean a=3 b=4"), "Steps:")
	assert.Equal(t, "Usage: /lcm numbers...", b.Reply("/lcm"))
	assert.Contains(t, b.Reply("/nope 1"), `Unknown calculator "nope"`)
	assert.True(t, strings.HasPrefix(b.Reply("/diamond sum=1 product=5"), "Error: No real numbers"))
}

func TestHelpExamplesSolve(t *testing.T) {
	b := NewBot("http://unused", "t", calc.Default, zaptest.NewLogger(t))
	help := b.Reply("/help")
	for _, cmd := range []string{exampleCommand, unitCommand} {
		assert.Contains(t, help, cmd)
		reply := b.Reply(cmd)
		assert.Contains(t, reply, "Steps:", cmd)
		assert.NotContains(t, reply, "Unknown calculator", cmd)
	}
	assert.Contains(t, b.Reply(unitCommand), "0.01 W")
}

func TestRun(t *testing.T) {
	var (
		mu    sync.Mutex
		sent  []string
		polls int
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		switch {
		case strings.HasSuffix(r.URL.Path, "/getUpdates"):
			polls++
			resp := UpdateResponse{OK: true}
			if polls == 1 {
				assert.Equal(t, "0", r.URL.Query().Get("offset"))
				resp.Result = []Update{
					{UpdateID: 7, Message: &Message{Chat: Chat{ID: 1}, Text: "/lcm 4 6"}},
					{UpdateID: 8, Message: &Message{Chat: Chat{ID: 1}, Text: "just chatting"}},
				}
			} else {
				assert.Equal(t, "9", r.URL.Query().Get("offset"))
				cancel()
			}
			json.NewEncoder(w).Encode(resp)
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			assert.Equal(t, "/botsecret/sendMessage", r.URL.Path)
			var body struct {
				ChatID int64  `json:"chat_id"`
				Text   string `json:"text"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			sent = append(sent, body.Text)
		}
	}))
	defer srv.Close()

	b := NewBot(srv.URL, "secret", calc.Default, zaptest.NewLogger(t))
	b.RetryDelay = time.Millisecond
	err := b.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0], ": 12\n")
}
