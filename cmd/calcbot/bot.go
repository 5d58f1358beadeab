package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"Formulary/internal/calc"
	"Formulary/internal/formula"
)

// Telegram caps message text at 4096 characters.
const maxMessage = 4096

const (
	exampleCommand = "/pythagorean a=3 b=4"
	unitCommand    = "/electrical_power voltage=5@mV current=2"

	helpText = "Send /list to see the calculators, then /<calculator> name=value ...\n" +
		"Example: " + exampleCommand + "\n" +
		"Units follow @, e.g. " + unitCommand
)

type Update struct {
	UpdateID int      `json:"update_id"`
	Message  *Message `json:"message"`
}

type Message struct {
	MessageID int    `json:"message_id"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text"`
}

type Chat struct {
	ID int64 `json:"id"`
}

type UpdateResponse struct {
	OK          bool     `json:"ok"`
	Description string   `json:"description"`
	Result      []Update `json:"result"`
}

type Bot struct {
	api      string
	token    string
	client   *http.Client
	registry *calc.Registry
	log      *zap.Logger
	// PollTimeout is the long-poll wait passed to getUpdates.
	PollTimeout time.Duration
	RetryDelay  time.Duration
}

func NewBot(api, token string, reg *calc.Registry, log *zap.Logger) *Bot {
	return &Bot{
		api:         strings.TrimRight(api, "/"),
		token:       token,
		client:      &http.Client{Timeout: 60 * time.Second},
		registry:    reg,
		log:         log,
		PollTimeout: 20 * time.Second,
		RetryDelay:  2 * time.Second,
	}
}

// Run long-polls for updates until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	offset := 0
	for {
		updates, err := b.getUpdates(ctx, offset)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			b.log.Warn("getUpdates failed", zap.Error(err))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(b.RetryDelay):
			}
			continue
		}
		for _, u := range updates {
			offset = u.UpdateID + 1
			if u.Message == nil || u.Message.Text == "" {
				continue
			}
			reply := b.Reply(u.Message.Text)
			if reply == "" {
				continue
			}
			if err := b.sendMessage(ctx, u.Message.Chat.ID, reply); err != nil {
				b.log.Warn("sendMessage failed", zap.Int64("chat", u.Message.Chat.ID), zap.Error(err))
			}
		}
	}
}

// Reply answers one chat message. Non-command text gets no reply.
func (b *Bot) Reply(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return ""
	}
	command, _, _ := strings.Cut(strings.TrimPrefix(fields[0], "/"), "@")
	command = strings.ToLower(command)

	switch command {
	case "start", "help":
		return helpText
	case "list":
		var sb strings.Builder
		for _, d := range b.registry.All() {
			fmt.Fprintf(&sb, "/%s  %s\n", strings.ReplaceAll(d.Slug, "-", "_"), d.Title)
		}
		return sb.String()
	}

	// Telegram commands cannot contain '-'.
	slug := strings.ReplaceAll(command, "_", "-")
	d, ok := b.registry.Lookup(slug)
	if !ok {
		return fmt.Sprintf("Unknown calculator %q. Send /list.", command)
	}
	if len(fields) == 1 {
		return "Usage: /" + calc.Usage(d)
	}
	req, err := calc.ParseArgs(d, fields[1:])
	if err != nil {
		return errorText(err)
	}
	res, err := b.registry.Solve(slug, req)
	if err != nil {
		return errorText(err)
	}
	return truncate(calc.Text(d, res))
}

func errorText(err error) string {
	var fe *formula.Error
	if errors.As(err, &fe) {
		return "Error: " + fe.Message
	}
	return "Error: " + err.Error()
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxMessage {
		return s
	}
	return string(r[:maxMessage-1]) + "…"
}

func (b *Bot) method(name string) string {
	return fmt.Sprintf("%s/bot%s/%s", b.api, b.token, name)
}

func (b *Bot) getUpdates(ctx context.Context, offset int) ([]Update, error) {
	q := url.Values{}
	q.Set("timeout", fmt.Sprint(int(b.PollTimeout.Seconds())))
	q.Set("offset", fmt.Sprint(offset))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.method("getUpdates")+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	res, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	var out UpdateResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, err
	}
	if !out.OK {
		return nil, fmt.Errorf("telegram: %s", out.Description)
	}
	return out.Result, nil
}

func (b *Bot) sendMessage(ctx context.Context, chatID int64, text string) error {
	payload, err := json.Marshal(map[string]any{"chat_id": chatID, "text": text})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.method("sendMessage"), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := b.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram: sendMessage status %d", res.StatusCode)
	}
	return nil
}
