// ABOUTME: Chat turn operation and the paired history wire format
// ABOUTME: Encodes history as [userText, botTextOrNull] tuples per the API contract

package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Turn is one (user, bot) exchange in the chat history wire format. On
// the wire it is a two-element JSON array [userText, botTextOrNull]; the
// final, unanswered turn carries a nil Bot.
type Turn struct {
	User string
	Bot  *string
}

// MarshalJSON encodes the turn as the two-element array the chat
// endpoint expects.
func (t Turn) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]*string{&t.User, t.Bot})
}

// UnmarshalJSON decodes the two-element array form.
func (t *Turn) UnmarshalJSON(data []byte) error {
	var pair []*string
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("chat turn must have 2 elements, got %d", len(pair))
	}
	if pair[0] == nil {
		return fmt.Errorf("chat turn user text must not be null")
	}
	t.User = *pair[0]
	t.Bot = pair[1]
	return nil
}

// SendChatTurn posts the accumulated history (the unanswered turn last)
// and returns the bot's reply text.
func (c *Client) SendChatTurn(ctx context.Context, name, organization string, history []Turn) (string, error) {
	body := struct {
		ChatHistory  []Turn `json:"chat_history"`
		Organization string `json:"organization"`
	}{ChatHistory: history, Organization: organization}

	var resp struct {
		Response string `json:"response"`
	}
	path := "/api/chat/" + url.PathEscape(name)
	if err := c.do(ctx, http.MethodPost, path, nil, body, http.StatusOK, &resp); err != nil {
		return "", err
	}
	return resp.Response, nil
}
