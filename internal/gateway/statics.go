// ABOUTME: Static question/answer retrieval for the Q&A viewer
// ABOUTME: Decodes the [question, answer] pair array response

package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// QA is one pre-recorded question/answer pair. The wire form is a
// two-element JSON array [question, answer].
type QA struct {
	Question string
	Answer   string
}

// UnmarshalJSON decodes the two-element array form.
func (q *QA) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("static question must have 2 elements, got %d", len(pair))
	}
	q.Question = pair[0]
	q.Answer = pair[1]
	return nil
}

// MarshalJSON encodes the pair back to its array form.
func (q QA) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{q.Question, q.Answer})
}

// StaticQuestions fetches the pre-recorded Q&A pairs for a user.
func (c *Client) StaticQuestions(ctx context.Context, username string) ([]QA, error) {
	var pairs []QA
	path := "/api/admin/static-questions/" + url.PathEscape(username)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, http.StatusOK, &pairs); err != nil {
		return nil, err
	}
	return pairs, nil
}
