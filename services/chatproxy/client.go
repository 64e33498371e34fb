package chatproxy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	httpClientTimeout = 5 * time.Second
)

type ChatRequest struct {
	AccessToken    string
	BotID          string
	ConversationID string
	UserID         string
	Message        string
}

//go:generate mockgen -source=client.go -package chatproxy -destination client_mock.go ChatCaller
type ChatCaller interface {
	Chat(c context.Context, req ChatRequest) (json.RawMessage, error)
}

type chatCaller struct {
	chatURL string
	client  *http.Client
}

func NewChatCaller(apiBase string) *chatCaller {
	return &chatCaller{
		chatURL: apiBase + "/open_api/v2/chat",
		client: &http.Client{
			Timeout: httpClientTimeout,
		},
	}
}

func (cc chatCaller) Chat(c context.Context, req ChatRequest) (json.RawMessage, error) {
	requestBody, err := json.Marshal(map[string]interface{}{
		"conversation_id": req.ConversationID,
		"bot_id":          req.BotID,
		"user":            req.UserID,
		"query":           req.Message,
		"chat_history":    []interface{}{},
		"stream":          false,
	})
	if err != nil {
		return nil, fmt.Errorf("error composing chat request: %s", err)
	}

	httpReq, err := http.NewRequestWithContext(c, http.MethodPost, cc.chatURL, bytes.NewReader(requestBody))
	if err != nil {
		return nil, fmt.Errorf("error creating http request for %s: %s", cc.chatURL, err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+req.AccessToken)
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := cc.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error calling %s: %s", cc.chatURL, err)
	}
	defer httpResp.Body.Close()

	respPayload, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading chat response: %s", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error calling chat-endpoint: status %d (%s)", httpResp.StatusCode, string(respPayload))
	}

	return respPayload, nil
}
