package chatproxy

import "encoding/json"

// accessTokenCookieName must stay in sync with the session cookie written by
// the cozeauth service.
const accessTokenCookieName = "coze_access_token"

type proxyRequest struct {
	Action  string      `json:"action"`
	Payload chatPayload `json:"payload"`
}

type chatPayload struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversationId"`
}

type widgetConfig struct {
	BotID           string `json:"botId"`
	TokenEndpoint   string `json:"tokenEndpoint"`
	RefreshEndpoint string `json:"refreshEndpoint"`
	LogoutEndpoint  string `json:"logoutEndpoint"`
}

type configResponse struct {
	Success bool         `json:"success"`
	Config  widgetConfig `json:"config"`
}

type chatResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}
