package chatproxy

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lulab/website-backend/lib/mycookie"
	"github.com/lulab/website-backend/lib/myerrors"
	"github.com/lulab/website-backend/lib/mylog"
	"github.com/lulab/website-backend/lib/myuuid"
)

type service struct {
	botID      string
	chatCaller ChatCaller
	uuider     myuuid.UUIDer
	logger     mylog.Logger
}

func newService(botID string, chatCaller ChatCaller, uuider myuuid.UUIDer) *service {
	return &service{
		botID:      botID,
		chatCaller: chatCaller,
		uuider:     uuider,
		logger:     mylog.New("chatproxy"),
	}
}

// getConfig hands the widget what it needs to boot without ever exposing a
// provider credential to the browser.
func (s *service) getConfig(c context.Context) (configResponse, error) {
	if s.botID == "" {
		return configResponse{}, myerrors.NewInternalError(fmt.Errorf("bot-id not configured"))
	}

	return configResponse{
		Success: true,
		Config: widgetConfig{
			BotID:           s.botID,
			TokenEndpoint:   "/api/coze-token",
			RefreshEndpoint: "/api/coze-refresh",
			LogoutEndpoint:  "/api/coze-logout",
		},
	}, nil
}

// chat forwards one user message to the bot on behalf of the session held in
// the access-token cookie.
func (s *service) chat(c context.Context, jar mycookie.Jar, payload chatPayload) (chatResponse, error) {
	if s.botID == "" {
		return chatResponse{}, myerrors.NewInternalError(fmt.Errorf("bot-id not configured"))
	}

	if payload.Message == "" {
		return chatResponse{}, myerrors.NewInvalidInputErrorf("message is required")
	}

	accessToken, exists := jar.Get(accessTokenCookieName)
	if !exists || accessToken == "" {
		return chatResponse{}, myerrors.NewNotAuthenticatedError(fmt.Errorf("not authenticated"))
	}

	conversationID := payload.ConversationID
	if conversationID == "" {
		conversationID = s.uuider.Create()
	}

	s.logger.Log(c, conversationID, mylog.SeverityInfo, "Forward chat message on conversation %s", conversationID)

	data, err := s.chatCaller.Chat(c, ChatRequest{
		AccessToken:    accessToken,
		BotID:          s.botID,
		ConversationID: conversationID,
		UserID:         s.uuider.Create(),
		Message:        payload.Message,
	})
	if err != nil {
		return chatResponse{}, myerrors.NewInternalError(fmt.Errorf("chat request failed: %s", err))
	}

	return chatResponse{
		Success: true,
		Data:    json.RawMessage(data),
	}, nil
}
