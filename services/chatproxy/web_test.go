package chatproxy

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/lulab/website-backend/lib/myuuid"
)

func TestForeignOriginRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _, _ := setup(t, ctrl)

	request := httptest.NewRequest(http.MethodPost, "/api/coze-proxy",
		strings.NewReader(`{"action":"getConfig"}`))
	request.Header.Set("Origin", "https://evil.example")
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	assert.Equal(t, 403, response.Code)
}

func TestGetConfig(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _, _ := setup(t, ctrl)

	request := httptest.NewRequest(http.MethodPost, "/api/coze-proxy",
		strings.NewReader(`{"action":"getConfig"}`))
	request.Header.Set("Origin", "https://www.lulabs.org")
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	assert.Equal(t, 200, response.Code)
	assert.Contains(t, response.Body.String(), `"botId": "bot-1"`)
	assert.Contains(t, response.Body.String(), `"tokenEndpoint": "/api/coze-token"`)
}

func TestGetConfigWithoutBotID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router := mux.NewRouter()
	uuider := myuuid.NewMockUUIDer(ctrl)
	chatCaller := NewMockChatCaller(ctrl)
	sut := NewService("", []string{"https://www.lulabs.org"}, false, chatCaller, uuider)
	err := sut.RegisterEndpoints(context.TODO(), router)
	assert.NoError(t, err)

	request := httptest.NewRequest(http.MethodPost, "/api/coze-proxy",
		strings.NewReader(`{"action":"getConfig"}`))
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	assert.Equal(t, 500, response.Code)
}

func TestChatWithoutMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _, _ := setup(t, ctrl)

	request := httptest.NewRequest(http.MethodPost, "/api/coze-proxy",
		strings.NewReader(`{"action":"chat","payload":{}}`))
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	assert.Equal(t, 400, response.Code)
}

func TestChatWithoutSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _, _ := setup(t, ctrl)

	request := httptest.NewRequest(http.MethodPost, "/api/coze-proxy",
		strings.NewReader(`{"action":"chat","payload":{"message":"hello"}}`))
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	assert.Equal(t, 401, response.Code)
}

func TestChatForwardsMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, uuider, chatCaller := setup(t, ctrl)

	// given
	uuider.EXPECT().Create().Return("user-1")
	chatCaller.EXPECT().Chat(gomock.Any(), ChatRequest{
		AccessToken:    "at-1",
		BotID:          "bot-1",
		ConversationID: "conv-1",
		UserID:         "user-1",
		Message:        "hello",
	}).Return(json.RawMessage(`{"messages":[{"type":"answer","content":"hi"}]}`), nil)

	// when
	request := httptest.NewRequest(http.MethodPost, "/api/coze-proxy",
		strings.NewReader(`{"action":"chat","payload":{"message":"hello","conversationId":"conv-1"}}`))
	request.AddCookie(&http.Cookie{Name: accessTokenCookieName, Value: "at-1"})
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	// then
	assert.Equal(t, 200, response.Code)
	assert.Contains(t, response.Body.String(), `"success": true`)
	assert.Contains(t, response.Body.String(), `"content": "hi"`)
}

func TestChatUpstreamFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, uuider, chatCaller := setup(t, ctrl)

	// given: no conversation-id in the payload, so one is minted
	uuider.EXPECT().Create().Return("conv-1")
	uuider.EXPECT().Create().Return("user-1")
	chatCaller.EXPECT().Chat(gomock.Any(), gomock.Any()).Return(nil, assert.AnError)

	// when
	request := httptest.NewRequest(http.MethodPost, "/api/coze-proxy",
		strings.NewReader(`{"action":"chat","payload":{"message":"hello"}}`))
	request.AddCookie(&http.Cookie{Name: accessTokenCookieName, Value: "at-1"})
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	// then
	assert.Equal(t, 500, response.Code)
}

func TestInvalidAction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _, _ := setup(t, ctrl)

	request := httptest.NewRequest(http.MethodPost, "/api/coze-proxy",
		strings.NewReader(`{"action":"selfDestruct"}`))
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	assert.Equal(t, 400, response.Code)
}

func TestMethodGuard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _, _ := setup(t, ctrl)

	request := httptest.NewRequest(http.MethodGet, "/api/coze-proxy", nil)
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	assert.Equal(t, 405, response.Code)
}

func setup(t *testing.T, ctrl *gomock.Controller) (*mux.Router, *myuuid.MockUUIDer, *MockChatCaller) {
	router := mux.NewRouter()
	uuider := myuuid.NewMockUUIDer(ctrl)
	chatCaller := NewMockChatCaller(ctrl)
	sut := NewService("bot-1", []string{"http://localhost:8080", "https://www.lulabs.org"}, false, chatCaller, uuider)

	err := sut.RegisterEndpoints(context.TODO(), router)
	assert.NoError(t, err)

	return router, uuider, chatCaller
}
