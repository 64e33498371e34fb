package content

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/lulab/website-backend/lib/mystore"
	"github.com/lulab/website-backend/lib/mytime"
)

func TestHomePageDefaultsToChinese(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := setup(t, ctrl)

	response := get(handler, "/", "")

	assert.Equal(t, 200, response.Code)
	assert.Contains(t, response.Body.String(), `lang="zh"`)
	assert.Contains(t, response.Body.String(), "陆向谦实验室")
	assert.Contains(t, response.Body.String(), "AI 探索训练营")
}

func TestHomePageNegotiatesEnglish(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := setup(t, ctrl)

	response := get(handler, "/", "en-US,en;q=0.9")

	assert.Equal(t, 200, response.Code)
	assert.Contains(t, response.Body.String(), `lang="en"`)
	assert.Contains(t, response.Body.String(), "AI Explorer Bootcamp")
}

func TestPathPrefixWinsOverAcceptLanguage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := setup(t, ctrl)

	response := get(handler, "/en/about", "zh-CN,zh;q=0.9")

	assert.Equal(t, 200, response.Code)
	assert.Contains(t, response.Body.String(), `lang="en"`)
	assert.Contains(t, response.Body.String(), "project-driven bootcamps")
}

func TestLocalePrefixAloneServesHome(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := setup(t, ctrl)

	response := get(handler, "/zh", "")

	assert.Equal(t, 200, response.Code)
	assert.Contains(t, response.Body.String(), "陆向谦实验室")
}

func TestBootcampListPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := setup(t, ctrl)

	response := get(handler, "/en/bootcamp", "")

	assert.Equal(t, 200, response.Code)
	assert.Contains(t, response.Body.String(), "AI Explorer Bootcamp")
	assert.Contains(t, response.Body.String(), "Maker Lab Bootcamp")
}

func TestBootcampDetailPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := setup(t, ctrl)

	response := get(handler, "/en/bootcamp/ai-explorer", "")

	assert.Equal(t, 200, response.Code)
	assert.Contains(t, response.Body.String(), "AI Explorer Bootcamp")
	assert.Contains(t, response.Body.String(), "/api/goods/p_ai_explorer")
	assert.Contains(t, response.Body.String(), "/api/checkout/session")
}

func TestUnknownBootcampNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := setup(t, ctrl)

	response := get(handler, "/bootcamp/does-not-exist", "")

	assert.Equal(t, 404, response.Code)
}

func TestTrainingDetailPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := setup(t, ctrl)

	response := get(handler, "/zh/training/ai-foundations", "")

	assert.Equal(t, 200, response.Code)
	assert.Contains(t, response.Body.String(), "AI 基础课程")
}

func TestUnknownTrainingNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := setup(t, ctrl)

	response := get(handler, "/training/does-not-exist", "")

	assert.Equal(t, 404, response.Code)
}

func TestChatPageCarriesWidgetConfig(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := setup(t, ctrl)

	response := get(handler, "/chat", "")

	assert.Equal(t, 200, response.Code)
	assert.Contains(t, response.Body.String(), `data-bot-id="bot-1"`)
	assert.Contains(t, response.Body.String(), "/api/coze-token")
	assert.Contains(t, response.Body.String(), "/api/coze-auth?action=start")
}

func TestSitemapListsBothLocales(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := setup(t, ctrl)

	response := get(handler, "/sitemap.xml", "")

	assert.Equal(t, 200, response.Code)
	assert.Contains(t, response.Header().Get("Content-Type"), "application/xml")
	assert.Contains(t, response.Body.String(), "/en/bootcamp/ai-explorer")
	assert.Contains(t, response.Body.String(), "/zh/bootcamp/ai-explorer")
	assert.Contains(t, response.Body.String(), "/zh/training/ai-foundations")
}

func get(handler http.Handler, path string, acceptLanguage string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodGet, path, nil)
	if acceptLanguage != "" {
		request.Header.Set("Accept-Language", acceptLanguage)
	}
	response := httptest.NewRecorder()
	handler.ServeHTTP(response, request)
	return response
}

func setup(t *testing.T, ctrl *gomock.Controller) http.Handler {
	c := context.TODO()
	bootcampStore, _, err := mystore.New[Bootcamp](c)
	assert.NoError(t, err)
	trainingStore, _, err := mystore.New[Training](c)
	assert.NoError(t, err)
	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

	sut := NewService("bot-1", bootcampStore, trainingStore, nower)
	router := mux.NewRouter()

	err = sut.RegisterEndpoints(c, router)
	assert.NoError(t, err)

	return Localize(router)
}
