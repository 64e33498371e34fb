package account

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/lulab/website-backend/lib/mystore"
	"github.com/lulab/website-backend/lib/mytime"
)

func TestLoginSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := setup(t, ctrl)

	request := httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"email":"admin@lulabs.org","password":"letmein"}`))
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	assert.Equal(t, 200, response.Code)
	assert.Contains(t, response.Body.String(), `"success": true`)
	assert.Contains(t, response.Body.String(), `"role": "admin"`)

	cookie := findCookie(t, response.Result().Cookies(), sessionCookieName)
	assert.NotEmpty(t, cookie.Value)
	assert.Equal(t, 604800, cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
}

func TestLoginWrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := setup(t, ctrl)

	request := httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"email":"admin@lulabs.org","password":"wrong"}`))
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	assert.Equal(t, 401, response.Code)
	assert.Empty(t, response.Result().Cookies())
}

func TestLoginUnknownAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := setup(t, ctrl)

	request := httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"email":"nobody@lulabs.org","password":"letmein"}`))
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	assert.Equal(t, 401, response.Code)
}

func TestLoginMalformedBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := setup(t, ctrl)

	request := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader("not-json"))
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	assert.Equal(t, 400, response.Code)
}

func TestLogoutClearsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := setup(t, ctrl)

	request := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	request.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "whatever"})
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	assert.Equal(t, 200, response.Code)
	cookie := findCookie(t, response.Result().Cookies(), sessionCookieName)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestLogoutViaGetRedirects(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, _ := setup(t, ctrl)

	request := httptest.NewRequest(http.MethodGet, "/api/logout", nil)
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	assert.Equal(t, 302, response.Code)
	assert.Equal(t, "/", response.Header().Get("Location"))
}

func TestPublicPagesPassWithoutSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	_, sut := setup(t, ctrl)
	gated := sut.RequireAuth(okHandler())

	for _, path := range []string{
		"/",
		"/login",
		"/about",
		"/bootcamp",
		"/bootcamp/ai-foundations",
		"/checkout/completed/basket-1",
		"/agreement.html",
		"/zh/about",
		"/en/bootcamp/ai-foundations",
		"/en",
		"/api/coze-token",
	} {
		request := httptest.NewRequest(http.MethodGet, path, nil)
		response := httptest.NewRecorder()
		gated.ServeHTTP(response, request)

		assert.Equal(t, 200, response.Code, path)
	}
}

func TestGatedPageRedirectsToLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	_, sut := setup(t, ctrl)
	gated := sut.RequireAuth(okHandler())

	request := httptest.NewRequest(http.MethodGet, "/training/ai-foundations", nil)
	response := httptest.NewRecorder()
	gated.ServeHTTP(response, request)

	assert.Equal(t, 302, response.Code)
	assert.Equal(t, "/login?callbackUrl=%2Ftraining%2Fai-foundations", response.Header().Get("Location"))
}

func TestGatedPagePassesWithValidSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, sut := setup(t, ctrl)
	gated := sut.RequireAuth(okHandler())

	// given: a session cookie obtained through login
	loginRequest := httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"email":"admin@lulabs.org","password":"letmein"}`))
	loginResponse := httptest.NewRecorder()
	router.ServeHTTP(loginResponse, loginRequest)
	assert.Equal(t, 200, loginResponse.Code)
	session := findCookie(t, loginResponse.Result().Cookies(), sessionCookieName)

	// when
	request := httptest.NewRequest(http.MethodGet, "/training/ai-foundations", nil)
	request.AddCookie(session)
	response := httptest.NewRecorder()
	gated.ServeHTTP(response, request)

	// then
	assert.Equal(t, 200, response.Code)
}

func TestGatedPageRejectsForgedSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	_, sut := setup(t, ctrl)
	gated := sut.RequireAuth(okHandler())

	request := httptest.NewRequest(http.MethodGet, "/chat", nil)
	request.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "forged.token.value"})
	response := httptest.NewRecorder()
	gated.ServeHTTP(response, request)

	assert.Equal(t, 302, response.Code)
	assert.Equal(t, "/login?callbackUrl=%2Fchat", response.Header().Get("Location"))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func findCookie(t *testing.T, cookies []*http.Cookie, name string) *http.Cookie {
	t.Helper()
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	t.Fatalf("cookie %s not found", name)
	return nil
}

func setup(t *testing.T, ctrl *gomock.Controller) (*mux.Router, *webService) {
	c := context.TODO()
	accountStore, _, err := mystore.New[Account](c)
	assert.NoError(t, err)
	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

	sut := NewService("signing-secret", false, accountStore, nower)
	router := mux.NewRouter()

	err = sut.RegisterEndpoints(c, router)
	assert.NoError(t, err)

	err = sut.ProvisionAdmin(c, "admin@lulabs.org", "letmein")
	assert.NoError(t, err)

	return router, sut
}
