package cozeclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposeAuthURL(t *testing.T) {
	client := NewOauthClient(Config{
		ClientID:    "client-123",
		RedirectURI: "https://www.lulabs.org/api/coze-auth",
		AuthURL:     "https://api.coze.cn/api/permission/oauth2/authorize",
	})

	authURL, err := client.ComposeAuthURL(context.TODO(), ComposeAuthURLRequest{
		State:           "state-abc",
		CodeChallenge:   "challenge-xyz",
		ChallengeMethod: "S256",
	})
	assert.NoError(t, err)

	parsed, err := url.Parse(authURL)
	assert.NoError(t, err)
	assert.Equal(t, "api.coze.cn", parsed.Host)
	assert.Equal(t, "code", parsed.Query().Get("response_type"))
	assert.Equal(t, "client-123", parsed.Query().Get("client_id"))
	assert.Equal(t, "state-abc", parsed.Query().Get("state"))
	assert.Equal(t, "challenge-xyz", parsed.Query().Get("code_challenge"))
	assert.Equal(t, "S256", parsed.Query().Get("code_challenge_method"))
	assert.Equal(t, "https://www.lulabs.org/api/coze-auth", parsed.Query().Get("redirect_uri"))
}

func TestGetAccessToken(t *testing.T) {
	var receivedForm url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, r.ParseForm())
		receivedForm = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token_type":"Bearer","expires_in":3600,"access_token":"at-1","refresh_token":"rt-1"}`))
	}))
	defer server.Close()

	client := NewOauthClient(Config{
		ClientID:    "client-123",
		RedirectURI: "https://www.lulabs.org/api/coze-auth",
		TokenURL:    server.URL,
	})

	resp, err := client.GetAccessToken(context.TODO(), GetTokenRequest{
		Code:         "code-1",
		CodeVerifier: "verifier-1",
	})
	assert.NoError(t, err)
	assert.Equal(t, "at-1", resp.AccessToken)
	assert.Equal(t, "rt-1", resp.RefreshToken)
	assert.Equal(t, 3600, resp.ExpiresIn)

	assert.Equal(t, "authorization_code", receivedForm.Get("grant_type"))
	assert.Equal(t, "code-1", receivedForm.Get("code"))
	assert.Equal(t, "verifier-1", receivedForm.Get("code_verifier"))

	// public client: no secret configured, none sent
	assert.Empty(t, receivedForm.Get("client_secret"))
}

func TestGetAccessTokenIncludesConfiguredSecret(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "sssh", r.PostForm.Get("client_secret"))
		w.Write([]byte(`{"access_token":"at-1"}`))
	}))
	defer server.Close()

	client := NewOauthClient(Config{
		ClientID:     "client-123",
		ClientSecret: "sssh",
		TokenURL:     server.URL,
	})

	_, err := client.GetAccessToken(context.TODO(), GetTokenRequest{Code: "code-1"})
	assert.NoError(t, err)
}

func TestRefreshAccessTokenUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewOauthClient(Config{
		ClientID: "client-123",
		TokenURL: server.URL,
	})

	_, err := client.RefreshAccessToken(context.TODO(), RefreshTokenRequest{RefreshToken: "rt-stale"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestGetUserInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer at-1", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"user_id":"u1","nick_name":"Marc","avatar_url":"https://cdn.example/avatar.png"}`))
	}))
	defer server.Close()

	client := NewOauthClient(Config{UserInfoURL: server.URL})

	userInfo, err := client.GetUserInfo(context.TODO(), "at-1")
	assert.NoError(t, err)
	assert.Equal(t, "u1", userInfo.UserID)
	assert.Equal(t, "Marc", userInfo.NickName)
}

func TestGetUserInfoRejectedToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "expired", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewOauthClient(Config{UserInfoURL: server.URL})

	_, err := client.GetUserInfo(context.TODO(), "at-stale")
	assert.Error(t, err)
}
