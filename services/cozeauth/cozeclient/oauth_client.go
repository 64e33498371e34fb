package cozeclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

type Config struct {
	ClientID     string
	ClientSecret string // optional: only sent when the provider demands it
	RedirectURI  string
	AuthURL      string
	TokenURL     string
	UserInfoURL  string
}

type ComposeAuthURLRequest struct {
	State           string
	CodeChallenge   string
	ChallengeMethod string
}

type GetTokenRequest struct {
	Code         string
	CodeVerifier string
}

type RefreshTokenRequest struct {
	RefreshToken string
}

type TokenResponse struct {
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type UserInfo struct {
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	NickName  string `json:"nick_name"`
	AvatarURL string `json:"avatar_url"`
}

//go:generate mockgen -source=oauth_client.go -package cozeclient -destination oauth_client_mock.go OauthClient
type OauthClient interface {
	ComposeAuthURL(c context.Context, req ComposeAuthURLRequest) (string, error)
	GetAccessToken(c context.Context, req GetTokenRequest) (TokenResponse, error)
	RefreshAccessToken(c context.Context, req RefreshTokenRequest) (TokenResponse, error)
	GetUserInfo(c context.Context, accessToken string) (UserInfo, error)
}

type oauthClient struct {
	config Config
	sender httpSender
}

func NewOauthClient(config Config) *oauthClient {
	return &oauthClient{
		config: config,
		sender: newHTTPClient(),
	}
}

func (oc oauthClient) ComposeAuthURL(c context.Context, req ComposeAuthURLRequest) (string, error) {
	u, err := url.Parse(oc.config.AuthURL)
	if err != nil {
		return "", fmt.Errorf("error parsing auth-url: %s", err)
	}

	u.RawQuery = url.Values{
		"client_id":             []string{oc.config.ClientID},
		"code_challenge":        []string{req.CodeChallenge},
		"code_challenge_method": []string{req.ChallengeMethod},
		"redirect_uri":          []string{oc.config.RedirectURI},
		"response_type":         []string{"code"},
		"state":                 []string{req.State},
	}.Encode()

	return u.String(), nil
}

func (oc oauthClient) GetAccessToken(c context.Context, req GetTokenRequest) (TokenResponse, error) {
	requestBody := url.Values{
		"grant_type":    {"authorization_code"},
		"client_id":     {oc.config.ClientID},
		"redirect_uri":  {oc.config.RedirectURI},
		"code":          {req.Code},
		"code_verifier": {req.CodeVerifier},
	}
	oc.addClientSecret(requestBody)

	return oc.postForTokens(c, requestBody)
}

func (oc oauthClient) RefreshAccessToken(c context.Context, req RefreshTokenRequest) (TokenResponse, error) {
	requestBody := url.Values{
		"grant_type":    {"refresh_token"},
		"client_id":     {oc.config.ClientID},
		"refresh_token": {req.RefreshToken},
	}
	oc.addClientSecret(requestBody)

	return oc.postForTokens(c, requestBody)
}

// addClientSecret is provider-specific: a pure PKCE public client omits it.
func (oc oauthClient) addClientSecret(body url.Values) {
	if oc.config.ClientSecret != "" {
		body.Set("client_secret", oc.config.ClientSecret)
	}
}

func (oc oauthClient) postForTokens(c context.Context, requestBody url.Values) (TokenResponse, error) {
	httpRespCode, respBody, err := oc.sender.SendForm(c, oc.config.TokenURL, []byte(requestBody.Encode()))
	if err != nil {
		return TokenResponse{}, fmt.Errorf("error calling token-endpoint: %s", err)
	}

	if httpRespCode != http.StatusOK {
		return TokenResponse{}, fmt.Errorf("error calling token-endpoint: status %d (%s)", httpRespCode, string(respBody))
	}

	resp := TokenResponse{}
	err = json.Unmarshal(respBody, &resp)
	if err != nil {
		return TokenResponse{}, fmt.Errorf("error parsing token-response: %s", err)
	}

	return resp, nil
}

func (oc oauthClient) GetUserInfo(c context.Context, accessToken string) (UserInfo, error) {
	httpRespCode, respBody, err := oc.sender.GetWithBearer(c, oc.config.UserInfoURL, accessToken)
	if err != nil {
		return UserInfo{}, fmt.Errorf("error calling userinfo-endpoint: %s", err)
	}

	if httpRespCode != http.StatusOK {
		return UserInfo{}, fmt.Errorf("error calling userinfo-endpoint: status %d", httpRespCode)
	}

	userInfo := UserInfo{}
	err = json.Unmarshal(respBody, &userInfo)
	if err != nil {
		return UserInfo{}, fmt.Errorf("error parsing userinfo-response: %s", err)
	}

	return userInfo, nil
}
