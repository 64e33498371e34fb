package cozeauth

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lulab/website-backend/lib/mycookie"
	"github.com/lulab/website-backend/services/cozeauth/cozeclient"
)

// The five cookies that make up a chat-widget session. The first two only
// live for the duration of one authorization round-trip.
const (
	stateCookieName        = "coze_state"
	codeVerifierCookieName = "coze_code_verifier"
	accessTokenCookieName  = "coze_access_token"
	refreshTokenCookieName = "coze_refresh_token"
	userInfoCookieName     = "coze_user_info"
)

const (
	transientCookieMaxAge    = 10 * time.Minute
	defaultAccessTokenMaxAge = time.Hour
	refreshTokenMaxAge       = 30 * 24 * time.Hour
	userInfoMaxAge           = 24 * time.Hour
)

var allCookieNames = []string{
	stateCookieName,
	codeVerifierCookieName,
	accessTokenCookieName,
	refreshTokenCookieName,
	userInfoCookieName,
}

// SessionCredentials is the session state carried by the browser, read once
// per request so the validate/refresh logic never touches the jar for input.
type SessionCredentials struct {
	State        string
	CodeVerifier string
	AccessToken  string
	RefreshToken string
	UserInfoBlob string
}

func readCredentials(jar mycookie.Jar) SessionCredentials {
	creds := SessionCredentials{}
	creds.State, _ = jar.Get(stateCookieName)
	creds.CodeVerifier, _ = jar.Get(codeVerifierCookieName)
	creds.AccessToken, _ = jar.Get(accessTokenCookieName)
	creds.RefreshToken, _ = jar.Get(refreshTokenCookieName)
	creds.UserInfoBlob, _ = jar.Get(userInfoCookieName)
	return creds
}

func accessTokenMaxAge(expiresIn int) time.Duration {
	if expiresIn > 0 {
		return time.Duration(expiresIn) * time.Second
	}
	return defaultAccessTokenMaxAge
}

// The profile is stored as base64url over JSON: raw JSON contains characters
// that are not cookie-value safe.
func encodeUserInfo(userInfo cozeclient.UserInfo) (string, error) {
	blob, err := json.Marshal(userInfo)
	if err != nil {
		return "", fmt.Errorf("error serializing user-info: %s", err)
	}

	return base64.RawURLEncoding.EncodeToString(blob), nil
}

func decodeUserInfo(value string) (cozeclient.UserInfo, error) {
	blob, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return cozeclient.UserInfo{}, fmt.Errorf("error decoding user-info cookie: %s", err)
	}

	userInfo := cozeclient.UserInfo{}
	err = json.Unmarshal(blob, &userInfo)
	if err != nil {
		return cozeclient.UserInfo{}, fmt.Errorf("error parsing user-info cookie: %s", err)
	}

	if userInfo.UserID == "" {
		return cozeclient.UserInfo{}, fmt.Errorf("user-info cookie lacks a user-id")
	}

	return userInfo, nil
}

type sessionResponse struct {
	Success  bool                `json:"success"`
	Token    string              `json:"token"`
	UserID   string              `json:"userId"`
	UserInfo cozeclient.UserInfo `json:"userInfo"`
}

type refreshResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Token   string `json:"token"`
}

type needsAuthResponse struct {
	Success   bool   `json:"success"`
	NeedsAuth bool   `json:"needsAuth"`
	Error     string `json:"error"`
}

type logoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
