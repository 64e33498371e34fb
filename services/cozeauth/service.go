package cozeauth

import (
	"context"
	"fmt"

	"github.com/lulab/website-backend/lib/codeverifier"
	"github.com/lulab/website-backend/lib/mycookie"
	"github.com/lulab/website-backend/lib/myerrors"
	"github.com/lulab/website-backend/lib/myevents"
	"github.com/lulab/website-backend/lib/mylog"
	"github.com/lulab/website-backend/lib/mypublisher"
	"github.com/lulab/website-backend/lib/myuuid"
	"github.com/lulab/website-backend/services/cozeauth/cozeauthevents"
	"github.com/lulab/website-backend/services/cozeauth/cozeclient"
)

type service struct {
	clientID    string
	oauthClient cozeclient.OauthClient
	uuider      myuuid.UUIDer
	logger      mylog.Logger
	publisher   mypublisher.Publisher
}

func newService(clientID string, oauthClient cozeclient.OauthClient, uuider myuuid.UUIDer, pub mypublisher.Publisher) *service {
	return &service{
		clientID:    clientID,
		oauthClient: oauthClient,
		uuider:      uuider,
		logger:      mylog.New("cozeauth"),
		publisher:   pub,
	}
}

func (s *service) CreateTopics(c context.Context) error {
	err := s.publisher.CreateTopic(c, cozeauthevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", cozeauthevents.TopicName, err)
	}

	return nil
}

// start begins a fresh authorization round-trip: a new state and PKCE
// verifier are stashed in transient cookies and the caller is pointed at the
// provider's authorize endpoint.
func (s *service) start(c context.Context, jar mycookie.Jar) (string, error) {
	if s.clientID == "" {
		return "", myerrors.NewInternalError(fmt.Errorf("oauth client-id not configured"))
	}

	state := s.uuider.Create()

	s.logger.Log(c, state, mylog.SeverityInfo, "Start chat-widget session-setup %s", state)

	verifier, err := codeverifier.NewVerifier()
	if err != nil {
		return "", myerrors.NewInternalError(fmt.Errorf("error creating code verifier: %s", err))
	}

	challengeMethod, challenge, err := verifier.CreateChallenge()
	if err != nil {
		return "", myerrors.NewInternalError(fmt.Errorf("error creating code challenge: %s", err))
	}

	authURL, err := s.oauthClient.ComposeAuthURL(c, cozeclient.ComposeAuthURLRequest{
		State:           state,
		CodeChallenge:   challenge,
		ChallengeMethod: challengeMethod,
	})
	if err != nil {
		return "", myerrors.NewInternalError(fmt.Errorf("error composing auth url: %s", err))
	}

	jar.Set(codeVerifierCookieName, verifier.GetValue(), transientCookieMaxAge)
	jar.Set(stateCookieName, state, transientCookieMaxAge)

	s.publish(c, cozeauthevents.SessionSetupStarted{
		SessionUID: state,
	})

	return authURL, nil
}

// callback finishes the round-trip: state and verifier are checked before any
// network call, the code is exchanged and the profile fetched, and the three
// durable session cookies are written. All upstream failures translate into a
// redirect with an error indicator; the transient cookies are gone on every
// post-exchange exit path.
func (s *service) callback(c context.Context, jar mycookie.Jar, code string, state string) (string, error) {
	s.logger.Log(c, state, mylog.SeverityInfo, "Continue chat-widget session-setup (exchange code) %s", state)

	storedState, _ := jar.Get(stateCookieName)
	if state == "" || state != storedState {
		return "", myerrors.NewInvalidInputErrorf("state does not match stored state")
	}

	verifierValue, exists := jar.Get(codeVerifierCookieName)
	if !exists || verifierValue == "" {
		return "", myerrors.NewInvalidInputErrorf("missing code verifier")
	}

	tokenResp, err := s.oauthClient.GetAccessToken(c, cozeclient.GetTokenRequest{
		Code:         code,
		CodeVerifier: verifierValue,
	})
	if err != nil {
		return s.abortSetup(c, jar, state, "token_exchange_failed", err), nil
	}
	if tokenResp.AccessToken == "" {
		return s.abortSetup(c, jar, state, "invalid_token_response", fmt.Errorf("token response lacks an access-token")), nil
	}

	userInfo, err := s.oauthClient.GetUserInfo(c, tokenResp.AccessToken)
	if err != nil {
		return s.abortSetup(c, jar, state, "user_info_failed", err), nil
	}
	if userInfo.UserID == "" {
		return s.abortSetup(c, jar, state, "invalid_user_data", fmt.Errorf("user-info response lacks a user-id")), nil
	}

	s.cacheUserInfo(c, jar, userInfo)
	jar.Set(accessTokenCookieName, tokenResp.AccessToken, accessTokenMaxAge(tokenResp.ExpiresIn))
	if tokenResp.RefreshToken != "" {
		jar.Set(refreshTokenCookieName, tokenResp.RefreshToken, refreshTokenMaxAge)
	}
	deleteTransientCookies(jar)

	s.publish(c, cozeauthevents.SessionSetupCompleted{
		SessionUID: state,
		UserID:     userInfo.UserID,
		Success:    true,
	})

	s.logger.Log(c, state, mylog.SeverityInfo, "Completed chat-widget session-setup %s for user %s", state, userInfo.UserID)

	return "/?auth=success", nil
}

func (s *service) abortSetup(c context.Context, jar mycookie.Jar, state string, reason string, err error) string {
	s.logger.Log(c, state, mylog.SeverityWarn, "Chat-widget session-setup %s failed (%s): %s", state, reason, err)

	deleteTransientCookies(jar)

	s.publish(c, cozeauthevents.SessionSetupCompleted{
		SessionUID:   state,
		Success:      false,
		ErrorMessage: reason,
	})

	return "/?error=" + reason
}

// resolveSession is the validate-or-refresh decision for every widget mount:
//
//	no credentials at all           -> needs-auth
//	access token validates          -> done
//	access token rejected + refresh -> one refresh attempt, then done or needs-auth
//	refresh token only              -> one refresh attempt, then done or needs-auth
//
// A token is only handed out after the provider vouched for it; any network
// failure along the way counts as needs-auth.
func (s *service) resolveSession(c context.Context, jar mycookie.Jar) (sessionResponse, error) {
	creds := readCredentials(jar)
	if creds.AccessToken == "" && creds.RefreshToken == "" {
		return sessionResponse{}, myerrors.NewNotAuthenticatedError(fmt.Errorf("no session credentials present"))
	}

	accessToken := creds.AccessToken
	userInfo := cozeclient.UserInfo{}
	validated := false

	if accessToken != "" {
		fetched, err := s.oauthClient.GetUserInfo(c, accessToken)
		if err == nil {
			validated = true
			userInfo = fetched
		} else {
			s.logger.Log(c, "", mylog.SeverityInfo, "Access token rejected, considering refresh: %s", err)
		}
	}

	if !validated {
		if creds.RefreshToken == "" {
			return sessionResponse{}, myerrors.NewNotAuthenticatedError(fmt.Errorf("access token rejected and no refresh token present"))
		}

		tokenResp, err := s.refreshCredentials(c, jar, creds.RefreshToken)
		if err != nil {
			return sessionResponse{}, err
		}
		accessToken = tokenResp.AccessToken
	}

	if userInfo.UserID != "" {
		s.cacheUserInfo(c, jar, userInfo)
	} else {
		userInfo = s.resolveUserInfo(c, jar, creds.UserInfoBlob, accessToken)
	}

	return sessionResponse{
		Success:  true,
		Token:    accessToken,
		UserID:   userInfo.UserID,
		UserInfo: userInfo,
	}, nil
}

// resolveUserInfo prefers the cached profile cookie; a fresh fetch is only
// done when the cache is absent or unparseable. A failed fetch leaves the
// profile absent rather than failing the session: the token is already
// validated at this point.
func (s *service) resolveUserInfo(c context.Context, jar mycookie.Jar, cachedBlob string, accessToken string) cozeclient.UserInfo {
	if cachedBlob != "" {
		userInfo, err := decodeUserInfo(cachedBlob)
		if err == nil {
			return userInfo
		}
		s.logger.Log(c, "", mylog.SeverityInfo, "Ignoring cached user-info: %s", err)
	}

	userInfo, err := s.oauthClient.GetUserInfo(c, accessToken)
	if err != nil || userInfo.UserID == "" {
		s.logger.Log(c, "", mylog.SeverityWarn, "Could not resolve user-info: %s", err)
		return cozeclient.UserInfo{}
	}

	s.cacheUserInfo(c, jar, userInfo)

	return userInfo
}

// refresh serves the explicit refresh endpoint. A profile-update failure does
// not fail the refresh: the newer token wins.
func (s *service) refresh(c context.Context, jar mycookie.Jar) (refreshResponse, error) {
	creds := readCredentials(jar)
	if creds.RefreshToken == "" {
		return refreshResponse{}, myerrors.NewNotAuthenticatedError(fmt.Errorf("no refresh token found"))
	}

	tokenResp, err := s.refreshCredentials(c, jar, creds.RefreshToken)
	if err != nil {
		return refreshResponse{}, err
	}

	userInfo, err := s.oauthClient.GetUserInfo(c, tokenResp.AccessToken)
	if err == nil && userInfo.UserID != "" {
		s.cacheUserInfo(c, jar, userInfo)
	} else {
		s.logger.Log(c, "", mylog.SeverityWarn, "Could not update user-info during refresh: %s", err)
	}

	return refreshResponse{
		Success: true,
		Message: "Token refreshed successfully",
		Token:   tokenResp.AccessToken,
	}, nil
}

// refreshCredentials performs the single refresh attempt. A hard failure
// invalidates the whole session: all three durable cookies are cleared so the
// caller is forced back into an interactive flow.
func (s *service) refreshCredentials(c context.Context, jar mycookie.Jar, refreshToken string) (cozeclient.TokenResponse, error) {
	s.logger.Log(c, "", mylog.SeverityInfo, "Start chat-widget token-refresh")

	tokenResp, err := s.oauthClient.RefreshAccessToken(c, cozeclient.RefreshTokenRequest{
		RefreshToken: refreshToken,
	})
	if err == nil && tokenResp.AccessToken == "" {
		err = fmt.Errorf("refresh response lacks an access-token")
	}
	if err != nil {
		s.logger.Log(c, "", mylog.SeverityWarn, "Token-refresh failed, revoking session: %s", err)

		jar.Delete(accessTokenCookieName)
		jar.Delete(refreshTokenCookieName)
		jar.Delete(userInfoCookieName)

		s.publish(c, cozeauthevents.TokenRefreshCompleted{
			UID:     s.uuider.Create(),
			Success: false,
		})

		return cozeclient.TokenResponse{}, myerrors.NewNotAuthenticatedError(fmt.Errorf("token refresh failed: %s", err))
	}

	jar.Set(accessTokenCookieName, tokenResp.AccessToken, accessTokenMaxAge(tokenResp.ExpiresIn))
	if tokenResp.RefreshToken != "" {
		jar.Set(refreshTokenCookieName, tokenResp.RefreshToken, refreshTokenMaxAge)
	}

	s.publish(c, cozeauthevents.TokenRefreshCompleted{
		UID:     s.uuider.Create(),
		Success: true,
	})

	s.logger.Log(c, "", mylog.SeverityInfo, "Completed chat-widget token-refresh")

	return tokenResp, nil
}

func (s *service) logout(c context.Context, jar mycookie.Jar) {
	s.logger.Log(c, "", mylog.SeverityInfo, "Revoke chat-widget session")

	for _, name := range allCookieNames {
		jar.Delete(name)
	}

	s.publish(c, cozeauthevents.SessionRevoked{
		UID: s.uuider.Create(),
	})
}

func (s *service) cacheUserInfo(c context.Context, jar mycookie.Jar, userInfo cozeclient.UserInfo) {
	blob, err := encodeUserInfo(userInfo)
	if err != nil {
		s.logger.Log(c, "", mylog.SeverityWarn, "Error caching user-info: %s", err)
		return
	}

	jar.Set(userInfoCookieName, blob, userInfoMaxAge)
}

func deleteTransientCookies(jar mycookie.Jar) {
	jar.Delete(codeVerifierCookieName)
	jar.Delete(stateCookieName)
}

// Cookie mutations must stick even when the lifecycle event cannot be
// published, so publication is best-effort here.
func (s *service) publish(c context.Context, event myevents.Event) {
	err := s.publisher.Publish(c, cozeauthevents.TopicName, event)
	if err != nil {
		s.logger.Log(c, "", mylog.SeverityWarn, "Error publishing %s: %s", event.GetEventTypeName(), err)
	}
}
