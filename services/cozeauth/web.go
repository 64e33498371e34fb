package cozeauth

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lulab/website-backend/lib/mycontext"
	"github.com/lulab/website-backend/lib/mycookie"
	"github.com/lulab/website-backend/lib/myerrors"
	"github.com/lulab/website-backend/lib/myhttp"
	"github.com/lulab/website-backend/lib/mylog"
	"github.com/lulab/website-backend/lib/mypublisher"
	"github.com/lulab/website-backend/lib/myuuid"
	"github.com/lulab/website-backend/services/cozeauth/cozeclient"
)

type webService struct {
	service       *service
	secureCookies bool
	logger        mylog.Logger
}

func NewService(clientID string, secureCookies bool, oauthClient cozeclient.OauthClient, uuider myuuid.UUIDer, pub mypublisher.Publisher) *webService {
	return &webService{
		service:       newService(clientID, oauthClient, uuider, pub),
		secureCookies: secureCookies,
		logger:        mylog.New("cozeauth"),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/coze-auth", s.authPage()).Methods("GET")
	router.HandleFunc("/api/coze-token", s.tokenPage()).Methods("POST")
	router.HandleFunc("/api/coze-refresh", s.refreshPage()).Methods("POST")
	router.HandleFunc("/api/coze-logout", s.logoutPage()).Methods("POST")
	router.HandleFunc("/api/coze-logout", s.logoutRedirectPage()).Methods("GET")

	err := s.service.CreateTopics(c)
	if err != nil {
		return err
	}

	return nil
}

// authPage serves both halves of the authorization round-trip: ?action=start
// kicks it off, a ?code=... query is the provider calling back.
func (s *webService) authPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)
		jar := mycookie.NewJar(w, r, s.secureCookies)

		action := r.URL.Query().Get("action")
		code := r.URL.Query().Get("code")

		switch {
		case action == "start":
			authURL, err := s.service.start(c, jar)
			if err != nil {
				errorWriter.WriteError(c, w, 1, err)
				return
			}

			http.Redirect(w, r, authURL, http.StatusFound)

		case code != "":
			redirectURL, err := s.service.callback(c, jar, code, r.URL.Query().Get("state"))
			if err != nil {
				errorWriter.WriteError(c, w, 2, err)
				return
			}

			http.Redirect(w, r, redirectURL, http.StatusFound)

		default:
			errorWriter.WriteError(c, w, 3, myerrors.NewInvalidInputErrorf("use action=start to initiate or provide a code parameter on callback"))
		}
	}
}

func (s *webService) tokenPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)
		jar := mycookie.NewJar(w, r, s.secureCookies)

		resp, err := s.service.resolveSession(c, jar)
		if err != nil {
			s.writeSessionError(c, errorWriter, w, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, resp)
	}
}

func (s *webService) refreshPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)
		jar := mycookie.NewJar(w, r, s.secureCookies)

		resp, err := s.service.refresh(c, jar)
		if err != nil {
			s.writeSessionError(c, errorWriter, w, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, resp)
	}
}

// An expired session is an expected answer, not an error envelope: the
// widget looks for needsAuth to decide to launch an interactive flow.
func (s *webService) writeSessionError(c context.Context, writer myhttp.ResponseWriter, w http.ResponseWriter, err error) {
	if myerrors.GetHTTPStatus(err) == http.StatusUnauthorized {
		writer.Write(c, w, http.StatusUnauthorized, needsAuthResponse{
			Success:   false,
			NeedsAuth: true,
			Error:     err.Error(),
		})
		return
	}

	writer.WriteError(c, w, 1, err)
}

func (s *webService) logoutPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)
		jar := mycookie.NewJar(w, r, s.secureCookies)

		s.service.logout(c, jar)

		errorWriter.Write(c, w, http.StatusOK, logoutResponse{
			Success: true,
			Message: "Logged out successfully",
		})
	}
}

func (s *webService) logoutRedirectPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		jar := mycookie.NewJar(w, r, s.secureCookies)

		s.service.logout(c, jar)

		http.Redirect(w, r, "/?logout=success", http.StatusFound)
	}
}
