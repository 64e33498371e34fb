package account

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lulab/website-backend/lib/mycontext"
	"github.com/lulab/website-backend/lib/mycookie"
	"github.com/lulab/website-backend/lib/myerrors"
	"github.com/lulab/website-backend/lib/myhttp"
	"github.com/lulab/website-backend/lib/mylog"
	"github.com/lulab/website-backend/lib/mystore"
	"github.com/lulab/website-backend/lib/mytime"
)

type webService struct {
	service       *service
	secureCookies bool
	logger        mylog.Logger
}

func NewService(signingSecret string, secureCookies bool, accountStore mystore.Store[Account], nower mytime.Nower) *webService {
	return &webService{
		service:       newService(signingSecret, accountStore, nower),
		secureCookies: secureCookies,
		logger:        mylog.New("accountWeb"),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/login", s.loginPage()).Methods("POST")
	router.HandleFunc("/api/logout", s.logoutPage()).Methods("POST", "GET")

	return nil
}

// ProvisionAdmin seeds the admin account from the environment. A no-op when
// email or password is unset.
func (s *webService) ProvisionAdmin(c context.Context, email, password string) error {
	return s.service.provisionAccount(c, email, password, "admin")
}

func (s *webService) loginPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)
		jar := mycookie.NewJar(w, r, s.secureCookies)

		req := loginRequest{}
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputErrorf("error parsing request body: %s", err))
			return
		}

		account, token, err := s.service.login(c, req.Email, req.Password)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		jar.Set(sessionCookieName, token, sessionMaxAge)

		errorWriter.Write(c, w, http.StatusOK, loginResponse{
			Success: true,
			Email:   account.Email,
			Role:    account.Role,
		})
	}
}

func (s *webService) logoutPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)
		jar := mycookie.NewJar(w, r, s.secureCookies)

		jar.Delete(sessionCookieName)

		if r.Method == http.MethodGet {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, logoutResponse{
			Success: true,
			Message: "Logged out",
		})
	}
}
