package chatproxy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lulab/website-backend/lib/mycontext"
	"github.com/lulab/website-backend/lib/mycookie"
	"github.com/lulab/website-backend/lib/myerrors"
	"github.com/lulab/website-backend/lib/myhttp"
	"github.com/lulab/website-backend/lib/mylog"
	"github.com/lulab/website-backend/lib/myuuid"
)

type webService struct {
	service        *service
	allowedOrigins []string
	secureCookies  bool
	logger         mylog.Logger
}

func NewService(botID string, allowedOrigins []string, secureCookies bool, chatCaller ChatCaller, uuider myuuid.UUIDer) *webService {
	return &webService{
		service:        newService(botID, chatCaller, uuider),
		allowedOrigins: allowedOrigins,
		secureCookies:  secureCookies,
		logger:         mylog.New("chatproxy"),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/coze-proxy", s.proxyPage()).Methods("POST")

	return nil
}

func (s *webService) proxyPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)
		jar := mycookie.NewJar(w, r, s.secureCookies)

		// A browser request from a foreign origin is rejected outright;
		// requests without an Origin header (same-origin, curl) pass.
		origin := r.Header.Get("Origin")
		if origin != "" && !s.originAllowed(origin) {
			errorWriter.WriteError(c, w, 1, myerrors.NewForbiddenError(fmt.Errorf("origin %s not allowed", origin)))
			return
		}

		req := proxyRequest{}
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			errorWriter.WriteError(c, w, 2, myerrors.NewInvalidInputError(fmt.Errorf("error parsing request: %s", err)))
			return
		}

		switch req.Action {
		case "getConfig":
			resp, err := s.service.getConfig(c)
			if err != nil {
				errorWriter.WriteError(c, w, 3, err)
				return
			}

			errorWriter.Write(c, w, http.StatusOK, resp)

		case "chat":
			resp, err := s.service.chat(c, jar, req.Payload)
			if err != nil {
				errorWriter.WriteError(c, w, 4, err)
				return
			}

			errorWriter.Write(c, w, http.StatusOK, resp)

		default:
			errorWriter.WriteError(c, w, 5, myerrors.NewInvalidInputErrorf("invalid action '%s'", req.Action))
		}
	}
}

func (s *webService) originAllowed(origin string) bool {
	for _, allowed := range s.allowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}
