package commerce

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lulab/website-backend/lib/mycontext"
	"github.com/lulab/website-backend/lib/myerrors"
	"github.com/lulab/website-backend/lib/myhttp"
	"github.com/lulab/website-backend/lib/mylog"
	"github.com/lulab/website-backend/lib/mytime"
	"github.com/lulab/website-backend/lib/myvault"
)

type webService struct {
	service        *service
	allowedOrigins []string
	logger         mylog.Logger
}

func NewService(allowedOrigins []string, caller XiaoeCaller, vault myvault.VaultReadWriter[Token], nower mytime.Nower) *webService {
	return &webService{
		service:        newService(caller, vault, nower),
		allowedOrigins: allowedOrigins,
		logger:         mylog.New("commerce"),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/goods/{resourceID}", s.goodsDetailPage()).Methods("GET")

	return nil
}

func (s *webService) goodsDetailPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		origin := r.Header.Get("Origin")
		if origin != "" && !s.originAllowed(origin) {
			errorWriter.WriteError(c, w, 1, myerrors.NewForbiddenError(fmt.Errorf("origin %s not allowed", origin)))
			return
		}

		resp, err := s.service.getGoodsDetail(c, mux.Vars(r)["resourceID"])
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, resp)
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
