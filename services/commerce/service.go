package commerce

import (
	"context"
	"fmt"
	"time"

	"github.com/lulab/website-backend/lib/myerrors"
	"github.com/lulab/website-backend/lib/mylog"
	"github.com/lulab/website-backend/lib/mytime"
	"github.com/lulab/website-backend/lib/myvault"
)

const (
	defaultTokenLifetime = time.Hour
)

type service struct {
	caller XiaoeCaller
	vault  myvault.VaultReadWriter[Token]
	nower  mytime.Nower
	logger mylog.Logger
}

func newService(caller XiaoeCaller, vault myvault.VaultReadWriter[Token], nower mytime.Nower) *service {
	return &service{
		caller: caller,
		vault:  vault,
		nower:  nower,
		logger: mylog.New("commerce"),
	}
}

func (s *service) getGoodsDetail(c context.Context, resourceID string) (goodsResponse, error) {
	if resourceID == "" {
		return goodsResponse{}, myerrors.NewInvalidInputErrorf("missing resource-id")
	}

	accessToken, err := s.getAccessToken(c)
	if err != nil {
		return goodsResponse{}, err
	}

	s.logger.Log(c, resourceID, mylog.SeverityInfo, "Fetch goods detail for %s", resourceID)

	data, err := s.caller.GetGoodsDetail(c, accessToken, resourceID)
	if err != nil {
		return goodsResponse{}, myerrors.NewInternalError(fmt.Errorf("error fetching goods detail: %s", err))
	}

	return goodsResponse{
		Success: true,
		Data:    data,
	}, nil
}

// getAccessToken serves the cached credential while it is still valid and
// lazily re-fetches it otherwise.
func (s *service) getAccessToken(c context.Context) (string, error) {
	now := s.nower.Now()

	token, exists, err := s.vault.Get(c, createTokenUID())
	if err != nil {
		return "", myerrors.NewInternalError(fmt.Errorf("error fetching cached token: %s", err))
	}
	if exists && token.AccessToken != "" && now.Before(token.ExpiresAt) {
		return token.AccessToken, nil
	}

	s.logger.Log(c, "", mylog.SeverityInfo, "Cached platform token absent or expired, fetching a new one")

	tokenInfo, err := s.caller.GetAccessToken(c)
	if err != nil {
		return "", myerrors.NewInternalError(fmt.Errorf("error fetching platform token: %s", err))
	}

	lifetime := defaultTokenLifetime
	if tokenInfo.ExpiresIn > 0 {
		lifetime = time.Duration(tokenInfo.ExpiresIn) * time.Second
	}

	err = s.vault.Put(c, createTokenUID(), Token{
		AccessToken: tokenInfo.AccessToken,
		CreatedAt:   now,
		ExpiresAt:   now.Add(lifetime),
	})
	if err != nil {
		return "", myerrors.NewInternalError(fmt.Errorf("error caching platform token: %s", err))
	}

	return tokenInfo.AccessToken, nil
}
