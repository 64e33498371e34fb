package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	httpClientTimeout = 5 * time.Second
)

type TokenInfo struct {
	AccessToken string
	ExpiresIn   int
}

//go:generate mockgen -source=client.go -package commerce -destination client_mock.go XiaoeCaller
type XiaoeCaller interface {
	GetAccessToken(c context.Context) (TokenInfo, error)
	GetGoodsDetail(c context.Context, accessToken string, resourceID string) (json.RawMessage, error)
}

type xiaoeCaller struct {
	apiBase   string
	appID     string
	clientID  string
	secretKey string
	client    *http.Client
}

func NewXiaoeCaller(apiBase string, appID string, clientID string, secretKey string) *xiaoeCaller {
	return &xiaoeCaller{
		apiBase:   apiBase,
		appID:     appID,
		clientID:  clientID,
		secretKey: secretKey,
		client: &http.Client{
			Timeout: httpClientTimeout,
		},
	}
}

// GetAccessToken fetches a client_credential token. The platform wraps its
// responses in a {code, msg, data} envelope.
func (xc xiaoeCaller) GetAccessToken(c context.Context) (TokenInfo, error) {
	tokenURL := xc.apiBase + "/token?" + url.Values{
		"app_id":     {xc.appID},
		"client_id":  {xc.clientID},
		"secret_key": {xc.secretKey},
		"grant_type": {"client_credential"},
	}.Encode()

	httpReq, err := http.NewRequestWithContext(c, http.MethodGet, tokenURL, nil)
	if err != nil {
		return TokenInfo{}, fmt.Errorf("error creating http request: %s", err)
	}

	respPayload, err := xc.do(httpReq)
	if err != nil {
		return TokenInfo{}, fmt.Errorf("error calling token-endpoint: %s", err)
	}

	envelope := struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
		Data struct {
			AccessToken string `json:"access_token"`
			ExpiresIn   int    `json:"expires_in"`
		} `json:"data"`
	}{}
	err = json.Unmarshal(respPayload, &envelope)
	if err != nil {
		return TokenInfo{}, fmt.Errorf("error parsing token-response: %s", err)
	}

	if envelope.Data.AccessToken == "" {
		return TokenInfo{}, fmt.Errorf("token-response lacks an access-token (code %d: %s)", envelope.Code, envelope.Msg)
	}

	return TokenInfo{
		AccessToken: envelope.Data.AccessToken,
		ExpiresIn:   envelope.Data.ExpiresIn,
	}, nil
}

func (xc xiaoeCaller) GetGoodsDetail(c context.Context, accessToken string, resourceID string) (json.RawMessage, error) {
	requestBody, err := json.Marshal(map[string]interface{}{
		"access_token": accessToken,
		"resources":    []string{resourceID},
		"body":         "stock,sku,attr",
	})
	if err != nil {
		return nil, fmt.Errorf("error composing goods request: %s", err)
	}

	goodsURL := xc.apiBase + "/xe.goods.detail.get/4.0.0"
	httpReq, err := http.NewRequestWithContext(c, http.MethodPost, goodsURL, bytes.NewReader(requestBody))
	if err != nil {
		return nil, fmt.Errorf("error creating http request: %s", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	respPayload, err := xc.do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error calling goods-endpoint: %s", err)
	}

	return respPayload, nil
}

func (xc xiaoeCaller) do(httpReq *http.Request) ([]byte, error) {
	httpResp, err := xc.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error calling %s %s: %s", httpReq.Method, httpReq.URL.Path, err)
	}
	defer httpResp.Body.Close()

	respPayload, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %s", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d (%s)", httpResp.StatusCode, string(respPayload))
	}

	return respPayload, nil
}
