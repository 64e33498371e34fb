package cozeclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	httpClientTimeout = 5 * time.Second
)

type httpSender interface {
	SendForm(c context.Context, url string, body []byte) (int, []byte, error)
	GetWithBearer(c context.Context, url string, token string) (int, []byte, error)
}

type httpOAuthClient struct {
	client *http.Client
}

func newHTTPClient() *httpOAuthClient {
	return &httpOAuthClient{
		client: &http.Client{
			Timeout: httpClientTimeout,
		},
	}
}

func (c httpOAuthClient) SendForm(ctx context.Context, url string, body []byte) (int, []byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, []byte{}, fmt.Errorf("error creating http request for %s: %s", url, err)
	}

	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")

	return c.do(httpReq)
}

func (c httpOAuthClient) GetWithBearer(ctx context.Context, url string, token string) (int, []byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, []byte{}, fmt.Errorf("error creating http request for %s: %s", url, err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Accept", "application/json")

	return c.do(httpReq)
}

func (c httpOAuthClient) do(httpReq *http.Request) (int, []byte, error) {
	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return 0, []byte{}, fmt.Errorf("error calling %s %s: %s", httpReq.Method, httpReq.URL, err)
	}
	defer httpResp.Body.Close()

	respPayload, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return 0, []byte{}, fmt.Errorf("error reading response of %s %s: %s", httpReq.Method, httpReq.URL, err)
	}

	return httpResp.StatusCode, respPayload, nil
}
