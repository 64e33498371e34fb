package checkoutstripe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/mock/gomock"

	"github.com/lulab/website-backend/lib/mypublisher"
	"github.com/lulab/website-backend/lib/mystore"
	"github.com/lulab/website-backend/lib/mytime"
	"github.com/lulab/website-backend/services/checkoutevents"
)

var sessionResp = stripe.CheckoutSession{
	ID:           "cs_456",
	AmountTotal:  int64(99900),
	Currency:     "cny",
	URL:          "https://checkout.stripe.example/session",
	ClientSecret: "cs_secret_789",
}

func TestStartCheckout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx, router, storer, payer, nower, publisher := setup(t, ctrl)

	// given
	nower.EXPECT().Now().Return(mytime.ExampleTime)
	payer.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any()).DoAndReturn(
		func(c context.Context, params stripe.CheckoutSessionParams) (stripe.CheckoutSession, error) {
			assert.Equal(t, "123", *params.ClientReferenceID)
			assert.Equal(t, "cny", *params.Currency)
			assert.Equal(t, "AI Bootcamp", *params.LineItems[0].PriceData.ProductData.Name)
			assert.Equal(t, int64(99900), *params.LineItems[0].PriceData.UnitAmount)
			assert.Contains(t, *params.SuccessURL, "/checkout/completed/123?status=success")
			assert.Contains(t, *params.CancelURL, "/checkout/completed/123?status=cancel")
			return sessionResp, nil
		})
	publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, checkoutevents.CheckoutStarted{
		ProviderName:  "stripe",
		CheckoutUID:   "123",
		AmountInCents: 99900,
		Currency:      "cny",
		ShopperUID:    "student@example.com",
	}).Return(nil)

	// when
	request := httptest.NewRequest(http.MethodPost, "/api/checkout/session",
		strings.NewReader(`basketUid=123&amount=99900&currency=cny&productName=AI Bootcamp&shopper.email=student@example.com&shopper.locale=zh&returnUrl=http://localhost:8080/bootcamp/ai`))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	request.Host = "localhost:8080"
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	// then
	assert.Equal(t, 200, response.Code)
	assert.Contains(t, response.Body.String(), `"redirectUrl": "https://checkout.stripe.example/session"`)
	assert.Contains(t, response.Body.String(), `"clientSecret": "cs_secret_789"`)

	checkout, exists, err := storer.Get(ctx, "123")
	assert.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "cs_456", checkout.ID)
	assert.Equal(t, "http://localhost:8080/bootcamp/ai", checkout.OriginalReturnURL)
}

func TestStartCheckoutInvalidForm(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	_, router, _, _, _, _ := setup(t, ctrl)

	// missing amount and returnUrl
	request := httptest.NewRequest(http.MethodPost, "/api/checkout/session",
		strings.NewReader(`basketUid=123&currency=cny&productName=AI Bootcamp`))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	assert.Equal(t, 400, response.Code)
}

func TestStartCheckoutPayerFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	_, router, _, payer, nower, _ := setup(t, ctrl)

	nower.EXPECT().Now().Return(mytime.ExampleTime)
	payer.EXPECT().CreateCheckoutSession(gomock.Any(), gomock.Any()).Return(
		stripe.CheckoutSession{}, assert.AnError)

	request := httptest.NewRequest(http.MethodPost, "/api/checkout/session",
		strings.NewReader(`basketUid=123&amount=99900&currency=cny&productName=AI Bootcamp&returnUrl=http://localhost:8080/bootcamp/ai`))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	assert.Equal(t, 400, response.Code)
}

func TestCheckoutCompletedRedirect(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx, router, storer, _, nower, publisher := setup(t, ctrl)

	// given
	nower.EXPECT().Now().Return(mytime.ExampleTime)
	publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, checkoutevents.CheckoutCompleted{
		ProviderName: "stripe",
		CheckoutUID:  "123",
		Status:       "success",
		Success:      true,
	}).Return(nil)
	err := storer.Put(ctx, "123", CheckoutContext{
		BasketUID:         "123",
		CreatedAt:         mytime.ExampleTime.Add(-1 * time.Hour),
		OriginalReturnURL: "http://localhost:8080/bootcamp/ai",
		ID:                "cs_456",
	})
	assert.NoError(t, err)

	// when
	request := httptest.NewRequest(http.MethodGet, "/checkout/completed/123?status=success", nil)
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	// then
	assert.Equal(t, 303, response.Code)
	assert.Equal(t, "http://localhost:8080/bootcamp/ai?status=success", response.Header().Get("Location"))

	checkout, exists, err := storer.Get(ctx, "123")
	assert.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "success", checkout.Status)
}

func TestCheckoutCompletedCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx, router, storer, _, nower, publisher := setup(t, ctrl)

	nower.EXPECT().Now().Return(mytime.ExampleTime)
	publisher.EXPECT().Publish(gomock.Any(), checkoutevents.TopicName, checkoutevents.CheckoutCompleted{
		ProviderName: "stripe",
		CheckoutUID:  "123",
		Status:       "cancel",
		Success:      false,
	}).Return(nil)
	err := storer.Put(ctx, "123", CheckoutContext{
		BasketUID:         "123",
		OriginalReturnURL: "http://localhost:8080/bootcamp/ai",
	})
	assert.NoError(t, err)

	request := httptest.NewRequest(http.MethodGet, "/checkout/completed/123?status=cancel", nil)
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	assert.Equal(t, 303, response.Code)
	assert.Equal(t, "http://localhost:8080/bootcamp/ai?status=cancel", response.Header().Get("Location"))
}

func TestCheckoutCompletedUnknownBasket(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	_, router, _, _, nower, _ := setup(t, ctrl)

	nower.EXPECT().Now().Return(mytime.ExampleTime)

	request := httptest.NewRequest(http.MethodGet, "/checkout/completed/unknown", nil)
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)

	assert.Equal(t, 404, response.Code)
}

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *mux.Router, mystore.Store[CheckoutContext], *MockPayer, *mytime.MockNower, *mypublisher.MockPublisher) {
	c := context.TODO()
	storer, _, err := mystore.New[CheckoutContext](c)
	assert.NoError(t, err)
	payer := NewMockPayer(ctrl)
	nower := mytime.NewMockNower(ctrl)
	publisher := mypublisher.NewMockPublisher(ctrl)

	payer.EXPECT().UseAPIKey("my_api_key")
	publisher.EXPECT().CreateTopic(gomock.Any(), checkoutevents.TopicName).Return(nil)

	sut := NewWebService("my_api_key", payer, nower, storer, publisher)
	router := mux.NewRouter()

	err = sut.RegisterEndpoints(c, router)
	assert.NoError(t, err)

	return c, router, storer, payer, nower, publisher
}
