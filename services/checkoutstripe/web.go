package checkoutstripe

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/stripe/stripe-go/v76"

	"github.com/lulab/website-backend/lib/mycontext"
	"github.com/lulab/website-backend/lib/myerrors"
	"github.com/lulab/website-backend/lib/myhttp"
	"github.com/lulab/website-backend/lib/mylog"
	"github.com/lulab/website-backend/lib/mypublisher"
	"github.com/lulab/website-backend/lib/mystore"
	"github.com/lulab/website-backend/lib/mytime"
)

type webService struct {
	service *service
	logger  mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewWebService(apiKey string, payer Payer, nower mytime.Nower, checkoutStore mystore.Store[CheckoutContext], publisher mypublisher.Publisher) *webService {
	return &webService{
		service: newService(apiKey, payer, nower, checkoutStore, publisher),
		logger:  mylog.New("checkoutstripe"),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/checkout/session", s.startCheckoutPage()).Methods("POST")
	router.HandleFunc("/checkout/completed/{basketUID}", s.checkoutCompletedPage()).Methods("GET")

	err := s.service.CreateTopics(c)
	if err != nil {
		return err
	}

	return nil
}

func (s *webService) startCheckoutPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		enrollment, err := NewEnrollmentFormFromRequest(r)
		if err != nil {
			errorWriter.WriteError(c, w, 1, myerrors.NewInvalidInputError(fmt.Errorf("error parsing request: %s", err)))
			return
		}

		err = enrollment.Validate()
		if err != nil {
			errorWriter.WriteError(c, w, 2, myerrors.NewInvalidInputError(err))
			return
		}

		sess, err := s.service.startCheckout(c, enrollment, composeSessionParams(r, enrollment))
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, checkoutStartedResponse{
			Success:      true,
			BasketUID:    enrollment.BasketUID,
			RedirectURL:  sess.URL,
			ClientSecret: sess.ClientSecret,
		})
	}
}

func (s *webService) checkoutCompletedPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		basketUID := mux.Vars(r)["basketUID"]
		status := r.URL.Query().Get("status")
		if status == "" {
			status = "success"
		}

		redirectURL, err := s.service.finalizeCheckout(c, basketUID, status)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		http.Redirect(w, r, redirectURL, http.StatusSeeOther)
	}
}

func composeSessionParams(r *http.Request, enrollment EnrollmentForm) stripe.CheckoutSessionParams {
	completionURL := func(status string) *string {
		return stripe.String(fmt.Sprintf("%s/checkout/completed/%s?status=%s",
			myhttp.HostnameWithScheme(r), enrollment.BasketUID, status))
	}

	return stripe.CheckoutSessionParams{
		Params: stripe.Params{
			Metadata: map[string]string{
				"basketUID": enrollment.BasketUID,
			},
		},
		SuccessURL:        completionURL("success"),
		CancelURL:         completionURL("cancel"),
		ClientReferenceID: stripe.String(enrollment.BasketUID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(enrollment.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(enrollment.ProductName),
						Description: stripe.String(enrollment.ProductDescription),
					},
					UnitAmount: stripe.Int64(enrollment.AmountInCents),
				},
				Quantity: stripe.Int64(1),
			},
		},
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		Currency:      stripe.String(enrollment.Currency),
		CustomerEmail: stripe.String(enrollment.Shopper.Email),
		Locale:        stripe.String(enrollment.Shopper.Locale),
	}
}
