package checkoutstripe

import (
	"context"
	"fmt"
	"net/url"

	"github.com/stripe/stripe-go/v76"

	"github.com/lulab/website-backend/lib/myerrors"
	"github.com/lulab/website-backend/lib/mylog"
	"github.com/lulab/website-backend/lib/mypublisher"
	"github.com/lulab/website-backend/lib/mystore"
	"github.com/lulab/website-backend/lib/mytime"
	"github.com/lulab/website-backend/services/checkoutevents"
)

type service struct {
	payer         Payer
	nower         mytime.Nower
	checkoutStore mystore.Store[CheckoutContext]
	publisher     mypublisher.Publisher
	logger        mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(apiKey string, payer Payer, nower mytime.Nower, checkoutStore mystore.Store[CheckoutContext], publisher mypublisher.Publisher) *service {
	payer.UseAPIKey(apiKey)
	return &service{
		payer:         payer,
		nower:         nower,
		checkoutStore: checkoutStore,
		publisher:     publisher,
		logger:        mylog.New("checkoutstripe"),
	}
}

func (s *service) CreateTopics(c context.Context) error {
	err := s.publisher.CreateTopic(c, checkoutevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", checkoutevents.TopicName, err)
	}

	return nil
}

// startCheckout opens a session on the hosted payment platform and remembers
// enough context to route the shopper back afterwards.
func (s *service) startCheckout(c context.Context, enrollment EnrollmentForm, params stripe.CheckoutSessionParams) (stripe.CheckoutSession, error) {
	now := s.nower.Now()

	s.logger.Log(c, enrollment.BasketUID, mylog.SeverityInfo, "Start checkout for basket %s", enrollment.BasketUID)

	sess, err := s.payer.CreateCheckoutSession(c, params)
	if err != nil {
		return stripe.CheckoutSession{}, myerrors.NewInvalidInputError(fmt.Errorf("error creating session: %s", err))
	}

	err = s.checkoutStore.RunInTransaction(c, func(c context.Context) error {
		// must be idempotent

		err := s.checkoutStore.Put(c, enrollment.BasketUID, CheckoutContext{
			BasketUID:         enrollment.BasketUID,
			CreatedAt:         now,
			OriginalReturnURL: enrollment.ReturnURL,
			ID:                sess.ID,
			ProductName:       enrollment.ProductName,
			AmountInCents:     enrollment.AmountInCents,
			Currency:          enrollment.Currency,
		})
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error storing checkout: %s", err))
		}

		err = s.publisher.Publish(c, checkoutevents.TopicName, checkoutevents.CheckoutStarted{
			ProviderName:  "stripe",
			CheckoutUID:   enrollment.BasketUID,
			AmountInCents: enrollment.AmountInCents,
			Currency:      enrollment.Currency,
			ShopperUID:    enrollment.Shopper.Email,
		})
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error publishing event: %s", err))
		}

		return nil
	})
	if err != nil {
		return stripe.CheckoutSession{}, err
	}

	return sess, nil
}

func (s *service) finalizeCheckout(c context.Context, basketUID string, status string) (string, error) {
	s.logger.Log(c, basketUID, mylog.SeverityInfo, "Checkout completed for basket %s -> %s", basketUID, status)

	now := s.nower.Now()

	adjustedReturnURL := ""
	err := s.checkoutStore.RunInTransaction(c, func(c context.Context) error {
		// must be idempotent

		checkoutContext, found, err := s.checkoutStore.Get(c, basketUID)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error fetching checkout with uid %s: %s", basketUID, err))
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("checkout with uid %s not found", basketUID))
		}

		checkoutContext.Status = status
		checkoutContext.LastModified = &now

		err = s.checkoutStore.Put(c, basketUID, checkoutContext)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		err = s.publisher.Publish(c, checkoutevents.TopicName, checkoutevents.CheckoutCompleted{
			ProviderName: "stripe",
			CheckoutUID:  basketUID,
			Status:       status,
			Success:      status == "success",
		})
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error publishing event: %s", err))
		}

		adjustedReturnURL, err = addStatusQueryParam(checkoutContext.OriginalReturnURL, status)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error adjusting url: %s", err))
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	return adjustedReturnURL, nil
}

func addStatusQueryParam(orgURL string, status string) (string, error) {
	u, err := url.Parse(orgURL)
	if err != nil {
		return "", fmt.Errorf("error parsing return-url %s: %s", orgURL, err)
	}
	params := u.Query()
	params.Set("status", status)
	u.RawQuery = params.Encode()
	return u.String(), nil
}
