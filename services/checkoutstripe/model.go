package checkoutstripe

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	formcodec "github.com/go-playground/form/v4"

	"github.com/lulab/website-backend/lib/myerrors"
)

// EnrollmentForm is the browser-submitted payload that starts a checkout for
// one bootcamp or training enrollment.
type EnrollmentForm struct {
	BasketUID          string `form:"basketUid"`
	AmountInCents      int64  `form:"amount"`
	Currency           string `form:"currency"`
	ProductName        string  `form:"productName"`
	ProductDescription string  `form:"productDescription"`
	Shopper            Shopper `form:"shopper"`
	ReturnURL          string  `form:"returnUrl"`
}

type Shopper struct {
	Email  string `form:"email"`
	Locale string `form:"locale"`
}

func NewEnrollmentFormFromRequest(r *http.Request) (EnrollmentForm, error) {
	err := r.ParseForm()
	if err != nil {
		return EnrollmentForm{}, myerrors.NewInvalidInputError(err)
	}
	return newEnrollmentFormFromValues(r.Form)
}

func newEnrollmentFormFromValues(values url.Values) (EnrollmentForm, error) {
	enrollment := EnrollmentForm{}
	err := formcodec.NewDecoder().Decode(&enrollment, values)
	if err != nil {
		return enrollment, fmt.Errorf("error decoding form: %s", err)
	}

	return enrollment, nil
}

func (f EnrollmentForm) Validate() error {
	if f.BasketUID == "" {
		return fmt.Errorf("missing basketUid")
	}
	if f.AmountInCents <= 0 {
		return fmt.Errorf("invalid amount %d", f.AmountInCents)
	}
	if f.Currency == "" {
		return fmt.Errorf("missing currency")
	}
	if f.ProductName == "" {
		return fmt.Errorf("missing productName")
	}
	if f.ReturnURL == "" {
		return fmt.Errorf("missing returnUrl")
	}
	return nil
}

// CheckoutContext is what we must remember between starting a checkout and
// the shopper returning from the hosted payment page.
type CheckoutContext struct {
	BasketUID         string
	CreatedAt         time.Time
	LastModified      *time.Time
	OriginalReturnURL string
	ID                string
	ProductName       string
	AmountInCents     int64
	Currency          string
	Status            string
}

type checkoutStartedResponse struct {
	Success      bool   `json:"success"`
	BasketUID    string `json:"basketUid"`
	RedirectURL  string `json:"redirectUrl"`
	ClientSecret string `json:"clientSecret,omitempty"`
}
