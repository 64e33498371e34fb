package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/lulab/website-backend/lib/myerrors"
	"github.com/lulab/website-backend/lib/mylog"
	"github.com/lulab/website-backend/lib/mystore"
	"github.com/lulab/website-backend/lib/mytime"
)

type service struct {
	signingSecret []byte
	accountStore  mystore.Store[Account]
	nower         mytime.Nower
	logger        mylog.Logger
}

func newService(signingSecret string, accountStore mystore.Store[Account], nower mytime.Nower) *service {
	return &service{
		signingSecret: []byte(signingSecret),
		accountStore:  accountStore,
		nower:         nower,
		logger:        mylog.New("account"),
	}
}

// provisionAccount upserts an account with a freshly hashed password. Used at
// startup to seed the admin user from the environment.
func (s *service) provisionAccount(c context.Context, email, password, role string) error {
	if email == "" || password == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error hashing password: %s", err))
	}

	uid := accountUID(email)
	err = s.accountStore.Put(c, uid, Account{
		UID:          uid,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    s.nower.Now(),
	})
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error storing account: %s", err))
	}

	s.logger.Log(c, uid, mylog.SeverityInfo, "Provisioned account %s with role %s", uid, role)

	return nil
}

func (s *service) login(c context.Context, email, password string) (Account, string, error) {
	if email == "" || password == "" {
		return Account{}, "", myerrors.NewInvalidInputErrorf("missing email or password")
	}

	uid := accountUID(email)

	account, exists, err := s.accountStore.Get(c, uid)
	if err != nil {
		return Account{}, "", myerrors.NewInternalError(fmt.Errorf("error fetching account %s: %s", uid, err))
	}
	if !exists {
		return Account{}, "", myerrors.NewNotAuthenticatedError(fmt.Errorf("unknown account"))
	}

	err = bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password))
	if err != nil {
		s.logger.Log(c, uid, mylog.SeverityWarn, "Password mismatch for account %s", uid)
		return Account{}, "", myerrors.NewNotAuthenticatedError(fmt.Errorf("invalid credentials"))
	}

	token, err := s.createSessionToken(account)
	if err != nil {
		return Account{}, "", err
	}

	s.logger.Log(c, uid, mylog.SeverityInfo, "Account %s logged in", uid)

	return account, token, nil
}

func (s *service) createSessionToken(account Account) (string, error) {
	now := s.nower.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   account.UID,
		"email": account.Email,
		"role":  account.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(sessionMaxAge).Unix(),
	})

	signed, err := token.SignedString(s.signingSecret)
	if err != nil {
		return "", myerrors.NewInternalError(fmt.Errorf("error signing session token: %s", err))
	}

	return signed, nil
}

func (s *service) validateSessionToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.signingSecret, nil
		},
		jwt.WithTimeFunc(s.nower.Now),
	)
	if err != nil {
		return "", myerrors.NewNotAuthenticatedError(fmt.Errorf("invalid session token: %s", err))
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", myerrors.NewNotAuthenticatedError(fmt.Errorf("invalid session claims"))
	}

	uid, _ := claims["sub"].(string)
	if uid == "" {
		return "", myerrors.NewNotAuthenticatedError(fmt.Errorf("session token without subject"))
	}

	return uid, nil
}

func accountUID(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
