package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lulab/website-backend/config"
	"github.com/lulab/website-backend/lib/mypublisher"
	"github.com/lulab/website-backend/lib/mypubsub"
	"github.com/lulab/website-backend/lib/myqueue"
	"github.com/lulab/website-backend/lib/mystore"
	"github.com/lulab/website-backend/lib/mytime"
	"github.com/lulab/website-backend/lib/myuuid"
	"github.com/lulab/website-backend/lib/myvault"
	"github.com/lulab/website-backend/services/account"
	"github.com/lulab/website-backend/services/chatproxy"
	"github.com/lulab/website-backend/services/checkoutstripe"
	"github.com/lulab/website-backend/services/commerce"
	"github.com/lulab/website-backend/services/content"
	"github.com/lulab/website-backend/services/cozeauth"
	"github.com/lulab/website-backend/services/cozeauth/cozeclient"
)

func main() {
	c := context.Background()

	cfg, err := config.Parse()
	if err != nil {
		log.Fatalf("Error parsing configuration: %s", err)
	}

	nower := mytime.RealNower{}
	uuider := myuuid.RealUUIDer{}

	router := mux.NewRouter()

	publisher, publisherCleanup := createPublisher(c, router, nower)
	defer publisherCleanup()

	cozeauthCleanup := createCozeAuthService(c, router, cfg, uuider, publisher)
	defer cozeauthCleanup()

	createChatProxyService(c, router, cfg, uuider)

	checkoutCleanup := createCheckoutService(c, router, cfg, nower, publisher)
	defer checkoutCleanup()

	commerceCleanup := createCommerceService(c, router, cfg, nower)
	defer commerceCleanup()

	requireAuth, accountCleanup := createAccountService(c, router, cfg, nower)
	defer accountCleanup()

	contentCleanup := createContentService(c, router, cfg, nower)
	defer contentCleanup()

	handler := requireAuth(content.Localize(router))

	startWebServerBlocking(cfg.Port, handler)
}

func createPublisher(c context.Context, router *mux.Router, nower mytime.Nower) (mypublisher.Publisher, func()) {
	pubsub, pubsubCleanup, err := mypubsub.New(c)
	if err != nil {
		log.Fatalf("Error creating pubsub: %s", err)
	}

	queue, queueCleanup, err := myqueue.New(c)
	if err != nil {
		log.Fatalf("Error creating task queue: %s", err)
	}

	publisher, publisherCleanup, err := mypublisher.New(c, pubsub, queue, nower)
	if err != nil {
		log.Fatalf("Error creating publisher: %s", err)
	}
	publisher.RegisterEndpoints(c, router)

	return publisher, func() {
		publisherCleanup()
		queueCleanup()
		pubsubCleanup()
	}
}

func createCozeAuthService(c context.Context, router *mux.Router, cfg config.Config, uuider myuuid.UUIDer, publisher mypublisher.Publisher) func() {
	oauthClient := cozeclient.NewOauthClient(cozeclient.Config{
		ClientID:     cfg.CozeClientID,
		ClientSecret: cfg.CozeClientSecret,
		RedirectURI:  cfg.CozeRedirectURI,
		AuthURL:      cfg.CozeAuthURL,
		TokenURL:     cfg.CozeTokenURL,
		UserInfoURL:  cfg.CozeUserInfoURL,
	})

	cozeauthService := cozeauth.NewService(cfg.CozeClientID, cfg.Production, oauthClient, uuider, publisher)
	err := cozeauthService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering cozeauth service: %s", err)
	}

	return func() {}
}

func createChatProxyService(c context.Context, router *mux.Router, cfg config.Config, uuider myuuid.UUIDer) {
	chatCaller := chatproxy.NewChatCaller(cfg.CozeAPIBase)

	chatproxyService := chatproxy.NewService(cfg.CozeBotID, cfg.AllowedOrigins, cfg.Production, chatCaller, uuider)
	err := chatproxyService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering chatproxy service: %s", err)
	}
}

func createCheckoutService(c context.Context, router *mux.Router, cfg config.Config, nower mytime.Nower, publisher mypublisher.Publisher) func() {
	checkoutStore, storeCleanup, err := mystore.New[checkoutstripe.CheckoutContext](c)
	if err != nil {
		log.Fatalf("Error creating checkout store: %s", err)
	}

	checkoutService := checkoutstripe.NewWebService(cfg.StripeAPIKey, checkoutstripe.NewPayer(), nower, checkoutStore, publisher)
	err = checkoutService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering checkout service: %s", err)
	}

	return storeCleanup
}

func createCommerceService(c context.Context, router *mux.Router, cfg config.Config, nower mytime.Nower) func() {
	vault, vaultCleanup, err := myvault.New[commerce.Token](c)
	if err != nil {
		log.Fatalf("Error creating commerce vault: %s", err)
	}

	caller := commerce.NewXiaoeCaller(cfg.XiaoeAPIBase, cfg.XiaoeAppID, cfg.XiaoeClientID, cfg.XiaoeSecretKey)

	commerceService := commerce.NewService(cfg.AllowedOrigins, caller, vault, nower)
	err = commerceService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering commerce service: %s", err)
	}

	return vaultCleanup
}

func createAccountService(c context.Context, router *mux.Router, cfg config.Config, nower mytime.Nower) (func(http.Handler) http.Handler, func()) {
	accountStore, storeCleanup, err := mystore.New[account.Account](c)
	if err != nil {
		log.Fatalf("Error creating account store: %s", err)
	}

	accountService := account.NewService(cfg.SessionSecret, cfg.Production, accountStore, nower)
	err = accountService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering account service: %s", err)
	}

	err = accountService.ProvisionAdmin(c, cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		log.Fatalf("Error provisioning admin account: %s", err)
	}

	return accountService.RequireAuth, storeCleanup
}

func createContentService(c context.Context, router *mux.Router, cfg config.Config, nower mytime.Nower) func() {
	bootcampStore, bootcampCleanup, err := mystore.New[content.Bootcamp](c)
	if err != nil {
		log.Fatalf("Error creating bootcamp store: %s", err)
	}

	trainingStore, trainingCleanup, err := mystore.New[content.Training](c)
	if err != nil {
		log.Fatalf("Error creating training store: %s", err)
	}

	contentService := content.NewService(cfg.PublicCozeBotID, bootcampStore, trainingStore, nower)
	err = contentService.RegisterEndpoints(c, router)
	if err != nil {
		log.Fatalf("Error registering content service: %s", err)
	}

	return func() {
		trainingCleanup()
		bootcampCleanup()
	}
}

func startWebServerBlocking(port string, handler http.Handler) {
	log.Printf("Starting webserver on port %s (try http://localhost:%s)", port, port)
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), handler)
	if err != nil {
		log.Fatalf("Error starting webserver on port %s: %s", port, err)
	}
}
