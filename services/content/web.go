package content

import (
	"context"
	"embed"
	"encoding/xml"
	"html/template"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lulab/website-backend/lib/mycontext"
	"github.com/lulab/website-backend/lib/myerrors"
	"github.com/lulab/website-backend/lib/myhttp"
	"github.com/lulab/website-backend/lib/mylog"
	"github.com/lulab/website-backend/lib/mystore"
	"github.com/lulab/website-backend/lib/mytime"
)

type webService struct {
	service *service
	botID   string
	logger  mylog.Logger
}

func NewService(publicBotID string, bootcampStore mystore.Store[Bootcamp], trainingStore mystore.Store[Training], nower mytime.Nower) *webService {
	return &webService{
		service: newService(bootcampStore, trainingStore, nower),
		botID:   publicBotID,
		logger:  mylog.New("contentWeb"),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/", s.homePage()).Methods("GET")
	router.HandleFunc("/about", s.aboutPage()).Methods("GET")
	router.HandleFunc("/bootcamp", s.bootcampListPage()).Methods("GET")
	router.HandleFunc("/bootcamp/{uid}", s.bootcampDetailPage()).Methods("GET")
	router.HandleFunc("/training/{uid}", s.trainingDetailPage()).Methods("GET")
	router.HandleFunc("/login", s.loginPageForm()).Methods("GET")
	router.HandleFunc("/chat", s.chatPage()).Methods("GET")
	router.HandleFunc("/sitemap.xml", s.sitemapPage()).Methods("GET")

	return s.service.seed(c)
}

//go:embed templates
var templateFolder embed.FS
var (
	homePageTemplate           *template.Template
	aboutPageTemplate          *template.Template
	bootcampListPageTemplate   *template.Template
	bootcampDetailPageTemplate *template.Template
	trainingDetailPageTemplate *template.Template
	loginPageTemplate          *template.Template
	chatPageTemplate           *template.Template
)

func init() {
	homePageTemplate = template.Must(template.ParseFS(templateFolder, "templates/home.html"))
	aboutPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/about.html"))
	bootcampListPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/bootcamp_list.html"))
	bootcampDetailPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/bootcamp_detail.html"))
	trainingDetailPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/training_detail.html"))
	loginPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/login.html"))
	chatPageTemplate = template.Must(template.ParseFS(templateFolder, "templates/chat.html"))
}

func (s *webService) homePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)
		locale := LocaleFromContext(r.Context())

		bootcamps, err := s.service.listBootcamps(c, locale)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		s.renderPage(c, w, homePageTemplate, pageData{Locale: locale, Bootcamps: bootcamps})
	}
}

func (s *webService) aboutPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		locale := LocaleFromContext(r.Context())

		s.renderPage(c, w, aboutPageTemplate, pageData{Locale: locale})
	}
}

func (s *webService) bootcampListPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)
		locale := LocaleFromContext(r.Context())

		bootcamps, err := s.service.listBootcamps(c, locale)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		s.renderPage(c, w, bootcampListPageTemplate, pageData{Locale: locale, Bootcamps: bootcamps})
	}
}

func (s *webService) bootcampDetailPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)
		locale := LocaleFromContext(r.Context())

		bootcamp, err := s.service.getBootcamp(c, mux.Vars(r)["uid"], locale)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		s.renderPage(c, w, bootcampDetailPageTemplate, pageData{Locale: locale, Bootcamp: bootcamp})
	}
}

func (s *webService) trainingDetailPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)
		locale := LocaleFromContext(r.Context())

		training, err := s.service.getTraining(c, mux.Vars(r)["uid"], locale)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		s.renderPage(c, w, trainingDetailPageTemplate, pageData{Locale: locale, Training: training})
	}
}

func (s *webService) loginPageForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		locale := LocaleFromContext(r.Context())

		s.renderPage(c, w, loginPageTemplate, pageData{Locale: locale})
	}
}

func (s *webService) chatPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		locale := LocaleFromContext(r.Context())

		s.renderPage(c, w, chatPageTemplate, pageData{Locale: locale, BotID: s.botID})
	}
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc string `xml:"loc"`
}

func (s *webService) sitemapPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		locations, err := s.service.sitemapLocations(c, myhttp.HostnameWithScheme(r))
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		urlSet := sitemapURLSet{
			XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		}
		for _, location := range locations {
			urlSet.URLs = append(urlSet.URLs, sitemapURL{Loc: location})
		}

		w.Header().Set("Content-Type", "application/xml; charset=utf-8")
		w.Write([]byte(xml.Header))
		err = xml.NewEncoder(w).Encode(urlSet)
		if err != nil {
			s.logger.Log(c, "", mylog.SeverityError, "Error encoding sitemap: %s", err)
		}
	}
}

func (s *webService) renderPage(c context.Context, w http.ResponseWriter, tmpl *template.Template, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := tmpl.Execute(w, data)
	if err != nil {
		myhttp.NewWriter(s.logger).WriteError(c, w, 1, myerrors.NewInternalError(err))
	}
}
