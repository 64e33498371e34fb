package content

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

type localeContextKey struct{}

var languageMatcher = language.NewMatcher([]language.Tag{
	language.Chinese, // first entry is the fallback
	language.English,
})

// LocaleFromContext returns the locale resolved by the Localize middleware,
// or the default when none was resolved.
func LocaleFromContext(c context.Context) Locale {
	if locale, ok := c.Value(localeContextKey{}).(Locale); ok {
		return locale
	}
	return defaultLocale
}

// Localize resolves the request locale and strips the locale path prefix so
// that page routes are registered once. An explicit /en or /zh prefix wins
// over Accept-Language negotiation.
func Localize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		locale, remainder, found := localeFromPath(r.URL.Path)
		if found {
			r.URL.Path = remainder
		} else {
			locale = negotiateLocale(r.Header.Get("Accept-Language"))
		}

		c := context.WithValue(r.Context(), localeContextKey{}, locale)
		next.ServeHTTP(w, r.WithContext(c))
	})
}

func localeFromPath(path string) (Locale, string, bool) {
	for _, locale := range supportedLocales {
		prefix := "/" + string(locale)
		if path == prefix {
			return locale, "/", true
		}
		if strings.HasPrefix(path, prefix+"/") {
			return locale, strings.TrimPrefix(path, prefix), true
		}
	}
	return defaultLocale, path, false
}

func negotiateLocale(acceptLanguage string) Locale {
	if acceptLanguage == "" {
		return defaultLocale
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil {
		return defaultLocale
	}

	_, index, _ := languageMatcher.Match(tags...)
	if index == 1 {
		return LocaleEN
	}
	return LocaleZH
}
