package account

import (
	"net/http"
	"net/url"
	"strings"
)

// Page routes reachable without a session. API routes carry their own auth
// semantics and are never gated here.
var publicPaths = []string{
	"/",
	"/login",
	"/about",
	"/agreement.html",
	"/sitemap.xml",
}

var publicPrefixes = []string{
	"/bootcamp",
	"/checkout",
}

// RequireAuth redirects page requests without a valid session cookie to the
// login page, carrying the original URL as callbackUrl.
func (s *webService) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		cookie, err := r.Cookie(sessionCookieName)
		if err == nil {
			_, err = s.service.validateSessionToken(cookie.Value)
		}
		if err != nil {
			http.Redirect(w, r, "/login?callbackUrl="+url.QueryEscape(r.URL.RequestURI()), http.StatusFound)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func isPublicPath(path string) bool {
	if strings.HasPrefix(path, "/api/") {
		return true
	}

	path = stripLocalePrefix(path)

	for _, public := range publicPaths {
		if path == public {
			return true
		}
	}
	for _, prefix := range publicPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}

	return false
}

func stripLocalePrefix(path string) string {
	for _, locale := range []string{"/en", "/zh"} {
		if path == locale {
			return "/"
		}
		if strings.HasPrefix(path, locale+"/") {
			return strings.TrimPrefix(path, locale)
		}
	}
	return path
}
