package mycookie

import (
	"net/http"
	"time"
)

type httpJar struct {
	w      http.ResponseWriter
	r      *http.Request
	secure bool
}

// NewJar returns a jar that reads cookies from the request and writes them
// onto the response. Writes are not visible through Get within the same
// request.
func NewJar(w http.ResponseWriter, r *http.Request, secure bool) Jar {
	return &httpJar{
		w:      w,
		r:      r,
		secure: secure,
	}
}

func (j *httpJar) Get(name string) (string, bool) {
	cookie, err := j.r.Cookie(name)
	if err != nil {
		return "", false
	}
	return cookie.Value, true
}

func (j *httpJar) Set(name string, value string, maxAge time.Duration) {
	http.SetCookie(j.w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   j.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (j *httpJar) Delete(name string) {
	http.SetCookie(j.w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   j.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
