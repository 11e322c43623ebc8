package forecast

import "net/url"

// Request is a fully resolved forecast request URL. It cannot be changed
// once built.
type Request struct {
	u        url.URL
	raw      string
	redacted string
}

// URL returns a copy of the request URL.
func (r Request) URL() *url.URL {
	u := r.u
	if r.u.User != nil {
		user := *r.u.User
		u.User = &user
	}
	return &u
}

func (r Request) String() string {
	return r.raw
}

// Redacted returns the URL with the API key replaced, safe for logs.
func (r Request) Redacted() string {
	return r.redacted
}
