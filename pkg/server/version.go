package server

import (
	"net/http"
	"strings"
)

const (
	// DefaultAPIVersion is served when the client does not ask for one.
	DefaultAPIVersion = "v1"

	// HeaderAPIVersion reports the API version used for a reply.
	HeaderAPIVersion = "X-API-Version"

	vendorMediaPrefix = "application/vnd.bandex."
	vendorMediaSuffix = "+json"
)

var supportedAPIVersions = []string{"v1"}

// negotiateAPIVersion reads the version from an Accept header of the form
// application/vnd.bandex.<version>+json, falling back to DefaultAPIVersion.
func negotiateAPIVersion(r *http.Request) string {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		media, _, _ := strings.Cut(strings.TrimSpace(part), ";")
		rest, ok := strings.CutPrefix(media, vendorMediaPrefix)
		if !ok {
			continue
		}
		v, ok := strings.CutSuffix(rest, vendorMediaSuffix)
		if ok && isValidAPIVersion(v) {
			return v
		}
	}
	return DefaultAPIVersion
}

func isValidAPIVersion(v string) bool {
	for _, s := range supportedAPIVersions {
		if v == s {
			return true
		}
	}
	return false
}

func (s *Server) versionMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(HeaderAPIVersion, negotiateAPIVersion(r))
		next(w, r)
	}
}
