package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDetectLocale(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(r *http.Request)
		fallback string
		lookup   CountryLookup
		want     string
	}{
		{
			name: "x-locale overrides",
			setup: func(r *http.Request) {
				r.Header.Set("X-Locale", "ID")
				r.Header.Set("Accept-Language", "en-US")
			},
			want: "id",
		},
		{
			name: "accept-language used",
			setup: func(r *http.Request) {
				r.Header.Set("Accept-Language", "en-US,en;q=0.9")
			},
			want: "en-us",
		},
		{
			name:   "country lookup id",
			lookup: func(ip string) (string, error) { return "ID", nil },
			want:   "id",
		},
		{
			name:   "country lookup other",
			lookup: func(ip string) (string, error) { return "US", nil },
			want:   "en",
		},
		{
			name:   "lookup failure ignored",
			lookup: func(ip string) (string, error) { return "", errors.New("no database") },
			want:   "en",
		},
		{
			name:     "configured fallback",
			fallback: "id",
			want:     "id",
		},
		{
			name: "default to en",
			want: "en",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.setup != nil {
				tc.setup(req)
			}
			got := detectLocale(req, tc.fallback, tc.lookup)
			if got != tc.want {
				t.Fatalf("detectLocale() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestI18NStoresLocaleInContext(t *testing.T) {
	var got string
	handler := I18N("en", nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = LocaleFromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Locale", "id")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if got != "id" {
		t.Fatalf("locale in context = %q, want %q", got, "id")
	}
}
