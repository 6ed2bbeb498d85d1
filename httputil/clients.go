package httputil

import (
	"crypto/tls"
	"net/http"
	"net/url"
	"time"
)

// NewScrapingClient builds the client used for all requests against the
// listing site. When a proxy is configured, HTTP/2 is disabled because most
// scraping proxies mangle it.
func NewScrapingClient(proxyURL string, timeout time.Duration) *http.Client {
	client := &http.Client{Timeout: timeout}

	if proxyURL != "" {
		proxy, err := url.Parse(proxyURL)
		if err == nil {
			client.Transport = &http.Transport{
				Proxy:             http.ProxyURL(proxy),
				ForceAttemptHTTP2: false,
				TLSNextProto:      make(map[string]func(string, *tls.Conn) http.RoundTripper),
			}
		}
	}

	return client
}
