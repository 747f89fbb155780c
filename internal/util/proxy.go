// Package util holds shared fetch-side helpers: robots.txt compliance
// and proxy selection.
package util

import (
	"net/http"
	"net/url"
	"strings"
)

// NewProxyFunc returns the proxy selector for an HTTP transport.
// Explicit proxy URLs take precedence per scheme; hosts on the noProxy
// list (comma-separated, subdomains included) connect directly. With no
// explicit proxies the standard environment variables apply.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	return func(req *http.Request) (*url.URL, error) {
		if bypassProxy(req.URL.Hostname(), noProxy) {
			return nil, nil
		}
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}

// bypassProxy reports whether host matches a noProxy entry, exactly or
// as a subdomain.
func bypassProxy(host, noProxy string) bool {
	if host == "" || noProxy == "" {
		return false
	}
	for _, entry := range strings.Split(noProxy, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if host == entry || strings.HasSuffix(host, "."+entry) {
			return true
		}
	}
	return false
}
