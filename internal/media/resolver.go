// Package media rewrites backend-relative image paths to absolute URLs.
package media

import (
	"net/url"
	"strings"

	"kitstore/internal/domain"
)

const bypassParam = "ngrok-skip-browser-warning"

// ResolveURL makes path absolute against base. Already-absolute URLs pass
// through untouched except for the ngrok bypass parameter.
func ResolveURL(base, path string) string {
	if path == "" {
		return path
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return appendNgrokBypass(path)
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return path
	}
	ref, err := url.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return path
	}
	return appendNgrokBypass(baseURL.ResolveReference(ref).String())
}

// NormalizeProduct rewrites the primary image and every gallery entry of p
// in place.
func NormalizeProduct(base string, p *domain.Product) {
	if p == nil {
		return
	}
	p.ImageURL = ResolveURL(base, p.ImageURL)
	for i, img := range p.Gallery {
		p.Gallery[i] = ResolveURL(base, img)
	}
}

// Ngrok free-tier hosts interpose a browser warning page unless the request
// carries a skip parameter.
func appendNgrokBypass(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if !strings.HasSuffix(parsed.Hostname(), "ngrok-free.app") {
		return raw
	}
	q := parsed.Query()
	if q.Has(bypassParam) {
		return raw
	}
	q.Set(bypassParam, "true")
	parsed.RawQuery = q.Encode()
	return parsed.String()
}
