package clientip

import (
	"net"
	"net/http"
	"strings"
)

// proxyHeaders lists the headers trusted in proxy mode, highest priority first.
var proxyHeaders = []string{
	"CF-Connecting-IP",
	"DO-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// GetIP returns the client's IP address from HTTP request, trusting
// proxy headers. Priority order:
// 1. CF-Connecting-IP (Cloudflare)
// 2. DO-Connecting-IP (DigitalOcean App Platform)
// 3. X-Forwarded-For (first valid IP)
// 4. X-Real-IP (Nginx reverse proxy)
// 5. RemoteAddr (direct connection fallback)
//
// Use it only when the server is reachable exclusively through a proxy
// that overwrites these headers; otherwise callers can spoof their address.
func GetIP(r *http.Request) string {
	for _, header := range proxyHeaders {
		value := r.Header.Get(header)
		if value == "" {
			continue
		}
		if header == "X-Forwarded-For" {
			for ip := range strings.SplitSeq(value, ",") {
				if parsed := parseIP(ip); parsed != "" {
					return parsed
				}
			}
			continue
		}
		if parsed := parseIP(value); parsed != "" {
			return parsed
		}
	}

	return RemoteIP(r)
}

// RemoteIP returns the IP of the direct TCP peer, ignoring every header.
// Returns an empty string if RemoteAddr holds no valid IP.
func RemoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr without a port, e.g. set by tests or unix sockets
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

// Resolve returns GetIP when trustProxy is set and RemoteIP otherwise.
func Resolve(r *http.Request, trustProxy bool) string {
	if trustProxy {
		return GetIP(r)
	}
	return RemoteIP(r)
}

// parseIP validates and normalizes an IP address string.
// Returns empty string if the IP is invalid.
func parseIP(ipStr string) string {
	ipStr = strings.TrimSpace(ipStr)
	if ipStr == "" {
		return ""
	}

	ip := net.ParseIP(ipStr)
	if ip == nil {
		return ""
	}

	return ip.String()
}
