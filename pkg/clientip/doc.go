// Package clientip extracts the originating client's IP address from an
// *http.Request.
//
// Two modes are supported. RemoteIP uses only the TCP peer address and is
// the safe default for servers exposed directly. GetIP additionally
// trusts proxy headers in this order:
//
//  1. CF-Connecting-IP
//  2. DO-Connecting-IP
//  3. X-Forwarded-For (first valid IP)
//  4. X-Real-IP
//  5. RemoteAddr
//
// Middleware resolves the address once per request and stores it in the
// context; GetIPFromContext and FromRequest read it back.
//
//	r.Use(clientip.Middleware(
//	    clientip.WithTrustProxy(cfg.TrustProxy),
//	    clientip.WithFallback("127.0.0.1"),
//	))
//
// Neither GetIP nor RemoteIP returns an error. If no valid address is
// found an empty string is returned so callers can decide how to proceed.
package clientip
