// Package httpkit provides HTTP utilities including caller identity
// derivation for rate limiting.
package httpkit

import (
	"net"

	"github.com/gin-gonic/gin"
)

// UnknownIdentity is the sentinel bucket shared by every caller whose network
// origin cannot be established. Unidentifiable callers throttling each other
// is an intentional conservative tightening, not a bug.
const UnknownIdentity = "unknown"

// CallerIdentity derives the rate-limit identity from the most trustworthy
// available network origin. Gin's ClientIP already walks the trusted proxy
// headers; we only accept values that survive an IPv4/IPv6 shape check.
func CallerIdentity(c *gin.Context) string {
	ip := c.ClientIP()
	if ip == "" {
		return UnknownIdentity
	}
	if net.ParseIP(ip) == nil {
		return UnknownIdentity
	}
	return ip
}
