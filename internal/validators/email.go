package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid reports whether the email's domain resolves,
// through MX records or a plain host lookup. Lookup failures count as
// invalid; registration wants a reachable mailbox, not best effort.
func IsEmailDomainValid(email string) bool {
	_, domain, found := strings.Cut(email, "@")
	if !found || domain == "" {
		return false
	}

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	ips, err := net.LookupIP(domain)
	return err == nil && len(ips) > 0
}
