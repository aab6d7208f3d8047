package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

const dnsTimeout = 3 * time.Second

// IsEmailDomainValid checa a forma básica do e-mail e se o domínio resolve
// (MX ou, na falta, A/AAAA). A consulta DNS tem timeout curto; resolver fora
// do ar não pode travar o cadastro.
func IsEmailDomainValid(email string) bool {
	email = strings.TrimSpace(strings.ToLower(email))

	at := strings.LastIndex(email, "@")
	if at < 1 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]
	if !strings.Contains(domain, ".") {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), dnsTimeout)
	defer cancel()

	var resolver net.Resolver

	if mx, err := resolver.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := resolver.LookupIP(ctx, "ip", domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
