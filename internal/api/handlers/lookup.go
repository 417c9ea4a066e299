package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/likexian/whois"
	"github.com/miekg/dns"
)

// Whois runs an opaque WHOIS lookup and scrapes a couple of well-known
// lines out of the raw text. No WHOIS parsing beyond that.
func (h *Handler) Whois(c *gin.Context) {
	domain := cleanDomain(c.Param("domain"))
	if domain == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "domain is required"})
		return
	}

	raw, err := whois.Whois(domain)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "WHOIS lookup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"domain":    domain,
		"registrar": scrapeLine(raw, "Registrar:"),
		"expiry":    scrapeLine(raw, "Registry Expiry Date:"),
		"raw":       raw,
	})
}

// DNSLookup answers whether a candidate already resolves, a cheap hint
// that the name is taken before spending a registrar call on it.
func (h *Handler) DNSLookup(c *gin.Context) {
	domain := cleanDomain(c.Param("domain"))
	if domain == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "domain is required"})
		return
	}

	client := new(dns.Client)
	client.Timeout = 5 * time.Second

	var aRecords, nsRecords []string

	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(domain), dns.TypeA)
	if r, _, err := client.Exchange(msg, "8.8.8.8:53"); err == nil && r.Rcode == dns.RcodeSuccess {
		for _, ans := range r.Answer {
			if a, ok := ans.(*dns.A); ok {
				aRecords = append(aRecords, a.A.String())
			}
		}
	}

	msg = new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(domain), dns.TypeNS)
	if r, _, err := client.Exchange(msg, "8.8.8.8:53"); err == nil && r.Rcode == dns.RcodeSuccess {
		for _, ans := range r.Answer {
			if ns, ok := ans.(*dns.NS); ok {
				nsRecords = append(nsRecords, ns.Ns)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"domain":     domain,
		"resolves":   len(aRecords) > 0 || len(nsRecords) > 0,
		"a_records":  aRecords,
		"ns_records": nsRecords,
	})
}

func cleanDomain(domain string) string {
	domain = strings.TrimSpace(strings.ToLower(domain))
	domain = strings.TrimPrefix(domain, "http://")
	domain = strings.TrimPrefix(domain, "https://")
	return strings.Split(domain, "/")[0]
}

func scrapeLine(raw, prefix string) string {
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(strings.ToLower(line), strings.ToLower(prefix)) {
			return strings.TrimSpace(line[len(prefix):])
		}
	}
	return ""
}
