package evidence

import (
	"sort"
	"strings"
)

// Reputation maps trusted domain substrings to publisher display names.
// Loaded once at startup and read-only thereafter; Lookup is pure.
type Reputation struct {
	domains []string          // Sorted for deterministic first-match
	names   map[string]string // Domain substring -> display name
}

// NewReputation builds a reputation table from a domain->name mapping
func NewReputation(trusted map[string]string) *Reputation {
	domains := make([]string, 0, len(trusted))
	names := make(map[string]string, len(trusted))
	for domain, name := range trusted {
		key := strings.ToLower(domain)
		domains = append(domains, key)
		names[key] = name
	}
	sort.Strings(domains)

	return &Reputation{domains: domains, names: names}
}

// Lookup returns the display name of the first trusted domain whose
// substring appears in the URL, case-insensitively.
func (r *Reputation) Lookup(url string) (string, bool) {
	lower := strings.ToLower(url)
	for _, domain := range r.domains {
		if strings.Contains(lower, domain) {
			return r.names[domain], true
		}
	}
	return "", false
}
