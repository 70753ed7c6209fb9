package domain

import "sort"

// Credentials is an immutable set of provider credentials keyed by provider name.
// The client keeps them for the caller; no request ever transmits them.
type Credentials struct {
	keys map[ProviderType]string
}

// NewCredentials copies the given map, normalizing provider names and
// dropping empty values.
func NewCredentials(keys map[string]string) Credentials {
	c := Credentials{keys: make(map[ProviderType]string, len(keys))}
	for name, key := range keys {
		if key == "" {
			continue
		}
		c.keys[ProviderType(name).Normalize()] = key
	}
	return c
}

// Get returns the credential for a provider.
func (c Credentials) Get(provider ProviderType) (string, bool) {
	key, ok := c.keys[provider.Normalize()]
	return key, ok
}

// Has reports whether a credential is configured for the provider.
func (c Credentials) Has(provider ProviderType) bool {
	_, ok := c.Get(provider)
	return ok
}

// Len returns the number of configured credentials.
func (c Credentials) Len() int {
	return len(c.keys)
}

// Providers returns the configured provider names, sorted.
func (c Credentials) Providers() []ProviderType {
	out := make([]ProviderType, 0, len(c.keys))
	for p := range c.keys {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Values returns every credential value. Used to seed log redaction.
func (c Credentials) Values() []string {
	out := make([]string, 0, len(c.keys))
	for _, p := range c.Providers() {
		out = append(out, c.keys[p])
	}
	return out
}

// Map returns a copy of the credentials as a plain map.
func (c Credentials) Map() map[string]string {
	out := make(map[string]string, len(c.keys))
	for p, k := range c.keys {
		out[string(p)] = k
	}
	return out
}
