package requests

// ResolveAddressRequest resolves a single address.
type ResolveAddressRequest struct {
	Address string `json:"address"`           // Free-text address
	APIKey  string `json:"api_key,omitempty"` // Optional per-request provider key
}

// BatchResolveRequest resolves several addresses at once.
type BatchResolveRequest struct {
	Addresses []string `json:"addresses" binding:"required,min=1"` // Addresses to resolve
	APIKey    string   `json:"api_key,omitempty"`                  // Optional per-request provider key
}
