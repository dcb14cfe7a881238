package domain

import "time"

// Merchant represents a merchant whose code appears in scanned barcodes
type Merchant struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// MerchantUpdate carries a partial-field merchant update; nil fields are left unchanged
type MerchantUpdate struct {
	Name        *string `json:"name,omitempty"`
	Code        *string `json:"code,omitempty"`
	Description *string `json:"description,omitempty"`
}

// DefaultMerchantID is the built-in merchant that owns the built-in product tables
const DefaultMerchantID = "1"

// BuiltinMerchants returns the fixed merchant set that exists regardless of
// storage state. The slice is rebuilt on every call; built-ins are never
// persisted and never mutated through the registry.
func BuiltinMerchants() []*Merchant {
	return []*Merchant{
		{
			ID:          DefaultMerchantID,
			Code:        "ANPIN",
			Name:        "Anpin Grocery",
			Description: "Default grocery merchant",
		},
		{
			ID:          "2",
			Code:        "15P",
			Name:        "15P Market",
			Description: "Neighborhood market",
		},
	}
}

// IsBuiltinMerchantID reports whether id belongs to a built-in merchant
func IsBuiltinMerchantID(id string) bool {
	for _, m := range BuiltinMerchants() {
		if m.ID == id {
			return true
		}
	}
	return false
}
