package domain

// BuiltinCategories returns the fixed category mapping (code -> display name).
// Categories are global, not merchant-scoped. A fresh copy is returned so
// callers can merge custom entries without mutating the built-in set.
func BuiltinCategories() map[string]string {
	return map[string]string{
		"FRU": "Fruits",
		"VEG": "Vegetables",
		"MEA": "Meat",
		"DAI": "Dairy",
		"GRA": "Grains",
		"BEV": "Beverages",
		"SNK": "Snacks",
		"FRO": "Frozen",
		"CAN": "Canned",
		"BAK": "Bakery",
	}
}
