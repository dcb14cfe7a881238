package domain

import "encoding/json"

// DefaultProductID is the sentinel product identifier used when a product has
// no externally assigned identifier
const DefaultProductID = "0"

// ProductEntry is the stored value for a custom product. Two wire shapes are
// accepted: the legacy encoding is a bare JSON string carrying only the display
// name, the structured encoding is an object with name and product_id. Both
// decode into the same type; legacy entries get the default product id.
type ProductEntry struct {
	Name      string `json:"name"`
	ProductID string `json:"product_id"`
}

type structuredEntry struct {
	Name      string `json:"name"`
	ProductID string `json:"product_id"`
}

// UnmarshalJSON accepts both the legacy string form and the structured object form
func (e *ProductEntry) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		e.Name = name
		e.ProductID = DefaultProductID
		return nil
	}

	var s structuredEntry
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	e.Name = s.Name
	e.ProductID = s.ProductID
	if e.ProductID == "" {
		e.ProductID = DefaultProductID
	}
	return nil
}

// MarshalJSON always writes the structured form; legacy entries are upgraded on rewrite
func (e ProductEntry) MarshalJSON() ([]byte, error) {
	id := e.ProductID
	if id == "" {
		id = DefaultProductID
	}
	return json.Marshal(structuredEntry{Name: e.Name, ProductID: id})
}

// CustomProducts is the persisted three-level mapping:
// merchant id -> category code -> product code -> entry
type CustomProducts map[string]map[string]map[string]ProductEntry

// BuiltinProducts returns the built-in product tables, keyed by category code
// then product code. These exist only for the default built-in merchant and
// are never persisted.
func BuiltinProducts() map[string]map[string]ProductEntry {
	return map[string]map[string]ProductEntry{
		"FRU": {
			"001": {Name: "Apple", ProductID: "FRU001"},
			"002": {Name: "Banana", ProductID: "FRU002"},
			"003": {Name: "Orange", ProductID: "FRU003"},
		},
		"VEG": {
			"001": {Name: "Cabbage", ProductID: "VEG001"},
			"002": {Name: "Carrot", ProductID: "VEG002"},
			"003": {Name: "Tomato", ProductID: "VEG003"},
		},
		"MEA": {
			"001": {Name: "Pork Belly", ProductID: "MEA001"},
			"002": {Name: "Chicken Breast", ProductID: "MEA002"},
		},
		"DAI": {
			"001": {Name: "Whole Milk", ProductID: "DAI001"},
			"002": {Name: "Plain Yogurt", ProductID: "DAI002"},
		},
		"GRA": {
			"001": {Name: "White Rice", ProductID: "GRA001"},
			"002": {Name: "Rolled Oats", ProductID: "GRA002"},
		},
		"BEV": {
			"001": {Name: "Green Tea", ProductID: "BEV001"},
			"002": {Name: "Sparkling Water", ProductID: "BEV002"},
		},
		"SNK": {
			"001": {Name: "Potato Chips", ProductID: "SNK001"},
		},
		"FRO": {
			"001": {Name: "Frozen Dumplings", ProductID: "FRO001"},
		},
		"CAN": {
			"001": {Name: "Canned Tuna", ProductID: "CAN001"},
		},
		"BAK": {
			"001": {Name: "White Bread", ProductID: "BAK001"},
		},
	}
}
