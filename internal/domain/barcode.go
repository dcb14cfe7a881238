package domain

// ParsedBarcode is the result of decoding a scanned or hand-entered barcode.
// It is produced fresh on every parse and never persisted. Failure modes are
// reported through IsValid and Error rather than a Go error so the UI always
// has a renderable outcome.
type ParsedBarcode struct {
	MerchantCode   string `json:"merchant_code"`
	MerchantName   string `json:"merchant_name"`
	Category       string `json:"category"`
	CategoryName   string `json:"category_name"`
	ProductCode    string `json:"product_code"`
	ProductName    string `json:"product_name"`
	ProductID      string `json:"product_id"`
	ProductionDate string `json:"production_date"`
	FormattedDate  string `json:"formatted_date"`
	IsValid        bool   `json:"is_valid"`
	Error          string `json:"error,omitempty"`
}
