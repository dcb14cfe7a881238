package middleware

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Test struct mirroring the catalog request shapes
type testMerchantRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Code        string `json:"code" validate:"required,alphanum,uppercase,max=10"`
	ProductCode string `json:"product_code" validate:"omitempty,len=3,numeric"`
}

func TestProperty_RequiredFieldValidationWorks(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("missing required fields are rejected", prop.ForAll(
		func(includeNameField bool, includeCodeField bool) bool {
			// Create request with some fields missing
			reqMap := make(map[string]interface{})

			if includeNameField {
				reqMap["name"] = "Corner Store"
			}
			if includeCodeField {
				reqMap["code"] = "CORNER"
			}

			// If all required fields are present, this should pass validation
			allFieldsPresent := includeNameField && includeCodeField

			reqBody, _ := json.Marshal(reqMap)
			req := httptest.NewRequest("POST", "/test", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")

			var testReq testMerchantRequest
			err := DecodeAndValidate(req, &testReq)

			if allFieldsPresent {
				return err == nil
			}
			return err != nil
		},
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Test that validation errors are properly formatted
func TestProperty_ValidationErrorsAreFormatted(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("validation errors include field information", prop.ForAll(
		func() bool {
			// Lowercase merchant code violates the uppercase tag
			reqMap := map[string]interface{}{
				"name": "Corner Store",
				"code": "corner",
			}

			reqBody, _ := json.Marshal(reqMap)
			req := httptest.NewRequest("POST", "/test", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")

			var testReq testMerchantRequest
			err := DecodeAndValidate(req, &testReq)

			if err == nil {
				return false // Should have validation error
			}

			// Format the errors
			validationErrors := FormatValidationErrors(err)

			// Should have at least one error
			if len(validationErrors) == 0 {
				return false
			}

			// Each error should have a field and message
			for _, ve := range validationErrors {
				if ve.Field == "" || ve.Message == "" {
					return false
				}
			}

			return true
		},
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Test that valid requests pass validation
func TestProperty_ValidRequestsPassValidation(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("valid requests pass validation", prop.ForAll(
		func(name string, code string) bool {
			reqMap := map[string]interface{}{
				"name": name,
				"code": code,
			}

			reqBody, _ := json.Marshal(reqMap)
			req := httptest.NewRequest("POST", "/test", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")

			var testReq testMerchantRequest
			err := DecodeAndValidate(req, &testReq)

			// Should pass validation
			return err == nil
		},
		gen.RegexMatch(`[A-Za-z ]{1,40}`),
		gen.RegexMatch(`[A-Z0-9]{1,10}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Test product code shape validation
func TestProperty_ProductCodeShapeValidation(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("product codes must be exactly three digits", prop.ForAll(
		func(productCode string) bool {
			reqMap := map[string]interface{}{
				"name":         "Corner Store",
				"code":         "CORNER",
				"product_code": productCode,
			}

			reqBody, _ := json.Marshal(reqMap)
			req := httptest.NewRequest("POST", "/test", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")

			var testReq testMerchantRequest
			err := DecodeAndValidate(req, &testReq)

			threeDigits := len(productCode) == 3
			if threeDigits {
				for _, c := range productCode {
					if c < '0' || c > '9' {
						threeDigits = false
						break
					}
				}
			}
			if threeDigits {
				return err == nil
			}
			return err != nil
		},
		gen.RegexMatch(`[0-9]{1,5}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
