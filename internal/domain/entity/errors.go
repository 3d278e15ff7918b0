package entity

import "errors"

// Domain errors. Callers wrap them with context and match with errors.Is.
var (
	ErrProductNotFound     = errors.New("product not found")
	ErrBrandNotFound       = errors.New("brand not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrOutOfStock          = errors.New("sorry, this item is out of stock")
	ErrCartLineNotFound    = errors.New("cart line not found")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrLoginRequired       = errors.New("login required")
	ErrForbidden           = errors.New("admin access required")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrInvalidEmail        = errors.New("email is required")
	ErrInvalidProduct      = errors.New("invalid product")
	ErrInvalidName         = errors.New("name must not be blank")
	ErrInvalidAddress      = errors.New("shipping address is required")
	ErrUnknownPage         = errors.New("unknown page")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	ErrAdvisorDisabled     = errors.New("parts advisor is not configured")
	ErrSessionNotFound     = errors.New("session not found")
	ErrEmptyImport         = errors.New("no products found in spreadsheet")
	ErrEmptyQuestion       = errors.New("question is empty")
)
