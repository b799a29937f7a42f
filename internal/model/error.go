package model

import "net/http"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeProductNotFound    = "PRODUCT_NOT_FOUND"
	ErrCodeProductUnavailable = "PRODUCT_UNAVAILABLE"
	ErrCodeProductInUse       = "PRODUCT_IN_USE"
	ErrCodePriceMismatch      = "PRICE_MISMATCH"
	ErrCodeSessionNotFound    = "SESSION_NOT_FOUND"
	ErrCodeSessionNotActive   = "SESSION_NOT_ACTIVE"
	ErrCodeSessionClosed      = "SESSION_PERIOD_CLOSED"
	ErrCodeSessionHasOrders   = "SESSION_HAS_ORDERS"
	ErrCodeOrderNotFound      = "ORDER_NOT_FOUND"
	ErrCodeOrderNotDeletable  = "ORDER_NOT_DELETABLE"
	ErrCodeInvalidTransition  = "INVALID_STATUS_TRANSITION"
	ErrCodeInvalidOrderNumber = "INVALID_ORDER_NUMBER"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeUnauthorised       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeRateLimited        = "RATE_LIMITED"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// DomainError is a business error carrying an API error code and the HTTP
// status it maps to at the boundary.
type DomainError struct {
	Code    string
	Message string
	Status  int
	Details any
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewValidationError creates a 400 validation error with the given code.
func NewValidationError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message, Status: http.StatusBadRequest}
}

// NewFieldValidationError creates a 400 validation error listing every
// violated field.
func NewFieldValidationError(fields map[string]string) *DomainError {
	return &DomainError{
		Code:    ErrCodeValidation,
		Message: "validation failed",
		Status:  http.StatusBadRequest,
		Details: fields,
	}
}

// NewNotFoundError creates a 404 error.
func NewNotFoundError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message, Status: http.StatusNotFound}
}

// NewConflictError creates a 409 error for business-invariant violations.
func NewConflictError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message, Status: http.StatusConflict}
}

// Common domain errors
var (
	ErrProductNotFound    = NewNotFoundError(ErrCodeProductNotFound, "Product not found")
	ErrProductInUse       = NewConflictError(ErrCodeProductInUse, "Product is referenced by existing orders")
	ErrSessionNotFound    = NewValidationError(ErrCodeSessionNotFound, "Pre-order session not found")
	ErrSessionNotActive   = NewValidationError(ErrCodeSessionNotActive, "Pre-order session is not active")
	ErrSessionClosed      = NewValidationError(ErrCodeSessionClosed, "Pre-order session period has ended or not started yet")
	ErrSessionHasOrders   = NewConflictError(ErrCodeSessionHasOrders, "Pre-order session has associated orders and cannot be deleted")
	ErrOrderNotFound      = NewNotFoundError(ErrCodeOrderNotFound, "Order not found")
	ErrOrderNotDeletable  = NewConflictError(ErrCodeOrderNotDeletable, "Only PENDING or CANCELLED orders can be deleted")
	ErrInvalidOrderNumber = NewValidationError(ErrCodeInvalidOrderNumber, "Invalid order number format")
	ErrInvalidCredentials = &DomainError{Code: ErrCodeInvalidCredentials, Message: "Invalid email or password", Status: http.StatusUnauthorized}
	ErrUnauthorised       = &DomainError{Code: ErrCodeUnauthorised, Message: "Authentication required", Status: http.StatusUnauthorized}
	ErrForbidden          = &DomainError{Code: ErrCodeForbidden, Message: "Admin access required", Status: http.StatusForbidden}
	ErrRateLimited        = &DomainError{Code: ErrCodeRateLimited, Message: "Too many requests, try again later", Status: http.StatusTooManyRequests}
)
