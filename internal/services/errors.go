package services

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var (
	ErrUnauthenticated        = errors.New("authentication required")
	ErrPermissionDenied       = errors.New("not allowed to act for this partner")
	ErrInvalidArgument        = errors.New("invalid argument")
	ErrInsufficientBalance    = errors.New("insufficient points")
	ErrBiddingClosed          = errors.New("bidding is closed for this week")
	ErrSubscriptionNotActive  = errors.New("subscription is not active")
	ErrPartnerNotFound        = errors.New("partner not found")
	ErrConcurrentModification = errors.New("balance was modified concurrently")
	ErrSettlementInProgress   = errors.New("settlement already running for this week")
)

// ErrorCode is the caller-facing classification of a failure.
type ErrorCode string

const (
	CodeUnauthenticated    ErrorCode = "unauthenticated"
	CodePermissionDenied   ErrorCode = "permission-denied"
	CodeInvalidArgument    ErrorCode = "invalid-argument"
	CodeFailedPrecondition ErrorCode = "failed-precondition"
	CodeNotFound           ErrorCode = "not-found"
	CodeInternal           ErrorCode = "internal"
)

// ArgumentError names the offending field of an invalid-argument failure.
type ArgumentError struct {
	Field   string
	Message string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

func invalidArgument(field, message string) error {
	return &ArgumentError{Field: field, Message: message}
}

// InsufficientBalanceError carries the amounts involved in a rejected debit.
type InsufficientBalanceError struct {
	PartnerID string
	Available int64
	Requested int64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient points for partner %s: available %d, requested %d",
		e.PartnerID, e.Available, e.Requested)
}

func (e *InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}

// CodeOf classifies any error returned by the services package.
func CodeOf(err error) ErrorCode {
	var verrs validator.ValidationErrors
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnauthenticated):
		return CodeUnauthenticated
	case errors.Is(err, ErrPermissionDenied):
		return CodePermissionDenied
	case errors.Is(err, ErrInvalidArgument), errors.As(err, &verrs):
		return CodeInvalidArgument
	case errors.Is(err, ErrInsufficientBalance),
		errors.Is(err, ErrBiddingClosed),
		errors.Is(err, ErrSubscriptionNotActive),
		errors.Is(err, ErrSettlementInProgress):
		return CodeFailedPrecondition
	case errors.Is(err, ErrPartnerNotFound):
		return CodeNotFound
	}
	return CodeInternal
}

// ReasonOf distinguishes failed-precondition causes for clients.
func ReasonOf(err error) string {
	switch {
	case errors.Is(err, ErrInsufficientBalance):
		return "insufficient-balance"
	case errors.Is(err, ErrBiddingClosed):
		return "bidding-closed"
	case errors.Is(err, ErrSubscriptionNotActive):
		return "subscription-not-active"
	case errors.Is(err, ErrSettlementInProgress):
		return "settlement-in-progress"
	}
	return ""
}

func StatusOf(code ErrorCode) int {
	switch code {
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodePermissionDenied:
		return http.StatusForbidden
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeFailedPrecondition:
		return http.StatusConflict
	case CodeNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// MessageOf returns the short message shown to partners. Internal details never leak.
func MessageOf(err error) string {
	var argErr *ArgumentError
	switch CodeOf(err) {
	case CodeUnauthenticated:
		return "Authentication required"
	case CodePermissionDenied:
		return "You can only act on your own account"
	case CodeInvalidArgument:
		if errors.As(err, &argErr) {
			return fmt.Sprintf("Invalid %s: %s", argErr.Field, argErr.Message)
		}
		return "Validation failed"
	case CodeFailedPrecondition:
		switch ReasonOf(err) {
		case "insufficient-balance":
			return "Not enough points, please top up"
		case "bidding-closed":
			return "Bidding for next week is closed"
		case "subscription-not-active":
			return "Subscription is not active"
		case "settlement-in-progress":
			return "Settlement is already running"
		}
	case CodeNotFound:
		return "Partner not found"
	}
	return "Internal server error"
}
