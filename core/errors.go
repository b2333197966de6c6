package core

import (
	"fmt"
	"strconv"
	"strings"
)

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unkown
	ErrUnknown ErrorCode = 100000
	// ErrUnauthorized caller is not an oracle admin
	ErrUnauthorized ErrorCode = 100001
	// ErrZeroIdentifier empty asset, feed or vault reference
	ErrZeroIdentifier ErrorCode = 100002
	// ErrInvalidConfiguration administrative parameter out of range
	ErrInvalidConfiguration ErrorCode = 100003
	// ErrAssetNotFound asset was never configured
	ErrAssetNotFound ErrorCode = 100004

	// ErrSourceUnavailable feed or vault provider failed, timed out or answered garbage
	ErrSourceUnavailable ErrorCode = 100100
	// ErrNoPriceSource no manual price, derived mapping or feed
	ErrNoPriceSource ErrorCode = 100101
	// ErrNoPrice nothing cached for the asset
	ErrNoPrice ErrorCode = 100102
	// ErrStalePrice cached price older than the stale period
	ErrStalePrice ErrorCode = 100103
	// ErrStaleFallback cached price older than the fallback stale period
	ErrStaleFallback ErrorCode = 100104
	// ErrNoFallbackPrice feed failed and nothing is cached
	ErrNoFallbackPrice ErrorCode = 100105
	// ErrRecursionExceeded derived asset chain too deep or cyclic
	ErrRecursionExceeded ErrorCode = 100106
	// ErrSuspiciousRate vault conversion rate outside its sanity band
	ErrSuspiciousRate ErrorCode = 100107
	// ErrInvalidPrice price outside the absolute sanity bounds
	ErrInvalidPrice ErrorCode = 100108
	// ErrPaused oracle is paused
	ErrPaused ErrorCode = 100109
)

var errorNames = map[ErrorCode]string{
	ErrUnknown:              "unknown",
	ErrUnauthorized:         "unauthorized",
	ErrZeroIdentifier:       "zero identifier",
	ErrInvalidConfiguration: "invalid configuration",
	ErrAssetNotFound:        "asset not found",
	ErrSourceUnavailable:    "source unavailable",
	ErrNoPriceSource:        "no price source",
	ErrNoPrice:              "no price",
	ErrStalePrice:           "stale price",
	ErrStaleFallback:        "stale fallback",
	ErrNoFallbackPrice:      "no fallback price",
	ErrRecursionExceeded:    "recursion exceeded",
	ErrSuspiciousRate:       "suspicious rate",
	ErrInvalidPrice:         "invalid price",
	ErrPaused:               "paused",
}

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	if name, ok := errorNames[e]; ok {
		return name
	}

	return e.String()
}

// PriceError reports which asset, value and timestamp tripped a check
type PriceError struct {
	Code      ErrorCode
	AssetID   string
	Value     string
	Timestamp int64
	Reason    string
}

// NewError new price error for asset
func NewError(code ErrorCode, assetID string) *PriceError {
	return &PriceError{Code: code, AssetID: assetID}
}

// WithValue attach the offending value
func (e *PriceError) WithValue(v fmt.Stringer) *PriceError {
	e.Value = v.String()
	return e
}

// WithTimestamp attach the offending timestamp
func (e *PriceError) WithTimestamp(ts int64) *PriceError {
	e.Timestamp = ts
	return e
}

// WithReason attach a free form reason
func (e *PriceError) WithReason(format string, args ...interface{}) *PriceError {
	e.Reason = fmt.Sprintf(format, args...)
	return e
}

func (e *PriceError) Error() string {
	parts := []string{e.Code.Error()}
	if e.AssetID != "" {
		parts = append(parts, "asset="+e.AssetID)
	}
	if e.Value != "" {
		parts = append(parts, "value="+e.Value)
	}
	if e.Timestamp > 0 {
		parts = append(parts, "timestamp="+strconv.FormatInt(e.Timestamp, 10))
	}
	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}

	return strings.Join(parts, " ")
}

func (e *PriceError) Unwrap() error {
	return e.Code
}
