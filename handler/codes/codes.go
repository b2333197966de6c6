package codes

import (
	"errors"
	"strconv"

	"fairprice/core"

	"github.com/twitchtv/twirp"
)

const (
	// CustomCodeKey code key
	CustomCodeKey = "custom_code"

	// InvalidArguments invalid arguments
	InvalidArguments = 100001
)

var twirpCodes = map[core.ErrorCode]twirp.ErrorCode{
	core.ErrUnauthorized:         twirp.PermissionDenied,
	core.ErrZeroIdentifier:       twirp.InvalidArgument,
	core.ErrInvalidConfiguration: twirp.InvalidArgument,
	core.ErrAssetNotFound:        twirp.NotFound,
	core.ErrSourceUnavailable:    twirp.Unavailable,
	core.ErrNoPriceSource:        twirp.FailedPrecondition,
	core.ErrNoPrice:              twirp.NotFound,
	core.ErrStalePrice:           twirp.FailedPrecondition,
	core.ErrStaleFallback:        twirp.Unavailable,
	core.ErrNoFallbackPrice:      twirp.Unavailable,
	core.ErrRecursionExceeded:    twirp.FailedPrecondition,
	core.ErrSuspiciousRate:       twirp.FailedPrecondition,
	core.ErrInvalidPrice:         twirp.OutOfRange,
	core.ErrPaused:               twirp.Unavailable,
}

// With with specified error
func With(err error, code int) error {
	twerr, ok := err.(twirp.Error)
	if !ok {
		twerr = twirp.InternalErrorWith(err)
	}

	return twerr.WithMeta(CustomCodeKey, strconv.Itoa(code))
}

// From convert err into a twirp error carrying the oracle error code
func From(err error) twirp.Error {
	if twerr, ok := err.(twirp.Error); ok {
		return twerr
	}

	var code core.ErrorCode
	if !errors.As(err, &code) {
		return twirp.InternalErrorWith(err)
	}

	twcode, ok := twirpCodes[code]
	if !ok {
		twcode = twirp.Internal
	}

	return twirp.NewError(twcode, err.Error()).WithMeta(CustomCodeKey, code.String())
}

// Get get error code
func Get(err twirp.Error) int {
	if v := err.Meta(CustomCodeKey); v != "" {
		if code, e := strconv.Atoi(v); e == nil {
			return code
		}
	}

	switch err.Code() {
	case twirp.InvalidArgument:
		return InvalidArguments
	default:
		return twirp.ServerHTTPStatusFromErrorCode(err.Code())
	}
}
