// Package errs provides the error taxonomy shared by the fulfillment service.
//
// Every error type pairs a sentinel (ErrObjectNotFound, ErrValueIsInvalid,
// ErrValueIsOutOfRange, ErrValueIsRequired, ErrVersionIsInvalid) with a struct
// carrying the offending parameter and an optional cause. Unwrap returns the
// sentinel, so callers classify with errors.Is and read details with errors.As:
//
//	_, err := repo.Get(ctx, id)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    return echo.ErrNotFound
//	}
//
// The HTTP adapter maps the sentinels onto status codes; the domain and
// application layers never format transport errors themselves.
package errs
