package telemetry

import (
	"fmt"
)

// API is what components report through instead of calling the logger or the
// meter directly, so tests can swap in a Recorder and assert on what was reported.
type API interface {
	// ReportBroken reports a component that failed in a way someone should fix.
	//
	// The id names the component and method, not the failing line. A failed HTTP
	// request inside the booking client's GetCredits is `client.get-credits`, the
	// fact that HTTP failed goes into the params (or the wrapped error).
	//
	// Ids are lowercase, underscores separate words of a component and dashes
	// separate words of a method. ScopedAPI adds the package level prefix.
	//
	// Never pass credentials as params.
	ReportBroken(id string, params ...any)

	// ReportWarning reports something unusual that was still handled, like the
	// site answering a cancellation with text nobody has seen before.
	ReportWarning(id string, params ...any)

	// ReportDebug reports information only useful while developing.
	ReportDebug(msg string, params ...any)

	// ReportCount reports the value of a count at the current time. Values are
	// samples, not increments.
	ReportCount(id string, count int64)
}

// ScopedAPI prefixes every id it reports with a namespace.
type ScopedAPI struct {
	namespace string
	inner     API
}

func NewScopedAPI(namespace string, inner API) ScopedAPI {
	return ScopedAPI{namespace: namespace, inner: inner}
}

func (s ScopedAPI) scoped(id string) string {
	return fmt.Sprintf("%s: %s", s.namespace, id)
}

func (s ScopedAPI) ReportBroken(id string, params ...any) {
	s.inner.ReportBroken(s.scoped(id), params...)
}

func (s ScopedAPI) ReportWarning(id string, params ...any) {
	s.inner.ReportWarning(s.scoped(id), params...)
}

func (s ScopedAPI) ReportDebug(msg string, params ...any) {
	s.inner.ReportDebug(s.scoped(msg), params...)
}

func (s ScopedAPI) ReportCount(id string, count int64) {
	s.inner.ReportCount(s.scoped(id), count)
}
