package telemetry

import (
	"fmt"
	"strings"
	"sync"
)

type ReportKind string

const (
	REPORT_BROKEN  ReportKind = "broken"
	REPORT_WARNING ReportKind = "warning"
	REPORT_DEBUG   ReportKind = "debug"
	REPORT_COUNT   ReportKind = "count"
)

type Report struct {
	Kind   ReportKind
	Id     string
	Params []any
}

// String renders the report the way a log line would show it.
func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", r.Kind, r.Id)
	for _, p := range r.Params {
		fmt.Fprintf(&b, " %v", p)
	}
	return b.String()
}

// Recorder is an API that keeps every report in memory, for tests.
type Recorder struct {
	mu      sync.Mutex
	reports []Report
}

func (r *Recorder) add(kind ReportKind, id string, params []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, Report{Kind: kind, Id: id, Params: params})
}

func (r *Recorder) ReportBroken(id string, params ...any) {
	r.add(REPORT_BROKEN, id, params)
}

func (r *Recorder) ReportWarning(id string, params ...any) {
	r.add(REPORT_WARNING, id, params)
}

func (r *Recorder) ReportDebug(msg string, params ...any) {
	r.add(REPORT_DEBUG, msg, params)
}

func (r *Recorder) ReportCount(id string, count int64) {
	r.add(REPORT_COUNT, id, []any{count})
}

// Reports returns the recorded reports of the given kind, or all of them if kind
// is empty.
func (r *Recorder) Reports(kind ReportKind) []Report {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []Report{}
	for _, report := range r.reports {
		if kind == "" || report.Kind == kind {
			out = append(out, report)
		}
	}
	return out
}

// Contains reports whether any recorded report renders text.
func (r *Recorder) Contains(text string) bool {
	for _, report := range r.Reports("") {
		if strings.Contains(report.String(), text) {
			return true
		}
	}
	return false
}
