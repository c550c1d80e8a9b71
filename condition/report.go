package condition

import (
	"fmt"
	"sync"
)

// Entry is one recorded condition outcome.
type Entry struct {
	Condition string
	Outcome   Outcome
}

// Report records condition outcomes per configuration unit. It is safe for
// concurrent use.
type Report struct {
	mu       sync.RWMutex
	outcomes map[string][]Entry
	sources  []string
}

func NewReport() *Report {
	return &Report{outcomes: make(map[string][]Entry)}
}

// Record appends the outcome of c for source.
func (r *Report) Record(source string, c Condition, outcome Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.outcomes[source]; !ok {
		r.sources = append(r.sources, source)
	}
	r.outcomes[source] = append(r.outcomes[source], Entry{
		Condition: fmtCondition(c),
		Outcome:   outcome,
	})
}

// OutcomesFor returns the outcomes recorded for source in evaluation order.
func (r *Report) OutcomesFor(source string) []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Entry(nil), r.outcomes[source]...)
}

// Sources returns the evaluated sources in first-seen order.
func (r *Report) Sources() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.sources...)
}

// FullMatch reports whether source has outcomes and all of them matched.
func (r *Report) FullMatch(source string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := r.outcomes[source]
	if len(entries) == 0 {
		return false
	}
	for _, e := range entries {
		if !e.Outcome.IsMatch() {
			return false
		}
	}
	return true
}

func fmtCondition(c Condition) string {
	return fmt.Sprintf("%T", c)
}
