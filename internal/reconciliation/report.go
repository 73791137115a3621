package reconciliation

import "go.uber.org/multierr"

// Report aggregates the outcome of one reconciliation run. Row errors never
// abort a pass; batch-level failures surface through Err alongside them.
type Report struct {
	Processed int `json:"processed"`
	Created   int `json:"created"`
	Skipped   int `json:"skipped"`

	errs []error
}

func (r *Report) addError(err error) {
	if err != nil {
		r.errs = append(r.errs, err)
	}
}

// ErrorCount reports how many rows or batches failed during the run.
func (r *Report) ErrorCount() int {
	return len(r.errs)
}

// Err combines every collected failure, or nil for a clean run.
func (r *Report) Err() error {
	return multierr.Combine(r.errs...)
}

// ErrorMessages renders the collected failures for response payloads.
func (r *Report) ErrorMessages() []string {
	messages := make([]string, 0, len(r.errs))
	for _, err := range r.errs {
		messages = append(messages, err.Error())
	}
	return messages
}

func (r *Report) merge(other Report) {
	r.Processed += other.Processed
	r.Created += other.Created
	r.Skipped += other.Skipped
	r.errs = append(r.errs, other.errs...)
}
