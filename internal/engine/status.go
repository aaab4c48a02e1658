package engine

// SourceStatus is the loading/error pair one source adapter reports.
type SourceStatus struct {
	Name    string
	Loading bool
	Err     error
}

// CombineStatus folds adapter statuses into the single status the consuming
// view sees. Loading is the OR of all flags. Err is the FIRST non-nil error
// in declaration order — later errors are not collected. This first-error-wins
// behavior is a deliberate policy, not an accident of control flow; callers
// needing full diagnostics must inspect adapters individually.
func CombineStatus(statuses []SourceStatus) (loading bool, err error) {
	for _, s := range statuses {
		if s.Loading {
			loading = true
		}
		if err == nil && s.Err != nil {
			err = s.Err
		}
	}
	return loading, err
}
