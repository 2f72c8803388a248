package estimators

// Observer receives degenerate-path notifications: near-zero denominators,
// invalid samples, insufficient history, aborted recursions. It is a passive
// diagnostic sink and must never influence estimator behavior.
type Observer interface {
	// Degenerate reports that the named estimator hit a fallback path in
	// the given stage at the given step.
	Degenerate(estimator, stage string, step int)
}

type nopObserver struct{}

func (nopObserver) Degenerate(string, string, int) {}

// observerOrNop lets estimator structs keep a nil Observer field until one
// is injected.
func observerOrNop(o Observer) Observer {
	if o == nil {
		return nopObserver{}
	}
	return o
}
