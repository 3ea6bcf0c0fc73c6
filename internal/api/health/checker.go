package health

import "context"

type Checker interface {
	Healthy(ctx context.Context) bool
}

type OkChecker struct{}

func NewOkChecker() *OkChecker {
	return &OkChecker{}
}

func (hc *OkChecker) Healthy(ctx context.Context) bool {
	return true
}

// All reports healthy only when every checker does.
type All []Checker

func (a All) Healthy(ctx context.Context) bool {
	for _, c := range a {
		if !c.Healthy(ctx) {
			return false
		}
	}
	return true
}
