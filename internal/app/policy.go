package app

import (
	"fmt"

	"github.com/tanishqmanglor/nexmeet/internal/core"
)

type BackpressureAction int

const (
	DropMessage BackpressureAction = iota
	KickSession
)

type Policy interface {
	OnBackPressure(sid core.SessionID, msg core.Outbound) BackpressureAction
}

type SimplePolicy struct {
	Action BackpressureAction
}

func (p SimplePolicy) OnBackPressure(core.SessionID, core.Outbound) BackpressureAction {
	return p.Action
}

// ParsePolicy maps the backpressure_policy config value.
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "", "drop":
		return SimplePolicy{Action: DropMessage}, nil
	case "kick":
		return SimplePolicy{Action: KickSession}, nil
	default:
		return nil, fmt.Errorf("unknown backpressure policy %q", name)
	}
}
