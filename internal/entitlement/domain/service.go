package domain

import (
	"context"
	"errors"

	plandomain "github.com/vetcita/vetcita/internal/plan/domain"
	"github.com/vetcita/vetcita/internal/trial"
)

// Fallback tells the caller how to present a denial.
type Fallback string

const (
	FallbackPromptUpgrade Fallback = "prompt_upgrade"
	FallbackHide          Fallback = "hide"
	FallbackRedirect      Fallback = "redirect"
)

// Reason is the machine-readable denial code carried in redirects and API
// error payloads.
type Reason string

const (
	ReasonTrialExpired        Reason = "trial_expired"
	ReasonTenantSuspended     Reason = "tenant_suspended"
	ReasonNoSubscription      Reason = "no_subscription"
	ReasonFeatureNotAvailable Reason = "feature_not_available"
	ReasonLimitReached        Reason = "limit_reached"
)

// Requirement is either a feature flag or a limit check; exactly one of
// the two fields is set.
type Requirement struct {
	Feature plandomain.FeatureKey
	Limit   plandomain.LimitKey
}

func FeatureRequirement(key plandomain.FeatureKey) Requirement {
	return Requirement{Feature: key}
}

func LimitRequirement(key plandomain.LimitKey) Requirement {
	return Requirement{Limit: key}
}

// Decision is the single allow/deny answer consumed by page-level checks
// and mutating API handlers alike.
type Decision struct {
	Allowed  bool                   `json:"allowed"`
	Reason   Reason                 `json:"reason,omitempty"`
	Fallback Fallback               `json:"fallback,omitempty"`
	Limit    *plandomain.LimitCheck `json:"limit,omitempty"`
}

type Service interface {
	// Evaluate is authoritative; it fails closed on missing tenants or
	// subscriptions instead of erroring.
	Evaluate(ctx context.Context, req Requirement) (Decision, error)
	// Guard evaluates the route-level gate only (tenant status + trial
	// state), with no feature or limit requirement.
	Guard(ctx context.Context) (Decision, error)
	HasFeatureAccess(ctx context.Context, key plandomain.FeatureKey) bool
	CheckLimit(ctx context.Context, key plandomain.LimitKey) (plandomain.LimitCheck, error)
	TrialStatus(ctx context.Context) (*trial.Status, error)
}

var ErrInvalidTenant = errors.New("invalid_tenant")
