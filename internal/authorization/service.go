package authorization

import (
	"context"
	"errors"
)

var (
	ErrInvalidActor  = errors.New("invalid_actor")
	ErrInvalidTenant = errors.New("invalid_tenant")
	ErrInvalidObject = errors.New("invalid_object")
	ErrInvalidAction = errors.New("invalid_action")
	ErrForbidden     = errors.New("forbidden")
)

// Service answers "may this actor perform this action on this object
// within this tenant". Actors are "user:<id>" or "system".
type Service interface {
	Authorize(ctx context.Context, actor string, tenantID string, object string, action string) error
}
