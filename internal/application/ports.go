package application

import (
	"context"

	"smart-home-mock/internal/domain"
)

type ApplianceCatalog interface {
	Discover() []domain.Appliance
	IsErrorAppliance(id string) bool
}

// Validator checks the invocation context before dispatch and the built
// response before it is returned.
type Validator interface {
	ValidateContext(ctx context.Context) error
	ValidateResponse(req *domain.Request, resp *domain.Response) error
}
