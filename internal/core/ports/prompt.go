package ports

import "context"

// Confirmer asks the user to approve an action.
//
//go:generate go run go.uber.org/mock/mockgen -source=prompt.go -destination=mocks/mock_prompt.go -package=mocks
type Confirmer interface {
	// Confirm shows prompt and reports whether the user approved.
	Confirm(ctx context.Context, prompt string) (bool, error)
}
