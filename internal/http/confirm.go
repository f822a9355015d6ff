package http

import (
	"context"

	"pocketledger/internal/services"
)

type confirmKey struct{}

// withConfirmation records the caller's answer to a destructive operation.
func withConfirmation(ctx context.Context, ok bool) context.Context {
	return context.WithValue(ctx, confirmKey{}, ok)
}

// RequestConfirmer answers from the confirm=true query parameter of the
// request being served. Services driven by the API must be built with it.
var RequestConfirmer services.Confirmer = services.ConfirmFunc(func(ctx context.Context, _ string) (bool, error) {
	ok, _ := ctx.Value(confirmKey{}).(bool)
	return ok, nil
})
