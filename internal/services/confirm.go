package services

import "context"

const (
	DeletePrompt = "Are you sure you want to delete this transaction?"
	ClearPrompt  = "Are you sure you want to delete ALL transactions? This cannot be undone!"
)

// Confirmer asks the user to approve a destructive operation. Anything but
// an affirmative answer, including an error, cancels the operation.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// AlwaysConfirm approves everything, for non-interactive use.
var AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, string) (bool, error) { return true, nil })

// NeverConfirm declines everything.
var NeverConfirm Confirmer = ConfirmFunc(func(context.Context, string) (bool, error) { return false, nil })
