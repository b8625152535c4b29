package cli

import (
	"context"
	"fmt"

	"github.com/vibeos/vibeos/internal/constants"
	apperrors "github.com/vibeos/vibeos/internal/errors"
)

type SyncCmd struct {
	Pull bool `help:"Re-fetch remote data and replace the local session before pushing."`
}

func (c *SyncCmd) Run(ctx *Context) error {
	if !ctx.Coordinator.Authenticated() {
		return apperrors.ErrAuthenticationRequired
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), constants.RequestTimeout)
	defer cancel()

	if c.Pull {
		if err := ctx.Reconciler.SignedIn(reqCtx); err != nil {
			return fmt.Errorf("pull failed: %w", err)
		}
		fmt.Println("Pulled remote data.")
		return nil
	}

	if err := ctx.Coordinator.Flush(reqCtx); err != nil {
		return fmt.Errorf("push failed: %w", err)
	}
	fmt.Println("Pushed pending changes.")
	return nil
}
