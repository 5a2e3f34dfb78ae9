package authapp

import (
	"context"
	"fmt"
	"net/http"
	"net/mail"

	"github.com/nexorahq/nexora/app/sdk/auth"
	"github.com/nexorahq/nexora/app/sdk/errs"
	"github.com/nexorahq/nexora/business/sdk/web"
)

type app struct {
	auth      *auth.Auth
	activeKID string
}

func newApp(ath *auth.Auth, activeKID string) *app {
	return &app{
		auth:      ath,
		activeKID: activeKID,
	}
}

// login verifies the credentials and issues a short lived identity token.
// The token names only who the caller is; what they may do is resolved
// from their role assignments on every request.
func (a *app) login(ctx context.Context, r *http.Request) web.Encoder {
	var req Login

	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	addr, err := mail.ParseAddress(req.Email)
	if err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("parsing email: %w", err))
	}

	usr, err := a.auth.Login(ctx, *addr, req.Password)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	tokenStr, err := a.auth.GenerateToken(a.activeKID, usr.ID)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return toAppToken(tokenStr)
}
