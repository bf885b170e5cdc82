package server

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/m-mizutani/astrodash/pkg/domain/model"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/astrodash/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

type tokenLoginRequest struct {
	Token types.GitHubToken `json:"token"`
}

func (x *Server) signIn(w http.ResponseWriter, r *http.Request, sess *model.Session) error {
	if err := x.cookies.setSessionID(w, r, sess.ID); err != nil {
		return err
	}
	logging.From(r.Context()).Info("signed in",
		slog.String("user", sess.User.Login),
		slog.Any("session_id", sess.ID),
	)
	return nil
}

func (x *Server) handleTokenLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, err := decodeBody[tokenLoginRequest](w, r, false)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	sess, err := x.uc.LoginWithToken(ctx, req.Token)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := x.signIn(w, r, sess); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeData(ctx, w, sess.View())
}

func (x *Server) handleOAuthLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state := uuid.NewString()

	url, err := x.uc.OAuthLoginURL(state)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := x.cookies.setState(w, r, state); err != nil {
		writeError(ctx, w, err)
		return
	}

	http.Redirect(w, r, url, http.StatusFound)
}

func (x *Server) handleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	if e := q.Get("error"); e != "" {
		writeError(ctx, w, goerr.Wrap(types.ErrUnauthorized, "authorization denied", goerr.V("error", e)))
		return
	}

	expected := x.cookies.popState(w, r)
	state := q.Get("state")
	if expected == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(state)) != 1 {
		writeError(ctx, w, goerr.Wrap(types.ErrValidationFailed, "oauth state mismatch"))
		return
	}

	sess, err := x.uc.LoginWithOAuthCode(ctx, q.Get("code"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := x.signIn(w, r, sess); err != nil {
		writeError(ctx, w, err)
		return
	}

	http.Redirect(w, r, x.cfg.dashboardURL, http.StatusFound)
}

func (x *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if id := x.cookies.sessionID(r); id != "" {
		if err := x.uc.Logout(ctx, id); err != nil {
			writeError(ctx, w, err)
			return
		}
	}
	if err := x.cookies.clear(w, r); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeData(ctx, w, nil)
}

func (x *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeData(r.Context(), w, ctxSession(r.Context()).View())
}
