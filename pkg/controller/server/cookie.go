package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/m-mizutani/astrodash/pkg/domain/types"
	"github.com/m-mizutani/astrodash/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

const (
	cookieName     = "astrodash_session"
	cookieKeySID   = "sid"
	cookieKeyState = "oauth_state"
)

// cookieJar keeps the session id and the OAuth state in a signed cookie. Everything else about
// the session lives in the session repository.
type cookieJar struct {
	store *sessions.CookieStore
}

func newCookieJar(hashKey []byte, secure bool, maxAge time.Duration) *cookieJar {
	if len(hashKey) == 0 {
		logging.Default().Warn("cookie key is not configured, sessions will not survive a restart")
		hashKey = securecookie.GenerateRandomKey(32)
	}

	store := sessions.NewCookieStore(hashKey)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &cookieJar{store: store}
}

func (x *cookieJar) get(r *http.Request) *sessions.Session {
	sess, err := x.store.Get(r, cookieName)
	if err != nil {
		// A cookie signed with an old key decodes to an empty session.
		logging.From(r.Context()).Debug("discard undecodable cookie", slog.Any("error", err))
	}
	return sess
}

func (x *cookieJar) sessionID(r *http.Request) types.SessionID {
	v, _ := x.get(r).Values[cookieKeySID].(string)
	return types.SessionID(v)
}

func (x *cookieJar) setSessionID(w http.ResponseWriter, r *http.Request, id types.SessionID) error {
	sess := x.get(r)
	sess.Values[cookieKeySID] = string(id)
	delete(sess.Values, cookieKeyState)
	if err := sess.Save(r, w); err != nil {
		return goerr.Wrap(err, "failed to save cookie")
	}
	return nil
}

func (x *cookieJar) setState(w http.ResponseWriter, r *http.Request, state string) error {
	sess := x.get(r)
	sess.Values[cookieKeyState] = state
	if err := sess.Save(r, w); err != nil {
		return goerr.Wrap(err, "failed to save cookie")
	}
	return nil
}

// popState returns the stored OAuth state. The state is single use.
func (x *cookieJar) popState(w http.ResponseWriter, r *http.Request) string {
	sess := x.get(r)
	state, _ := sess.Values[cookieKeyState].(string)
	delete(sess.Values, cookieKeyState)
	if err := sess.Save(r, w); err != nil {
		logging.From(r.Context()).Warn("failed to clear oauth state", slog.Any("error", err))
	}
	return state
}

func (x *cookieJar) clear(w http.ResponseWriter, r *http.Request) error {
	sess := x.get(r)
	sess.Values = map[any]any{}
	sess.Options.MaxAge = -1
	if err := sess.Save(r, w); err != nil {
		return goerr.Wrap(err, "failed to clear cookie")
	}
	return nil
}
