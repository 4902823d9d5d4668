package auth

import (
	"context"
	"net/http"

	"github.com/moimlab/moim/server/database"
)

type sessionKey struct{}

var sessionContextKey = &sessionKey{}

func SetSession(ctx context.Context, session database.SessionWithUser) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

func GetSession(r *http.Request) database.SessionWithUser {
	return r.Context().Value(sessionContextKey).(database.SessionWithUser)
}
