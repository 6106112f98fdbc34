package web

import (
	"context"
	"net/http"

	"github.com/JonMunkholm/recordtable/internal/core"
	mw "github.com/JonMunkholm/recordtable/internal/web/middleware"
)

// withViewer adds the client address and User-Agent to the request context
// so the service can attribute the sessions it opens.
func withViewer(r *http.Request) context.Context {
	ctx := core.ContextWithIPAddress(r.Context(), mw.ClientIP(r))
	return core.ContextWithUserAgent(ctx, r.Header.Get("User-Agent"))
}
