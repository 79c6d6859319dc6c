// Copyright (c) 2026 Sahab Labs
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/sahablabs/sahab-go/internal/imaging"
	"github.com/sahablabs/sahab-go/internal/middleware"
	"github.com/sahablabs/sahab-go/internal/model"
	"github.com/sahablabs/sahab-go/internal/store"
)

// newTestHandler creates an API handler on a migrated, seeded temp database.
func newTestHandler(t *testing.T) (*Handler, *store.Queries) {
	t.Helper()

	db, err := store.NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, store.Migrate(db))
	require.NoError(t, store.Seed(context.Background(), db))

	h := NewHandler(db, nil, nil, imaging.NewProcessor(t.TempDir()))
	return h, store.New(db)
}

// adminUser loads the seeded admin for request contexts.
func adminUser(t *testing.T, queries *store.Queries) model.User {
	t.Helper()
	user, err := queries.GetUserByEmail(context.Background(), store.DefaultAdminEmail)
	require.NoError(t, err)
	return user
}

// jsonRequest builds a request with a JSON body, an {id} route parameter
// when id > 0, and the given user in the context.
func jsonRequest(t *testing.T, method, target string, id int64, body any, user model.User) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	r := httptest.NewRequest(method, target, &buf)
	r.Header.Set("Content-Type", "application/json")

	ctx := context.WithValue(r.Context(), middleware.ContextKeyUser, user)
	if id > 0 {
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("id", strconv.FormatInt(id, 10))
		ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)
	}
	return r.WithContext(ctx)
}

// decodeResponse unmarshals the recorded JSON body.
func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
