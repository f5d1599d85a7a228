package server

import (
	"context"
	"database/sql"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/librisbooks/libris/pkg/config"
	"github.com/librisbooks/libris/pkg/migrations"
	"github.com/librisbooks/libris/pkg/models"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func setupTestServer(t *testing.T) (*httptest.Server, *bun.DB) {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	// A second pool connection would get its own empty in-memory database.
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	db.RegisterModel((*models.AuthorBook)(nil))

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	cfg := &config.Config{PageSize: 3}
	srv, err := New(cfg, db)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(func() {
		ts.Close()
		db.Close()
	})

	return ts, db
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()

	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, out))
}

func TestPing(t *testing.T) {
	t.Parallel()
	ts, _ := setupTestServer(t)

	resp, err := http.Get(ts.URL + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "~~*!pong!*~~", string(body))
}

func TestCreateAuthorEndToEnd(t *testing.T) {
	t.Parallel()
	ts, db := setupTestServer(t)
	ctx := context.Background()

	before, err := db.NewSelect().Model((*models.Author)(nil)).Count(ctx)
	require.NoError(t, err)

	resp := postJSON(t, ts.URL+"/authors", `{"name":"Artem","sername":"Zaitsev"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	envelope := struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}{}
	decodeBody(t, resp, &envelope)
	assert.True(t, envelope.Success)
	assert.Equal(t, "Author Artem was created.", envelope.Message)

	after, err := db.NewSelect().Model((*models.Author)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, before+1, after)

	getResp, err := http.Get(ts.URL + "/authors?id=1")
	require.NoError(t, err)
	view := struct {
		ID    int              `json:"id"`
		Name  string           `json:"name"`
		Books []map[string]any `json:"books"`
	}{}
	decodeBody(t, getResp, &view)
	assert.Equal(t, "Artem", view.Name)
	assert.Empty(t, view.Books)
}

func TestCreateBookLinksBothWays(t *testing.T) {
	t.Parallel()
	ts, _ := setupTestServer(t)

	for _, body := range []string{
		`{"name":"Ilya","sername":"Ilf"}`,
		`{"name":"Yevgeny","sername":"Petrov"}`,
	} {
		resp := postJSON(t, ts.URL+"/authors", body)
		resp.Body.Close()
	}

	resp := postJSON(t, ts.URL+"/books", `{"book":{"name":"The Twelve Chairs","description":"A satire."},"author_id":[1,2]}`)
	envelope := struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}{}
	decodeBody(t, resp, &envelope)
	assert.True(t, envelope.Success)
	assert.Equal(t, "Found authors: 1, 2.", envelope.Message)

	bookResp, err := http.Get(ts.URL + "/books?id=1")
	require.NoError(t, err)
	bookView := struct {
		Name    string `json:"name"`
		Authors []struct {
			ID int `json:"id"`
		} `json:"authors"`
	}{}
	decodeBody(t, bookResp, &bookView)
	require.Len(t, bookView.Authors, 2)

	for _, id := range []string{"1", "2"} {
		authorResp, err := http.Get(ts.URL + "/authors?id=" + id)
		require.NoError(t, err)
		authorView := struct {
			Books []struct {
				Name string `json:"name"`
			} `json:"books"`
		}{}
		decodeBody(t, authorResp, &authorView)
		require.Len(t, authorView.Books, 1)
		assert.Equal(t, "The Twelve Chairs", authorView.Books[0].Name)
	}
}

func TestUnknownRouteIsNotFound(t *testing.T) {
	t.Parallel()
	ts, _ := setupTestServer(t)

	resp, err := http.Get(ts.URL + "/nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
