package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"numlist/internal/dataset"
	"numlist/internal/model"
	"numlist/internal/web"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*Client, *dataset.Store) {
	t.Helper()
	st := dataset.New(500)
	srv, err := web.NewServer(web.ServerConfig{Store: st, Logger: zerolog.Nop(), Gzip: true})
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		srv.Close()
		ts.Close()
	})
	c := New(ts.URL + "/")
	c.HTTP = ts.Client()
	return c, st
}

func TestClient_ItemsSelectOrder(t *testing.T) {
	c, st := newClient(t)
	ctx := context.Background()

	p, err := c.Items(ctx, 2, "")
	require.NoError(t, err)
	require.Len(t, p.Items, 20)
	assert.Equal(t, int64(21), p.Items[0].ID)
	assert.Equal(t, 500, p.Total)

	ack, err := c.SetSelection(ctx, []int64{4, 2})
	require.NoError(t, err)
	assert.True(t, ack.Success)
	assert.Equal(t, []int64{2, 4}, st.Selection().IDs())

	ack, err = c.SetOrder(ctx, []int64{10, 9})
	require.NoError(t, err)
	assert.True(t, ack.Success)

	p, err = c.Items(ctx, 1, "9")
	require.NoError(t, err)
	assert.Equal(t, int64(9), p.Items[0].ID)
	assert.Equal(t, int64(19), p.Items[1].ID)
	assert.Equal(t, []int64{2, 4}, p.Selected)
	assert.Equal(t, uint64(2), p.Version)
}

func TestClient_NilListsSentAsEmpty(t *testing.T) {
	var got map[string]json.RawMessage
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(model.Ack{Success: true})
	}))
	defer ts.Close()

	c := New(ts.URL)
	_, err := c.SetSelection(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got["selected"]))
}

func TestClient_StatusError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusTeapot)
	}))
	defer ts.Close()

	_, err := New(ts.URL).Items(context.Background(), 1, "")
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusTeapot, se.Status)
	assert.Equal(t, "nope", se.Body)
	assert.Contains(t, err.Error(), "GET /api/items")
}

func TestClient_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := New(url).SetOrder(context.Background(), []int64{1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POST /api/order")
}
