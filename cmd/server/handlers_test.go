package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	. "github.com/cricklet/chesscore/internal/game"
	. "github.com/cricklet/chesscore/internal/helpers"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	return NewServer(FuncLogger(func(s string) {
		t.Log(strings.TrimSpace(s))
	}))
}

func get(t *testing.T, s *Server, path string, query url.Values) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, path+"?"+query.Encode(), nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, r)
	return w
}

func TestPerftRoute(t *testing.T) {
	s := newTestServer(t)

	w := get(t, s, "/perft", url.Values{"depth": {"3"}})
	require.Equal(t, http.StatusOK, w.Code)

	var response PerftResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, uint64(8902), response.Nodes)
	assert.Equal(t, StartingFen, response.Fen)
	assert.Len(t, response.Hash, 16)

	w = get(t, s, "/perft", url.Values{"depth": {"1"}, "moves": {"e2e4 e7e5"}})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2", response.Fen)
	assert.Equal(t, uint64(29), response.Nodes)
}

func TestPerftRouteErrors(t *testing.T) {
	s := newTestServer(t)

	for _, query := range []url.Values{
		{"depth": {"6"}},
		{"depth": {"-1"}},
		{"depth": {"x"}},
		{"depth": {"1"}, "fen": {"not a fen"}},
		{"depth": {"1"}, "moves": {"e2e5"}},
	} {
		w := get(t, s, "/perft", query)
		assert.Equal(t, http.StatusBadRequest, w.Code, query)

		var response ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.NotEmpty(t, response.Error)
	}
}

func TestPerftRouteStopsWhenCancelled(t *testing.T) {
	s := newTestServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	query := url.Values{"depth": {"5"}, "fen": {"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"}}
	r := httptest.NewRequest(http.MethodGet, "/perft?"+query.Encode(), nil).WithContext(ctx)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, r)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(t, response.Error, "canceled")
}

func TestMovesRoute(t *testing.T) {
	s := newTestServer(t)

	w := get(t, s, "/moves", url.Values{"moves": {"f2f3 e7e5 g2g4 d8h4"}})
	require.Equal(t, http.StatusOK, w.Code)

	var response MovesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Empty(t, response.Moves)
	assert.True(t, response.InCheck)
	assert.Equal(t, "checkmate", response.Status)

	w = get(t, s, "/moves", url.Values{"fen": {"k7/8/8/8/8/8/7p/K7 b - - 0 1"}})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Moves, 7)
	assert.False(t, response.InCheck)
	assert.Equal(t, "ongoing", response.Status)
}

func TestDivideWebsocket(t *testing.T) {
	// the handler outlives the test once the socket closes, so it logs elsewhere
	server := httptest.NewServer(NewServer(DefaultLogger).Router())
	defer server.Close()

	c, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer c.Close()

	kiwipete := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	require.NoError(t, c.WriteJSON(DivideRequest{Fen: &kiwipete, Depth: 2}))

	sum := uint64(0)
	moves := 0
	for {
		var update DivideUpdate
		require.NoError(t, c.ReadJSON(&update))
		require.Empty(t, update.Error)
		if update.Final {
			assert.Equal(t, uint64(2039), update.Nodes)
			assert.Equal(t, 48, update.Total)
			break
		}
		sum += update.Nodes
		moves++
	}
	assert.Equal(t, uint64(2039), sum)
	assert.Equal(t, 48, moves)

	require.NoError(t, c.WriteJSON(DivideRequest{Depth: MaxDepth + 1}))
	var update DivideUpdate
	require.NoError(t, c.ReadJSON(&update))
	assert.True(t, update.Final)
	assert.NotEmpty(t, update.Error)
}
