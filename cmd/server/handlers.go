package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	. "github.com/cricklet/chesscore/internal/game"
	. "github.com/cricklet/chesscore/internal/helpers"
	"github.com/cricklet/chesscore/internal/movegen"
	"github.com/cricklet/chesscore/internal/perft"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

// MaxDepth keeps a single request to roughly 2e8 nodes.
const MaxDepth = 5

type PerftResponse struct {
	Fen   string `json:"fen"`
	Depth int    `json:"depth"`
	Nodes uint64 `json:"nodes"`
	Hash  string `json:"hash"`
}

type MovesResponse struct {
	Fen     string   `json:"fen"`
	Moves   []string `json:"moves"`
	InCheck bool     `json:"inCheck"`
	Status  string   `json:"status"`
}

type DivideRequest struct {
	Fen   *string  `json:"fen"`
	Moves []string `json:"moves"`
	Depth int      `json:"depth"`
}

func (r DivideRequest) String() string {
	fen := StartingFen
	if r.Fen != nil {
		fen = *r.Fen
	}
	return fmt.Sprint("DivideRequest: ", fen, ", ", r.Moves, ", ", r.Depth)
}

type DivideUpdate struct {
	Move  string `json:"move,omitempty"`
	Nodes uint64 `json:"nodes"`
	Done  int    `json:"done"`
	Total int    `json:"total"`
	Final bool   `json:"final"`
	Error string `json:"error,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// boardForPosition sets up a fresh board from a FEN followed by moves in
// coordinate notation. Every move must be legal.
func boardForPosition(fen string, moves []string) (*Board, Error) {
	if fen == "" {
		fen = StartingFen
	}
	b, err := BoardFromFenString(fen)
	if !IsNil(err) {
		return nil, err
	}
	for _, s := range moves {
		legal := movegen.LegalMoves(b)
		if !Contains(legal.Strings(), s) {
			return nil, Errorf("illegal move '%v' in '%v'", s, FenStringForBoard(b))
		}
		move, err := b.MoveFromString(s)
		if !IsNil(err) {
			return nil, err
		}
		b.PerformMove(move)
	}
	return b, NilError
}

func depthFromString(s string) (int, Error) {
	depth, err := strconv.Atoi(s)
	if err != nil {
		return 0, Wrap(err)
	}
	if depth < 0 || depth > MaxDepth {
		return 0, Errorf("depth %v outside [0, %v]", depth, MaxDepth)
	}
	return depth, NilError
}

func movesFromQuery(r *http.Request) []string {
	moves := r.URL.Query().Get("moves")
	if moves == "" {
		return []string{}
	}
	return strings.Fields(moves)
}

func writeJson(logger Logger, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if !IsNil(err) {
		logger.Println("json encode: ", err)
	}
}

type Server struct {
	logger   Logger
	upgrader websocket.Upgrader
}

func NewServer(logger Logger) *Server {
	return &Server{logger: logger}
}

func (s *Server) requestLogger(r *http.Request) Logger {
	return PrefixLogger(fmt.Sprintf("[%v %v]", r.URL.Path, uuid.New().String()), s.logger)
}

func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/perft", s.handlePerft).Methods(http.MethodGet)
	router.HandleFunc("/moves", s.handleMoves).Methods(http.MethodGet)
	router.HandleFunc("/ws", s.handleDivide)
	return router
}

func (s *Server) handlePerft(w http.ResponseWriter, r *http.Request) {
	logger := s.requestLogger(r)
	query := r.URL.Query()

	depth, err := depthFromString(query.Get("depth"))
	if !IsNil(err) {
		writeJson(logger, w, http.StatusBadRequest, ErrorResponse{err.Message()})
		return
	}
	b, err := boardForPosition(query.Get("fen"), movesFromQuery(r))
	if !IsNil(err) {
		writeJson(logger, w, http.StatusBadRequest, ErrorResponse{err.Message()})
		return
	}

	logger.Println("perft", depth, FenStringForBoard(b))
	nodes, err := perft.PerftContext(r.Context(), b, depth)
	if !IsNil(err) {
		logger.Println("perft cancelled: ", err.Message())
		writeJson(logger, w, http.StatusServiceUnavailable, ErrorResponse{err.Message()})
		return
	}
	writeJson(logger, w, http.StatusOK, PerftResponse{
		Fen:   FenStringForBoard(b),
		Depth: depth,
		Nodes: nodes,
		Hash:  fmt.Sprintf("%016x", b.Hash()),
	})
}

func (s *Server) handleMoves(w http.ResponseWriter, r *http.Request) {
	logger := s.requestLogger(r)

	b, err := boardForPosition(r.URL.Query().Get("fen"), movesFromQuery(r))
	if !IsNil(err) {
		writeJson(logger, w, http.StatusBadRequest, ErrorResponse{err.Message()})
		return
	}

	moves := movegen.LegalMoves(b)
	writeJson(logger, w, http.StatusOK, MovesResponse{
		Fen:     FenStringForBoard(b),
		Moves:   moves.Strings(),
		InCheck: b.KingIsInCheck(),
		Status:  movegen.Status(b).String(),
	})
}

// handleDivide reads divide requests off a websocket and streams one update
// per root move, followed by a final update holding the total.
func (s *Server) handleDivide(w http.ResponseWriter, r *http.Request) {
	logger := s.requestLogger(r)

	c, err := s.upgrader.Upgrade(w, r, nil)
	if !IsNil(err) {
		logger.Println("upgrade: ", err)
		return
	}
	defer c.Close()

	var send = func(update DivideUpdate) bool {
		err := c.WriteJSON(update)
		if !IsNil(err) {
			logger.Println("websocket: ", err)
			return false
		}
		return true
	}

	for {
		var request DivideRequest
		err := c.ReadJSON(&request)
		if !IsNil(err) {
			logger.Println("read: ", err)
			return
		}
		logger.Println("received", request)

		fen := ""
		if request.Fen != nil {
			fen = *request.Fen
		}
		if request.Depth < 1 || request.Depth > MaxDepth {
			send(DivideUpdate{Final: true, Error: fmt.Sprintf("depth %v outside [1, %v]", request.Depth, MaxDepth)})
			continue
		}
		b, positionErr := boardForPosition(fen, request.Moves)
		if !IsNil(positionErr) {
			send(DivideUpdate{Final: true, Error: positionErr.Message()})
			continue
		}

		moves := movegen.LegalMoves(b)
		total := uint64(0)
		ok := true
		for i, move := range moves.Slice() {
			b.PerformMove(move)
			nodes := perft.Perft(b, request.Depth-1)
			b.UndoMove()

			total += nodes
			if ok = send(DivideUpdate{Move: move.String(), Nodes: nodes, Done: i + 1, Total: moves.Len()}); !ok {
				break
			}
		}
		if !ok || !send(DivideUpdate{Nodes: total, Done: moves.Len(), Total: moves.Len(), Final: true}) {
			return
		}
	}
}
