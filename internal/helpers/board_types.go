package helpers

import (
	"strings"
)

type File uint
type Rank uint

type FileRank struct {
	File File
	Rank Rank
}

type Player uint

const (
	White Player = iota
	Black
)

var _playerStrings = [2]string{
	"white", "black",
}

func (p Player) String() string {
	return _playerStrings[p]
}

func (p Player) Other() Player {
	return 1 - p
}

// Piece is one of the twelve coloured pieces, or XX for an empty square.
type Piece uint

const (
	XX Piece = iota
	WR
	WN
	WB
	WK
	WQ
	WP
	BR
	BN
	BB
	BK
	BQ
	BP
)

const NumPieces = 13

type PieceType uint

const (
	Rook PieceType = iota
	Knight
	Bishop
	King
	Queen
	Pawn
	InvalidPiece
)

func (p PieceType) String() string {
	return [7]string{
		"r", "n", "b", "k", "q", "p", "?",
	}[p]
}

func (p PieceType) IsValid() bool {
	return p >= Rook && p <= Pawn
}

func PieceTypeFromString(s string) PieceType {
	switch s {
	case "r":
		return Rook
	case "n":
		return Knight
	case "b":
		return Bishop
	case "k":
		return King
	case "q":
		return Queen
	case "p":
		return Pawn
	default:
		return InvalidPiece
	}
}

func (f File) String() string {
	return [8]string{
		"a", "b", "c", "d", "e", "f", "g", "h",
	}[f]
}
func (r Rank) String() string {
	return [8]string{
		"1", "2", "3", "4", "5", "6", "7", "8",
	}[r]
}

func RankFromChar(c byte) (Rank, Error) {
	rank := int(c) - '1'
	if rank < 0 || rank >= 8 {
		return 0, Errorf("rank invalid %q", c)
	}
	return Rank(rank), NilError
}

func FileFromChar(c byte) (File, Error) {
	file := int(c) - 'a'
	if file < 0 || file >= 8 {
		return 0, Errorf("file invalid %q", c)
	}
	return File(file), NilError
}

func (v FileRank) String() string {
	return v.File.String() + v.Rank.String()
}

func FileRankFromString(s string) (FileRank, Error) {
	if len(s) != 2 {
		return FileRank{}, Errorf("invalid location %v", s)
	}

	file, fileErr := FileFromChar(s[0])
	rank, rankErr := RankFromChar(s[1])

	if !IsNil(fileErr) || !IsNil(rankErr) {
		return FileRank{}, Join(Errorf("invalid location %v", s), fileErr, rankErr)
	}

	return FileRank{file, rank}, NilError
}

func IndexFromFileRank(location FileRank) int {
	return int(location.Rank)*8 + int(location.File)
}

func FileRankFromIndex(index int) FileRank {
	f := File(index & 0b111)
	r := Rank(index >> 3)
	return FileRank{f, r}
}

func StringFromBoardIndex(index int) string {
	return FileRankFromIndex(index).String()
}

func BoardIndexFromString(s string) (int, Error) {
	location, err := FileRankFromString(s)
	if !IsNil(err) {
		return 0, err
	}
	return IndexFromFileRank(location), NilError
}

// MustBoardIndex is for package-level tables built from literal square names.
func MustBoardIndex(s string) int {
	index, err := BoardIndexFromString(s)
	if !IsNil(err) {
		panic(err)
	}
	return index
}

func PlayerFromString(c string) (Player, Error) {
	switch c {
	case "b":
		return Black, NilError
	case "w":
		return White, NilError
	default:
		return White, Errorf("invalid player char %v", c)
	}
}

var PieceTypeLookup = func() [16]PieceType {
	result := [16]PieceType{}
	result[XX] = InvalidPiece
	result[WR] = Rook
	result[WN] = Knight
	result[WB] = Bishop
	result[WK] = King
	result[WQ] = Queen
	result[WP] = Pawn
	result[BR] = Rook
	result[BN] = Knight
	result[BB] = Bishop
	result[BK] = King
	result[BQ] = Queen
	result[BP] = Pawn
	return result
}()

func (p Piece) PieceType() PieceType {
	return PieceTypeLookup[p]
}

// Player is only meaningful for non-empty pieces.
func (p Piece) Player() Player {
	if p < BR {
		return White
	}
	return Black
}

func (p Piece) IsWhite() bool {
	return p <= WP && p >= WR
}

func (p Piece) IsBlack() bool {
	return p <= BP && p >= BR
}

func (p Piece) IsEmpty() bool {
	return p == XX
}

var PieceForPlayer = func() [2][8]Piece {
	result := [2][8]Piece{}

	result[White][Rook] = WR
	result[White][Knight] = WN
	result[White][Bishop] = WB
	result[White][King] = WK
	result[White][Queen] = WQ
	result[White][Pawn] = WP

	result[Black][Rook] = BR
	result[Black][Knight] = BN
	result[Black][Bishop] = BB
	result[Black][King] = BK
	result[Black][Queen] = BQ
	result[Black][Pawn] = BP

	return result
}()

func PieceFromRune(c rune) (Piece, Error) {
	switch c {
	case 'R':
		return WR, NilError
	case 'N':
		return WN, NilError
	case 'B':
		return WB, NilError
	case 'K':
		return WK, NilError
	case 'Q':
		return WQ, NilError
	case 'P':
		return WP, NilError
	case 'r':
		return BR, NilError
	case 'n':
		return BN, NilError
	case 'b':
		return BB, NilError
	case 'k':
		return BK, NilError
	case 'q':
		return BQ, NilError
	case 'p':
		return BP, NilError
	default:
		return XX, Errorf("invalid piece %q", c)
	}
}

func (p Piece) String() string {
	return [NumPieces]string{
		" ",
		"R",
		"N",
		"B",
		"K",
		"Q",
		"P",
		"r",
		"n",
		"b",
		"k",
		"q",
		"p",
	}[p]
}

func (p Piece) Unicode() string {
	return [NumPieces]string{
		" ",
		"♖",
		"♘",
		"♗",
		"♔",
		"♕",
		"♙",
		"♜",
		"♞",
		"♝",
		"♚",
		"♛",
		"♟",
	}[p]
}

// BoardArray is the piece list: one slot per square, a1 first.
type BoardArray [64]Piece

func (b BoardArray) String() string {
	ranks := make([]string, 0, 8)
	for rank := 7; rank >= 0; rank-- {
		row := ""
		for _, p := range b[rank*8 : (rank+1)*8] {
			row += p.String()
		}
		ranks = append(ranks, row)
	}
	return strings.Join(ranks, "\n")
}

const _hintForeground = "\033[38;5;244m"
const _whiteBackground = "\033[48;5;250m"
const _blackBackground = "\033[48;5;245m"
const _resetColors = "\x1b[0m"

func (b BoardArray) Unicode() string {
	result := "  "
	for file := 0; file < 8; file++ {
		result += _hintForeground + " " + File(file).String() + " " + _resetColors
	}
	result += "\n"

	for rank := 7; rank >= 0; rank-- {
		result += _hintForeground + Rank(rank).String() + " " + _resetColors
		for file := 0; file < 8; file++ {
			piece := b[IndexFromFileRank(FileRank{File(file), Rank(rank)})]
			if (file+rank)%2 == 1 {
				result += _whiteBackground
			} else {
				result += _blackBackground
			}
			result += " " + piece.Unicode() + " " + _resetColors
		}
		result += "\n"
	}

	return result
}

type CastlingSide int

const (
	Kingside CastlingSide = iota
	Queenside
)

var AllCastlingSides = [2]CastlingSide{Kingside, Queenside}

func (s CastlingSide) String() string {
	if s == Kingside {
		return "O-O"
	}
	return "O-O-O"
}
