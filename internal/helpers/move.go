package helpers

// MaxMoveCount bounds the number of legal moves in any reachable position.
const MaxMoveCount = 218

type MoveFlags uint32

const (
	CaptureFlag MoveFlags = 1 << iota
	DoublePawnPushFlag
	EnPassantFlag
	KingCastleFlag
	QueenCastleFlag

	QuietFlags  MoveFlags = 0
	CastleFlags           = KingCastleFlag | QueenCastleFlag
)

// Move packs a from square, a to square, flags and a promotion selector:
//
//	bits 0-5   from
//	bits 6-11  to
//	bits 12-16 flags
//	bits 17-19 promotion piece type + 1 (0 when not a promotion)
type Move uint32

const (
	_toShift        = 6
	_flagsShift     = 12
	_promotionShift = 17

	_squareMask    = 0x3f
	_flagsMask     = 0x1f
	_promotionMask = 0x7
)

const NullMove Move = 0

var PromotionPieceTypes = [4]PieceType{Queen, Rook, Bishop, Knight}

func NewMove(from int, to int, flags MoveFlags) Move {
	return Move(uint32(from)&_squareMask |
		(uint32(to)&_squareMask)<<_toShift |
		(uint32(flags)&_flagsMask)<<_flagsShift)
}

func (m Move) WithPromotion(pieceType PieceType) Move {
	m &^= _promotionMask << _promotionShift
	return m | Move((uint32(pieceType)+1)&_promotionMask)<<_promotionShift
}

func (m Move) From() int {
	return int(m & _squareMask)
}

func (m Move) To() int {
	return int(m>>_toShift) & _squareMask
}

func (m Move) Flags() MoveFlags {
	return MoveFlags(m>>_flagsShift) & _flagsMask
}

func (m Move) IsCapture() bool {
	return m.Flags()&(CaptureFlag|EnPassantFlag) != 0
}

func (m Move) IsEnPassant() bool {
	return m.Flags()&EnPassantFlag != 0
}

func (m Move) IsDoublePawnPush() bool {
	return m.Flags()&DoublePawnPushFlag != 0
}

func (m Move) IsCastle() bool {
	return m.Flags()&CastleFlags != 0
}

func (m Move) CastlingSide() Optional[CastlingSide] {
	switch {
	case m.Flags()&KingCastleFlag != 0:
		return Some(Kingside)
	case m.Flags()&QueenCastleFlag != 0:
		return Some(Queenside)
	}
	return Empty[CastlingSide]()
}

func (m Move) IsPromotion() bool {
	return (m>>_promotionShift)&_promotionMask != 0
}

// PromotionPiece is InvalidPiece when the move does not promote.
func (m Move) PromotionPiece() PieceType {
	selector := (m >> _promotionShift) & _promotionMask
	if selector == 0 {
		return InvalidPiece
	}
	return PieceType(selector - 1)
}

func (m Move) String() string {
	if m == NullMove {
		return "0000"
	}
	s := StringFromBoardIndex(m.From()) + StringFromBoardIndex(m.To())
	if m.IsPromotion() {
		s += m.PromotionPiece().String()
	}
	return s
}

func (m Move) DebugString() string {
	s := m.String()
	switch {
	case m.IsCastle():
		s += " " + m.CastlingSide().Value().String()
	case m.IsEnPassant():
		s += " e.p."
	case m.IsCapture():
		s += " x"
	case m.IsDoublePawnPush():
		s += " dpp"
	}
	return s
}

// MoveList is a fixed-capacity move buffer sized for the legal move bound.
type MoveList struct {
	moves [MaxMoveCount]Move
	n     int
}

func (l *MoveList) Add(m Move) {
	if l.n >= MaxMoveCount {
		panic(Errorf("move list overflow adding %v", m))
	}
	l.moves[l.n] = m
	l.n++
}

func (l *MoveList) Len() int {
	return l.n
}

func (l *MoveList) At(i int) Move {
	return l.moves[i]
}

func (l *MoveList) Reset() {
	l.n = 0
}

// Slice aliases the list's storage.
func (l *MoveList) Slice() []Move {
	return l.moves[:l.n]
}

func (l *MoveList) Strings() []string {
	return MapSlice(l.Slice(), Move.String)
}
