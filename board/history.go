package board

// MoveRecord is one entry of the move log.
type MoveRecord struct {
	Ply        int
	Player     Color
	Notation   string // coordinate notation, e.g. "e2e4"
	Piece      Piece  // the piece as it stood before moving
	Annotation string
	Start      Square
	End        Square
	Captured   Piece
	Promotion  PieceType
	BookKey    string // position key before the move
}

// Move returns the record as a Move.
func (r MoveRecord) Move() Move {
	return Move{From: r.Start, To: r.End, Promotion: r.Promotion}
}

// History is the append-only move log, ordered by ply.
type History struct {
	records []MoveRecord
}

func (h *History) Len() int { return len(h.records) }

// Last returns the most recent record.
func (h *History) Last() (MoveRecord, bool) {
	if len(h.records) == 0 {
		return MoveRecord{}, false
	}
	return h.records[len(h.records)-1], true
}

// Records returns a copy of the log.
func (h *History) Records() []MoveRecord {
	out := make([]MoveRecord, len(h.records))
	copy(out, h.records)
	return out
}

// Notations lists the moves in coordinate notation.
func (h *History) Notations() []string {
	out := make([]string, len(h.records))
	for i, r := range h.records {
		out[i] = r.Notation
	}
	return out
}

func (h *History) append(r MoveRecord) {
	h.records = append(h.records, r)
}

func (h *History) lastRef() *MoveRecord {
	if len(h.records) == 0 {
		return nil
	}
	return &h.records[len(h.records)-1]
}

func (h History) clone() History {
	if h.records == nil {
		return History{}
	}
	out := make([]MoveRecord, len(h.records))
	copy(out, h.records)
	return History{records: out}
}

func describeMove(r MoveRecord) string {
	s := r.Player.String() + " " + r.Piece.Type.String() + " " + r.Start.String() + " to " + r.End.String()
	if !r.Captured.IsEmpty() {
		s += " captures " + r.Captured.Type.String()
	}
	if r.Promotion != PieceTypeNone {
		s += " promotes to " + r.Promotion.String()
	}
	return s
}
