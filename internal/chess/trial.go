package chess

import (
	"fmt"

	"github.com/lgbarn/chessrules-go/internal/errors"
)

// TrialRecord describes one speculatively applied move. It holds everything
// needed to revert the move exactly and is owned by the caller until it is
// passed back to Undo or Commit.
type TrialRecord struct {
	Piece    PieceID
	From     Square
	To       Square
	Captured PieceID // NoPiece if nothing was captured
	HadMoved bool

	// Rook is the companion rook move of a castling king, nil otherwise.
	Rook *TrialRecord
}

// IsCastle reports whether the record carries a rook relocation.
func (r TrialRecord) IsCastle() bool {
	return r.Rook != nil
}

// TrialOpen reports whether a trial move is outstanding.
func (p *Position) TrialOpen() bool {
	return p.trialOpen
}

// TryApply moves a piece to dest, removing captured first when it is not
// NoPiece. The captured piece need not stand on dest (en passant). A king
// moving two columns also carries the rook from the matching corner to the
// square next to the king's destination.
//
// Only one trial may be outstanding; starting another panics.
func (p *Position) TryApply(id PieceID, dest Square, captured PieceID) TrialRecord {
	if p.trialOpen {
		panic(errors.Wrapf(errors.ErrTrialOutstanding, "try %d to %s", id, dest))
	}
	pc := p.pieces[id]
	if !pc.Active {
		panic(fmt.Sprintf("chess: trial move of inactive piece %s", pc))
	}

	rec := TrialRecord{
		Piece:    id,
		From:     pc.Square,
		To:       dest,
		Captured: NoPiece,
		HadMoved: pc.HasMoved,
	}

	if pc.Kind == King && abs(dest.Col-pc.Square.Col) == 2 && dest.Row == pc.Square.Row {
		rookCol, rookDest := 1, dest.Col+1
		if dest.Col > pc.Square.Col {
			rookCol, rookDest = BoardSize, dest.Col-1
		}
		rookSq, rookTo := Sq(rookCol, pc.Square.Row), Sq(rookDest, pc.Square.Row)
		rid := p.occupant(rookSq)
		if rid != NoPiece && p.pieces[rid].Kind == Rook && p.pieces[rid].Colour == pc.Colour && p.occupant(rookTo) == NoPiece {
			rr := TrialRecord{
				Piece:    rid,
				From:     rookSq,
				To:       rookTo,
				Captured: NoPiece,
				HadMoved: p.pieces[rid].HasMoved,
			}
			p.relocate(rid, rr.To)
			p.pieces[rid].HasMoved = true
			rec.Rook = &rr
		}
	}

	if captured != NoPiece {
		p.Remove(captured)
		rec.Captured = captured
	}
	p.relocate(id, dest)
	p.pieces[id].HasMoved = true

	p.trialOpen = true
	return rec
}

// Undo reverts an outstanding trial. The position is restored exactly,
// including hasMoved flags and the captured piece.
func (p *Position) Undo(rec TrialRecord) {
	p.checkRecord(rec, "undo")

	p.relocate(rec.Piece, rec.From)
	p.pieces[rec.Piece].HasMoved = rec.HadMoved

	if rec.Rook != nil {
		p.relocate(rec.Rook.Piece, rec.Rook.From)
		p.pieces[rec.Rook.Piece].HasMoved = rec.Rook.HadMoved
	}
	if rec.Captured != NoPiece {
		p.Reinstate(rec.Captured)
	}
	p.trialOpen = false
}

// Commit finalises an outstanding trial. The captured piece stays removed.
func (p *Position) Commit(rec TrialRecord) {
	p.checkRecord(rec, "commit")
	p.trialOpen = false
}

func (p *Position) checkRecord(rec TrialRecord, op string) {
	if !p.trialOpen {
		panic(errors.Wrapf(errors.ErrNoTrial, "%s of %s-%s", op, rec.From, rec.To))
	}
	if rec.Piece < 0 || int(rec.Piece) >= len(p.pieces) {
		panic(errors.Wrapf(errors.ErrNoTrial, "%s: unknown piece %d", op, rec.Piece))
	}
	if pc := p.pieces[rec.Piece]; !pc.Active || pc.Square != rec.To {
		panic(errors.Wrapf(errors.ErrNoTrial, "%s: stale record %s-%s", op, rec.From, rec.To))
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
