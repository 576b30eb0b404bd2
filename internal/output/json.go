package output

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/worker"
)

// StateDocument is the JSON view of a game shared by the HTTP API and the
// command line.
type StateDocument struct {
	ID         string   `json:"id,omitempty"`
	Name       string   `json:"name,omitempty"`
	FEN        string   `json:"fen"`
	SideToMove string   `json:"sideToMove"` // "white" or "black"
	Status     string   `json:"status"`
	InCheck    bool     `json:"inCheck"`
	GameOver   bool     `json:"gameOver"`
	Ply        int      `json:"ply"`
	Board      []string `json:"board"` // Rows 8 to 1, '.' for empty
	LegalMoves []string `json:"legalMoves"`
	Automated  []string `json:"automated,omitempty"`
	UndoDepth  int      `json:"undoDepth"`
	LastMove   string   `json:"lastMove,omitempty"`
	Evaluation string   `json:"evaluation,omitempty"`
}

func colourName(c chess.Colour) string {
	return strings.ToLower(c.String())
}

// boardRows renders the placement as eight strings, row 8 first.
func boardRows(pos *chess.Position) []string {
	rows := make([]string, 0, chess.BoardSize)
	for row := chess.BoardSize; row >= 1; row-- {
		var b strings.Builder
		for col := 1; col <= chess.BoardSize; col++ {
			if pc, ok := pos.PieceAt(chess.Sq(col, row)); ok {
				b.WriteByte(pc.Letter())
			} else {
				b.WriteByte('.')
			}
		}
		rows = append(rows, b.String())
	}
	return rows
}

// NewStateDocument describes the current state of a game.
func NewStateDocument(g *engine.Game) StateDocument {
	pos := g.Position()
	status := g.Status()

	moves := engine.LegalMoves(pos, pos.SideToMove())
	texts := make([]string, len(moves))
	for i, m := range moves {
		texts[i] = m.String()
	}

	return StateDocument{
		FEN:        g.FEN(),
		SideToMove: colourName(pos.SideToMove()),
		Status:     status.String(),
		InCheck:    status == chess.Check || status == chess.Checkmate,
		GameOver:   status.IsTerminal(),
		Ply:        g.Ply(),
		Board:      boardRows(pos),
		LegalMoves: texts,
		UndoDepth:  g.History().Len(),
	}
}

// ResultDocument is the JSON view of one classified position.
type ResultDocument struct {
	Index      int    `json:"index"`
	FEN        string `json:"fen"`
	SideToMove string `json:"sideToMove,omitempty"`
	Status     string `json:"status,omitempty"`
	LegalMoves int    `json:"legalMoves"`
	Duplicate  bool   `json:"duplicate,omitempty"`
	Error      string `json:"error,omitempty"`
}

// NewResultDocument converts a batch classification result.
func NewResultDocument(r worker.ProcessResult) ResultDocument {
	doc := ResultDocument{
		Index:      r.Index,
		FEN:        r.FEN,
		LegalMoves: r.LegalMoves,
		Duplicate:  r.Duplicate,
	}
	if r.Err != nil {
		doc.Error = r.Err.Error()
		return doc
	}
	doc.SideToMove = colourName(r.SideToMove)
	doc.Status = r.Status.String()
	return doc
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
