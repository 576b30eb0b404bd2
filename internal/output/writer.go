package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/chessrules-go/internal/config"
	"github.com/lgbarn/chessrules-go/internal/engine"
	"github.com/lgbarn/chessrules-go/internal/worker"
)

// StateWriter prints game states and batch results.
// Different implementations handle different formats (diagram, JSON).
type StateWriter interface {
	// WriteState writes the current state of a game.
	WriteState(g *engine.Game, doc StateDocument) error

	// WriteResult writes one batch classification.
	WriteResult(r worker.ProcessResult) error

	// Close writes anything still buffered.
	Close() error
}

// NewStateWriter picks the writer the configuration asks for.
func NewStateWriter(w io.Writer, cfg *config.Config) StateWriter {
	if cfg.Output.JSONFormat {
		return NewJSONWriter(w)
	}
	return NewTextWriter(w, cfg)
}

// TextWriter prints board diagrams and one line per batch result.
type TextWriter struct {
	w    io.Writer
	opts BoardOptions
	cfg  *config.Config
}

// NewTextWriter creates a text writer.
func NewTextWriter(w io.Writer, cfg *config.Config) *TextWriter {
	return &TextWriter{
		w:    w,
		opts: BoardOptions{NoColor: cfg.Output.NoColor},
		cfg:  cfg,
	}
}

// SetFlip chooses the board orientation.
func (tw *TextWriter) SetFlip(flip bool) {
	tw.opts.Flip = flip
}

// WriteState draws the board followed by a status line.
func (tw *TextWriter) WriteState(g *engine.Game, doc StateDocument) error {
	if err := RenderBoard(tw.w, g.Position(), tw.opts); err != nil {
		return err
	}
	line := fmt.Sprintf("%s to move, %s", doc.SideToMove, doc.Status)
	if doc.LastMove != "" {
		line += fmt.Sprintf(" (last %s", doc.LastMove)
		if doc.Evaluation != "" {
			line += " " + doc.Evaluation
		}
		line += ")"
	}
	if _, err := fmt.Fprintln(tw.w, line); err != nil {
		return err
	}
	if tw.cfg.Output.ShowLegalMoves && !doc.GameOver {
		_, err := fmt.Fprintf(tw.w, "moves: %s\n", strings.Join(doc.LegalMoves, " "))
		return err
	}
	return nil
}

// WriteResult writes "index status legal-moves" or the error.
func (tw *TextWriter) WriteResult(r worker.ProcessResult) error {
	if r.Err != nil {
		_, err := fmt.Fprintf(tw.w, "%d\terror\t%v\n", r.Index+1, r.Err)
		return err
	}
	dup := ""
	if r.Duplicate {
		dup = "\tduplicate"
	}
	_, err := fmt.Fprintf(tw.w, "%d\t%s\t%s\t%d%s\n", r.Index+1, colourName(r.SideToMove), r.Status, r.LegalMoves, dup)
	return err
}

// Close is a no-op for text output.
func (tw *TextWriter) Close() error {
	return nil
}

// JSONWriter writes states immediately and buffers batch results, writing
// them as one array on Close.
type JSONWriter struct {
	w       io.Writer
	results []ResultDocument
}

// NewJSONWriter creates a JSON writer.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w}
}

// WriteState writes the document.
func (jw *JSONWriter) WriteState(_ *engine.Game, doc StateDocument) error {
	return WriteJSON(jw.w, doc)
}

// WriteResult buffers a result.
func (jw *JSONWriter) WriteResult(r worker.ProcessResult) error {
	jw.results = append(jw.results, NewResultDocument(r))
	return nil
}

// Close writes buffered results as a JSON array.
func (jw *JSONWriter) Close() error {
	if len(jw.results) == 0 {
		return nil
	}
	err := WriteJSON(jw.w, jw.results)
	jw.results = jw.results[:0]
	return err
}
