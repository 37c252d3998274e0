// Package puzfile parses the line-oriented puzzle input file format: a
// "W [H]" header line followed by one line per piece giving its four
// colors in LEFT TOP RIGHT BOTTOM order.
package puzfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/eternity2solver/eternity2/internal/board"
)

// Kind classifies a load failure.
type Kind int

const (
	InputMissing Kind = iota
	InputUnreadable
	InputMalformed
)

// Error wraps a load failure with its taxonomy Kind so callers (the CLI)
// can choose an exit code without string-matching messages.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// Load reads a puzzle file from path and parses it into a board.Puzzle.
func Load(path string) (*board.Puzzle, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &Error{Kind: InputMissing, Err: fmt.Errorf("puzzle file not found: %s", path)}
		}
		return nil, &Error{Kind: InputUnreadable, Err: fmt.Errorf("opening puzzle file %s: %w", path, err)}
	}
	defer f.Close()

	p, err := Parse(f)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Parse reads the puzzle format from r: a "W [H]" header line (H
// defaults to W) followed by W*H lines of four whitespace-separated
// colors in LEFT TOP RIGHT BOTTOM order. Piece id is the 0-based line
// index among piece lines.
func Parse(r io.Reader) (*board.Puzzle, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	if !scanner.Scan() {
		return nil, &Error{Kind: InputMalformed, Err: fmt.Errorf("empty puzzle file")}
	}
	header := strings.Fields(scanner.Text())
	if len(header) < 1 {
		return nil, &Error{Kind: InputMalformed, Err: fmt.Errorf("missing width on header line")}
	}
	width, err := strconv.Atoi(header[0])
	if err != nil || width <= 0 {
		return nil, &Error{Kind: InputMalformed, Err: fmt.Errorf("invalid width %q", header[0])}
	}
	height := width
	if len(header) >= 2 {
		height, err = strconv.Atoi(header[1])
		if err != nil || height <= 0 {
			return nil, &Error{Kind: InputMalformed, Err: fmt.Errorf("invalid height %q", header[1])}
		}
	}

	total := width * height
	if total > board.MaxPieces {
		return nil, &Error{Kind: InputMalformed, Err: fmt.Errorf("puzzle has %d cells, exceeds the %d-piece limit", total, board.MaxPieces)}
	}

	pieces := make([]board.Piece, 0, total)
	var maxColor board.Color

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, &Error{Kind: InputMalformed, Err: fmt.Errorf("piece line %d: need 4 colors, got %d", len(pieces), len(fields))}
		}
		colors := [4]board.Color{}
		for i := 0; i < 4; i++ {
			v, err := strconv.Atoi(fields[i])
			if err != nil || v < 0 {
				return nil, &Error{Kind: InputMalformed, Err: fmt.Errorf("piece line %d: invalid color %q", len(pieces), fields[i])}
			}
			colors[i] = board.Color(v)
			if colors[i] > maxColor {
				maxColor = colors[i]
			}
		}
		pieces = append(pieces, board.NewPiece(len(pieces), colors[0], colors[1], colors[2], colors[3]))
	}
	if err := scanner.Err(); err != nil {
		return nil, &Error{Kind: InputUnreadable, Err: fmt.Errorf("reading puzzle file: %w", err)}
	}

	if len(pieces) != total {
		return nil, &Error{Kind: InputMalformed, Err: fmt.Errorf("puzzle declares %d cells but has %d piece lines", total, len(pieces))}
	}

	return &board.Puzzle{
		Width:    width,
		Height:   height,
		MaxColor: maxColor,
		Pieces:   pieces,
	}, nil
}
