// Package frontmatter extracts and decodes the metadata block at the top of a
// post file.
//
// A metadata block is delimited by two lines made of exactly three hyphens,
// optionally followed by spaces or tabs:
//
//	---
//	title: Hello
//	date: 2024-06-01
//	tags: [go]
//	---
//	# Body
package frontmatter

import (
	"errors"
	"io"
	"unicode/utf8"

	"github.com/starford/blogon/internal/apperr"
)

// DefaultChunkSize is the size of the reads issued by Extract.
const DefaultChunkSize = 1024

// Block is the result of Extract.
type Block struct {
	// Data holds the bytes strictly between the two boundary lines.
	Data []byte
	// BodyOffset is the offset of the first byte after the closing boundary.
	BodyOffset int64
}

type scanState uint8

const (
	lineStart scanState = iota
	inHyphens
	inTrailing
	skipLine
)

// scanner is a byte-level state machine fed one chunk at a time, so that a
// boundary split across two reads is still recognised.
type scanner struct {
	state   scanState
	hyphens int
	spaces  int

	offset    int64 // absolute offset of the next byte
	lineBegin int64 // offset where the current candidate boundary line starts

	openEnd    int64 // offset right after the opening boundary, -1 until seen
	closeBegin int64
	closeEnd   int64
	done       bool

	data []byte // bytes seen after the opening boundary
}

func newScanner() *scanner {
	return &scanner{openEnd: -1}
}

func (s *scanner) feed(chunk []byte) {
	for i, c := range chunk {
		pos := s.offset + int64(i)
		switch s.state {
		case lineStart:
			switch c {
			case '-':
				s.state = inHyphens
				s.hyphens = 1
				s.lineBegin = pos
			case '\n':
			default:
				s.state = skipLine
			}
		case inHyphens:
			switch {
			case c == '-':
				s.hyphens++
				if s.hyphens > 3 {
					s.state = skipLine
				}
			case s.hyphens == 3 && (c == ' ' || c == '\t' || c == '\r'):
				s.state = inTrailing
				s.spaces = 1
			case s.hyphens == 3 && c == '\n':
				s.boundary(pos + 1)
			case c == '\n':
				s.state = lineStart
			default:
				s.state = skipLine
			}
		case inTrailing:
			switch c {
			case ' ', '\t', '\r':
				s.spaces++
			case '\n':
				s.boundary(pos + 1)
			default:
				s.state = skipLine
			}
		case skipLine:
			if c == '\n' {
				s.state = lineStart
			}
		}
		if s.done {
			s.collect(chunk[:i+1], s.offset)
			s.offset = pos + 1
			return
		}
	}
	s.collect(chunk, s.offset)
	s.offset += int64(len(chunk))
}

// collect keeps the part of chunk (starting at absolute offset base) that lies
// after the opening boundary.
func (s *scanner) collect(chunk []byte, base int64) {
	if s.openEnd < 0 {
		return
	}
	if start := s.openEnd - base; start > 0 {
		if start >= int64(len(chunk)) {
			return
		}
		chunk = chunk[start:]
	}
	s.data = append(s.data, chunk...)
}

func (s *scanner) boundary(end int64) {
	s.state = lineStart
	s.hyphens = 0
	s.spaces = 0
	if s.openEnd < 0 {
		s.openEnd = end
		return
	}
	s.closeBegin = s.lineBegin
	s.closeEnd = end
	s.done = true
}

// Extract reads r from its current position (expected to be offset 0) in
// chunks of chunkSize bytes until it has seen both metadata boundaries.
//
// On success r is left positioned right after the opening boundary; callers
// that want the body seek to Block.BodyOffset. A zero or negative chunkSize
// selects DefaultChunkSize.
func Extract(r io.ReadSeeker, path string, chunkSize int) (Block, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	s := newScanner()
	buf := make([]byte, chunkSize)
	for !s.done {
		n, err := r.Read(buf)
		if n > 0 {
			s.feed(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return Block{}, apperr.IO(path, err)
		}
	}
	if !s.done {
		return Block{}, apperr.Malformed(path, apperr.ErrMissingFrontMatter)
	}

	data := s.data[:s.closeBegin-s.openEnd]
	if !utf8.Valid(data) {
		return Block{}, apperr.Malformed(path, errors.New("front matter is not valid utf-8"))
	}
	if _, err := r.Seek(s.openEnd, io.SeekStart); err != nil {
		return Block{}, apperr.IO(path, err)
	}
	return Block{Data: data, BodyOffset: s.closeEnd}, nil
}
