// Package feed speaks the referee's line protocol: it reads the header and
// per-tick snapshots, folds them into a game.Board and writes actions back.
package feed

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// EntityType is the first field of an entity line.
type EntityType int

const (
	EntityCharacter EntityType = 0
	EntityDevice    EntityType = 1
	EntityItem      EntityType = 2
)

func (t EntityType) String() string {
	switch t {
	case EntityCharacter:
		return "character"
	case EntityDevice:
		return "device"
	case EntityItem:
		return "item"
	}
	return "unknown"
}

// Header is the first line of a session.
type Header struct {
	Width  int
	Height int
	MyID   int
}

// Entity is one entity line. For devices Param1 is the countdown and Param2
// is the blast range plus one. For items Param1 is the item kind.
type Entity struct {
	Type   EntityType
	Owner  int
	X      int
	Y      int
	Param1 int
	Param2 int
}

// Tick is one raw snapshot.
type Tick struct {
	Rows     []string
	Entities []Entity
}

// entityPrealloc bounds the capacity reserved from an untrusted entity count.
const entityPrealloc = 64

// Reader decodes the input stream. Create with NewReader and call Header once
// before the first Next.
type Reader struct {
	sc     *bufio.Scanner
	header Header
	ready  bool
	line   int
}

func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	return &Reader{sc: sc}
}

func (r *Reader) nextLine() (string, error) {
	for r.sc.Scan() {
		r.line++
		line := strings.TrimRight(r.sc.Text(), "\r")
		if line != "" {
			return line, nil
		}
	}
	if err := r.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (r *Reader) ints(want int) ([]int, error) {
	line, err := r.nextLine()
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(line)
	if len(fields) != want {
		return nil, fmt.Errorf("line %d: got %d fields, want %d", r.line, len(fields), want)
	}
	out := make([]int, want)
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("line %d field %d: %w", r.line, i, err)
		}
		out[i] = n
	}
	return out, nil
}

// Header reads the session header.
func (r *Reader) Header() (Header, error) {
	if r.ready {
		return r.header, nil
	}
	v, err := r.ints(3)
	if err != nil {
		return Header{}, fmt.Errorf("reading header: %w", err)
	}
	if v[0] <= 0 || v[1] <= 0 {
		return Header{}, fmt.Errorf("reading header: bad board size %dx%d", v[0], v[1])
	}
	r.header = Header{Width: v[0], Height: v[1], MyID: v[2]}
	r.ready = true
	return r.header, nil
}

// Next reads one tick. It returns io.EOF when the stream ends cleanly between
// ticks and io.ErrUnexpectedEOF when it ends inside one.
func (r *Reader) Next() (Tick, error) {
	if !r.ready {
		return Tick{}, errors.New("feed: Next called before Header")
	}
	var t Tick
	for i := 0; i < r.header.Height; i++ {
		line, err := r.nextLine()
		if err != nil {
			return Tick{}, truncated(err, i == 0)
		}
		if len(line) != r.header.Width {
			return Tick{}, fmt.Errorf("line %d: row %d has width %d, want %d", r.line, i, len(line), r.header.Width)
		}
		t.Rows = append(t.Rows, line)
	}

	count, err := r.ints(1)
	if err != nil {
		return Tick{}, fmt.Errorf("reading entity count: %w", truncated(err, false))
	}
	if count[0] < 0 {
		return Tick{}, fmt.Errorf("line %d: negative entity count %d", r.line, count[0])
	}
	t.Entities = make([]Entity, 0, min(count[0], entityPrealloc))
	for i := 0; i < count[0]; i++ {
		v, err := r.ints(6)
		if err != nil {
			return Tick{}, fmt.Errorf("reading entity %d: %w", i, truncated(err, false))
		}
		t.Entities = append(t.Entities, Entity{
			Type:   EntityType(v[0]),
			Owner:  v[1],
			X:      v[2],
			Y:      v[3],
			Param1: v[4],
			Param2: v[5],
		})
	}
	return t, nil
}

func truncated(err error, atBoundary bool) error {
	if errors.Is(err, io.EOF) && !atBoundary {
		return io.ErrUnexpectedEOF
	}
	return err
}
