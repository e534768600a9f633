// Package input turns a raw terminal byte stream into per-frame key state.
package input

import (
	"bufio"
	"context"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals report repeats, never releases, so a held key shows up as a stream
// of presses and a released key simply stops appearing.
const keyHoldDuration = 30 * time.Millisecond

// Key identifies one of the recognized movement keys.
type Key uint8

const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	keyCount
)

var keyNames = [keyCount]string{"W", "A", "S", "D", "Up", "Down", "Left", "Right"}

func (k Key) String() string {
	if k < keyCount {
		return keyNames[k]
	}
	return "Unknown"
}

// Input represents the current frame's input state.
type Input struct {
	pressed uint16 // bit per Key
	Quit    bool
	Closed  bool // the underlying reader is exhausted
}

// Pressed builds an Input with the given keys held. Mostly useful in tests.
func Pressed(keys ...Key) Input {
	var in Input
	for _, k := range keys {
		in.Press(k)
	}
	return in
}

// Press marks k as held.
func (in *Input) Press(k Key) {
	if k < keyCount {
		in.pressed |= 1 << k
	}
}

// IsPressed reports whether k is held.
func (in Input) IsPressed(k Key) bool {
	return k < keyCount && in.pressed&(1<<k) != 0
}

// AnyPressed reports whether at least one of keys is held.
func (in Input) AnyPressed(keys ...Key) bool {
	for _, k := range keys {
		if in.IsPressed(k) {
			return true
		}
	}
	return false
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch      chan byte
	pending []byte // unfinished escape sequence from the previous drain
	last    [keyCount]time.Time
	quit    time.Time
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The goroutine exits and closes the stream when r returns an error (EOF on
// session end) or ctx is done. A read already blocked in r still has to return.
func StartStream(ctx context.Context, r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		defer close(s.ch)
		for ctx.Err() == nil {
			b, err := r.ReadByte()
			if err != nil {
				return
			}
			select {
			case s.ch <- b:
			case <-ctx.Done():
				return
			}
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking) and
// returns which keys are held this frame.
func ReadInput(s *Stream) Input {
	return s.read(time.Now())
}

func (s *Stream) read(now time.Time) Input {
	var buf []byte

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	s.parse(buf, now)

	in := Input{Closed: s.closed}
	for k := Key(0); k < keyCount; k++ {
		if !s.last[k].IsZero() && now.Sub(s.last[k]) < keyHoldDuration {
			in.Press(k)
		}
	}
	in.Quit = !s.quit.IsZero() && now.Sub(s.quit) < keyHoldDuration
	return in
}

// parse updates key timestamps from a chunk of raw bytes.
// Handles CSI escape sequences for the arrow keys. An escape sequence cut off
// at the end of buf is held back and completed by the next chunk.
func (s *Stream) parse(buf []byte, now time.Time) {
	if len(s.pending) > 0 {
		buf = append(s.pending, buf...)
		s.pending = nil
	}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && partialEscape(buf[i:]) {
			s.pending = append([]byte(nil), buf[i:]...)
			return
		}

		if b == '\x1b' && i+2 < len(buf) && (buf[i+1] == '[' || buf[i+1] == 'O') {
			// CSI (ESC [) or SS3 (ESC O, application cursor mode) arrow keys
			if k, ok := arrowKey(buf[i+2]); ok {
				s.last[k] = now
				i += 2
				continue
			}
		}

		switch b {
		case 'w', 'W':
			s.last[KeyW] = now
		case 'a', 'A':
			s.last[KeyA] = now
		case 's', 'S':
			s.last[KeyS] = now
		case 'd', 'D':
			s.last[KeyD] = now
		case 'q', 'Q', '\x03':
			s.quit = now
		}
	}
}

// partialEscape reports whether seq, starting at ESC, could still become an
// arrow key sequence once more bytes arrive.
func partialEscape(seq []byte) bool {
	switch len(seq) {
	case 1:
		return true
	case 2:
		return seq[1] == '[' || seq[1] == 'O'
	}
	return false
}

func arrowKey(code byte) (Key, bool) {
	switch code {
	case 'A':
		return KeyUp, true
	case 'B':
		return KeyDown, true
	case 'C':
		return KeyRight, true
	case 'D':
		return KeyLeft, true
	}
	return 0, false
}
