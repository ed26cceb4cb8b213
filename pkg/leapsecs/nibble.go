package leapsecs

// The binary format is a stream of 4-bit units: the high nibble of each
// byte precedes the low nibble. nibbleReader and nibbleWriter are the
// only code that knows about this packing; the codec above them deals in
// whole nibbles.

// nibbleReader steps through a byte slice one nibble at a time. It keeps
// a single read position and no lookahead buffer, so the codec can frame
// bytecodes with exactly one nibble of lookahead.
type nibbleReader struct {
	data []byte
	pos  int // nibble index, not byte index
}

// next consumes and returns the next nibble. The second result is false
// once the stream is exhausted.
func (r *nibbleReader) next() (uint8, bool) {
	if r.pos >= 2*len(r.data) {
		return 0, false
	}
	b := r.data[r.pos/2]
	if r.pos%2 == 0 {
		b >>= 4
	} else {
		b &= 0x0F
	}
	r.pos++
	return b, true
}

// remaining returns the number of unread nibbles.
func (r *nibbleReader) remaining() int {
	return 2*len(r.data) - r.pos
}

// nibbleWriter packs a sequence of nibbles into bytes, high nibble first.
type nibbleWriter struct {
	buf  []byte
	high uint8
	half bool // a high nibble is buffered awaiting its pair
}

// push appends one nibble to the stream. Only the low 4 bits of n are
// used.
func (w *nibbleWriter) push(n uint8) {
	if w.half {
		w.buf = append(w.buf, w.high<<4|n&0x0F)
		w.half = false
		return
	}
	w.high = n & 0x0F
	w.half = true
}

// finish returns the packed bytes. An odd-length stream gets a zero
// filler in the final low nibble; the binary encoder arranges its output
// so this filler never appears on the wire.
func (w *nibbleWriter) finish() []byte {
	if w.half {
		w.buf = append(w.buf, w.high<<4)
		w.half = false
	}
	return w.buf
}
