package btcutils

import (
	"encoding/binary"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/gaze-network/dutch-auction/common"
)

const (
	witnessMarker = 0x00
	witnessFlag   = 0x01
)

// ExtractSpentOutputs decodes the input list of a serialized transaction and returns
// the previous outputs it spends. Coinbase inputs are skipped.
//
// Decoding is best-effort: on truncated or malformed data it returns the inputs decoded
// before the failure and never panics.
func ExtractSpentOutputs(rawTx []byte) []wire.OutPoint {
	r := &byteReader{buf: rawTx}
	if !r.skip(4) { // version
		return nil
	}

	if r.remaining() >= 2 && r.buf[r.pos] == witnessMarker && r.buf[r.pos+1] == witnessFlag {
		r.skip(2)
	}

	count, ok := r.varInt()
	if !ok {
		return nil
	}

	outpoints := make([]wire.OutPoint, 0, min(count, uint64(r.remaining()/41)))
	for i := uint64(0); i < count; i++ {
		rawHash, ok := r.next(chainhash.HashSize)
		if !ok {
			return outpoints
		}
		index, ok := r.uint32()
		if !ok {
			return outpoints
		}
		scriptLen, ok := r.varInt()
		if !ok || scriptLen > uint64(r.remaining()) {
			return outpoints
		}
		r.skip(int(scriptLen))
		if !r.skip(4) { // sequence
			return outpoints
		}

		var hash chainhash.Hash
		copy(hash[:], rawHash)
		if hash == common.ZeroHash {
			continue
		}
		outpoints = append(outpoints, wire.OutPoint{Hash: hash, Index: index})
	}
	return outpoints
}

// byteReader reads little-endian fields and never reads past the end of buf.
type byteReader struct {
	buf []byte
	pos int
}

func (r *byteReader) remaining() int {
	return len(r.buf) - r.pos
}

func (r *byteReader) next(n int) ([]byte, bool) {
	if n < 0 || r.remaining() < n {
		return nil, false
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, true
}

func (r *byteReader) skip(n int) bool {
	_, ok := r.next(n)
	return ok
}

func (r *byteReader) uint32() (uint32, bool) {
	b, ok := r.next(4)
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint32(b), true
}

// varInt reads a CompactSize integer. Non-canonical encodings are accepted.
func (r *byteReader) varInt() (uint64, bool) {
	prefix, ok := r.next(1)
	if !ok {
		return 0, false
	}
	switch prefix[0] {
	case 0xfd:
		b, ok := r.next(2)
		if !ok {
			return 0, false
		}
		return uint64(binary.LittleEndian.Uint16(b)), true
	case 0xfe:
		b, ok := r.next(4)
		if !ok {
			return 0, false
		}
		return uint64(binary.LittleEndian.Uint32(b)), true
	case 0xff:
		b, ok := r.next(8)
		if !ok {
			return 0, false
		}
		return binary.LittleEndian.Uint64(b), true
	default:
		return uint64(prefix[0]), true
	}
}
