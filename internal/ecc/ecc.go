package ecc

import (
	"github.com/yyyoichi/bitstream-go"
	"github.com/yyyoichi/golay"
)

// Codec protects an embedded bit stream.
type Codec interface {
	// Encode returns the bit stream to embed for data.
	Encode(data []bool) []bool
	// Decode recovers data bits from an embedded stream of any length.
	// Trailing bits that do not form a whole code block are ignored.
	Decode(embedded []bool) []bool
	// EncodedLen returns the embedded length for size data bits.
	EncodedLen(size int) int
}

var _ Codec = (*None)(nil)

// None embeds data bits as they are.
type None struct{}

func (None) Encode(data []bool) []bool    { return data }
func (None) Decode(embedded []bool) []bool { return embedded }
func (None) EncodedLen(size int) int       { return size }

var _ Codec = (*Golay)(nil)

// Golay applies the extended binary Golay(24,12) code.
// Each 24-bit block corrects up to 3 flipped bits.
type Golay struct{}

const (
	golayData  = 12
	golayBlock = 24
)

func (Golay) Encode(data []bool) []bool {
	if len(data) == 0 {
		return nil
	}
	w := bitstream.NewBitWriter[uint64](0, 0)
	for _, v := range data {
		w.WriteBool(v)
	}
	var encoded []uint64
	enc := golay.NewEncoder(&encoded)
	_ = enc.Encode(w.Data(), w.Bits())
	encodedLen := enc.Bits()

	r := bitstream.NewBitReader(encoded, 0, 0)
	r.SetBits(encodedLen)
	out := make([]bool, encodedLen)
	for i := range out {
		out[i], _ = r.ReadBitAt(i)
	}
	return out
}

func (Golay) Decode(embedded []bool) []bool {
	blocks := len(embedded) / golayBlock
	if blocks == 0 {
		return nil
	}
	w := bitstream.NewBitWriter[uint64](0, 0)
	for _, v := range embedded[:blocks*golayBlock] {
		w.WriteBool(v)
	}
	var decoded []uint64
	dec := golay.NewDecoder(w.Data(), w.Bits())
	_ = dec.Decode(&decoded)

	r := bitstream.NewBitReader(decoded, 0, 0)
	r.SetBits(blocks * golayData)
	out := make([]bool, blocks*golayData)
	for i := range out {
		out[i], _ = r.ReadBitAt(i)
	}
	return out
}

func (Golay) EncodedLen(size int) int {
	return golay.EncodedBits(size)
}
