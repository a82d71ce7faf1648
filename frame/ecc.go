package frame

import (
	"fmt"
	"math/rand"

	"github.com/yyyoichi/bitstream-go"
	"github.com/yyyoichi/golay"
)

var _ factory = (*shuffledgolay)(nil)

type shuffledgolay int64

func (sg shuffledgolay) encode(bits []bool) ([]bool, error) {
	if len(bits) == 0 {
		return nil, nil
	}
	var encoded []uint64
	enc := golay.NewEncoder(&encoded)
	if err := enc.Encode(pack(bits), len(bits)); err != nil {
		return nil, fmt.Errorf("golay encode: %w", err)
	}
	encodedLen := enc.Bits()
	index := sg.generatePermutation(encodedLen)

	r := bitstream.NewBitReader(encoded, 0, 0)
	out := make([]bool, encodedLen)
	for i := range encodedLen {
		out[i], _ = r.ReadBitAt(index[i])
	}
	return out, nil
}

func (sg shuffledgolay) decode(bits []bool, size int) ([]bool, error) {
	if size == 0 {
		return nil, nil
	}
	// reverse shuffle: create same permutation then apply inverse
	index := sg.generatePermutation(len(bits))
	w := bitstream.NewBitWriter[uint64](0, 0)
	for i := range bits {
		w.WriteBitAt(index[i], bits[i])
	}

	var decoded []uint64
	dec := golay.NewDecoder(w.Data(), w.Bits())
	if err := dec.Decode(&decoded); err != nil {
		return nil, fmt.Errorf("golay decode: %w", err)
	}
	r := bitstream.NewBitReader(decoded, 0, 0)
	out := make([]bool, size)
	for i := range out {
		out[i], _ = r.ReadBitAt(i)
	}
	return out, nil
}

func (sg shuffledgolay) encodedLen(size int) int {
	if size == 0 {
		return 0
	}
	return golay.EncodedBits(size)
}

func (sg shuffledgolay) generatePermutation(length int) []int {
	index := make([]int, length)
	for i := range index {
		index[i] = i
	}
	rd := rand.New(rand.NewSource(int64(sg)))
	rd.Shuffle(length, func(i, j int) {
		index[i], index[j] = index[j], index[i]
	})
	return index
}

var _ factory = (*withoutecc)(nil)

type withoutecc struct{}

func (withoutecc) encode(bits []bool) ([]bool, error) {
	return bits, nil
}

func (withoutecc) decode(bits []bool, size int) ([]bool, error) {
	return bits[:size], nil
}

func (withoutecc) encodedLen(size int) int {
	return size
}

func pack(bits []bool) []uint64 {
	w := bitstream.NewBitWriter[uint64](0, 0)
	for _, v := range bits {
		w.WriteBool(v)
	}
	return w.Data()
}
