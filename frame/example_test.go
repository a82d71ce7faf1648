package frame_test

import (
	"fmt"

	"github.com/yyyoichi/runstego/frame"
)

// ExampleCodec shows the plain frame layout: a 32-bit length header followed
// by the payload bits.
func ExampleCodec() {
	c := frame.New()
	bits, _ := c.Encode([]byte("A"))
	fmt.Printf("%d bits, %d for the header\n", len(bits), frame.HeaderBits)

	payload, _ := c.Decode(bits)
	fmt.Println(string(payload))
	// Output:
	// 40 bits, 32 for the header
	// A
}

// ExampleWithGolay frames a payload with error correction.
func ExampleWithGolay() {
	c := frame.New(frame.WithGolay(frame.DefaultShuffleSeed))
	bits, _ := c.Encode([]byte("Hello"))
	fmt.Println(len(bits) == c.Len(5))

	payload, _ := c.Decode(bits)
	fmt.Println(string(payload))
	// Output:
	// true
	// Hello
}
