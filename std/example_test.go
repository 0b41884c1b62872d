package std_test

import (
	"fmt"

	"github.com/xtaci/hillcrypt/modmat"
	"github.com/xtaci/hillcrypt/std"
)

func ExampleCipher() {
	key, _ := modmat.NewFromSlice(3, 3, 127, []int64{6, 24, 1, 13, 16, 10, 20, 17, 15})
	c, err := std.NewCipher(key)
	if err != nil {
		fmt.Println(err)
		return
	}

	ct, _ := c.Encrypt([]byte("HybridProject"))
	fmt.Println(ct)

	pt, _ := c.Decrypt(ct)
	fmt.Printf("%q\n", std.TrimText(pt))
	// Output:
	// [5 42 14 2 98 104 25 37 123 111 47 115 61 111 34]
	// "HybridProject"
}

func ExampleChunk() {
	chunks, _ := std.Chunk(std.Pad([]byte("abcdefg"), 4), 4)
	for _, c := range chunks {
		fmt.Printf("%q\n", c)
	}
	// Output:
	// "abcd"
	// "efg\x00"
}
