package modmat_test

import (
	"fmt"

	"github.com/xtaci/hillcrypt/modmat"
)

func ExampleMatrix_Inverse() {
	key, _ := modmat.NewFromSlice(3, 3, 127, []int64{
		6, 24, 1,
		13, 16, 10,
		20, 17, 15,
	})
	inv, err := key.Inverse()
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Print(inv)
	// Output:
	// [ 107  98  63 ]
	// [  53 107  86 ]
	// [ 119  19  98 ]
}

func ExampleMatrix_Determinant() {
	m, _ := modmat.NewFromSlice(2, 2, 7, []int64{1, 2, 3, 4})
	d, _ := m.Determinant()
	fmt.Println(d)
	// Output: 5
}
