//go:build debug

package str

import "fmt"

func assertInBounds(index, length int) {
	if index < 0 || index >= length {
		panic(fmt.Sprintf("str: index %d out of bounds [0, %d)", index, length))
	}
}
