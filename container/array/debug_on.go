//go:build debug

package array

import "fmt"

func assertInBounds(index, length int) {
	if index < 0 || index >= length {
		panic(fmt.Sprintf("array: index %d out of bounds [0, %d)", index, length))
	}
}
