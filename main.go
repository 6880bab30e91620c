// Public domain.

package main

import "github.com/agilescience/agtools/internal/agprog"

func main() {
	agprog.Main()
}
