package main

import (
	"fmt"
	sys "os"
)

func main() {
	fmt.Println("start")
	sys.Exit(1) // want "direct call os.Exit is not allowed in main function"
}
