package main

import (
	"log"

	"github.com/mkrogh/reelmatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
