package main

import (
	"log"

	"github.com/wardplan/wardplan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
