package main

import (
	"log"

	"github.com/formhive/formhive/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatal(err)
	}
}
