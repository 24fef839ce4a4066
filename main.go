package main

import (
	"log"

	"github.com/syedfahad54/Eventify/cmd"
)

func main() {
	if err := cmd.Start(); err != nil {
		log.Fatal(err)
	}
}
