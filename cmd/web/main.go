package main

import (
	"log"

	"primehunt/internal/server"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	if err := server.Run(); err != nil {
		log.Fatal(err.Error())
	}
}
