package main

import (
	"log"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: tool <arg>")
	}
	run()
	os.Exit(0)
}

func run() {
	defer os.Exit(3) // want `os.Exit terminates the process and is only allowed in main.main`
	log.Fatalf("oh no: %d", 7) // want `log.Fatalf terminates the process and is only allowed in main.main`
}
