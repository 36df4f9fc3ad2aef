package library

import (
	"log"
	"os"
)

func Finalize(v interface{}) {
	if v == nil {
		panic("nil record") // want `panic must not be used: telemetry failures have to stay inside the library`
	}
}

func Abort() {
	log.Fatal("giving up") // want `log.Fatal terminates the process and is only allowed in main.main`
	os.Exit(1)             // want `os.Exit terminates the process and is only allowed in main.main`
}

func Fine() error {
	return nil
}
