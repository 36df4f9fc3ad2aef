// Command linter checks the repository with the hostguard analyzer: code
// shipped to host applications must never panic or terminate the process.
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/apilytics/apilytics-go/cmd/linter/analyzer"
)

func main() {
	singlechecker.Main(analyzer.Analyzer)
}
