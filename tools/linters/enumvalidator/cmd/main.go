package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/The0mikkel/byceps/tools/linters/enumvalidator"
)

func main() {
	singlechecker.Main(enumvalidator.Analyzer)
}
