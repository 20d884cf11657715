package main

import (
	"go/ast"
	"path"
	"strings"

	"golang.org/x/tools/go/analysis"
)

// pureClockPackages пакеты, которые получают текущее время только параметром.
// nolint:gochecknoglobals
var pureClockPackages = map[string]bool{
	"geo":       true,
	"linkstate": true,
}

// NoClockInPure запрещает time.Now в пакетах чистых вычислений геозоны и состояния ссылки.
// nolint:gochecknoglobals
var NoClockInPure = &analysis.Analyzer{
	Name: "noclockinpure",
	Doc:  "check that geo and link state packages take the current time as an argument",
	Run:  runClockCheck,
}

func runClockCheck(pass *analysis.Pass) (interface{}, error) {
	if !pureClockPackages[path.Base(pass.Pkg.Path())] {
		return nil, nil //nolint:nilnil
	}

	for _, file := range pass.Files {
		if strings.HasSuffix(pass.Fset.Position(file.Pos()).Filename, "_test.go") {
			continue
		}
		ast.Inspect(file, func(n ast.Node) bool {
			callExpr, ok := n.(*ast.CallExpr)
			if ok && isPkgFunc(pass, callExpr, "time", "Now") {
				pass.Reportf(callExpr.Pos(), "time.Now is not allowed in package %s, pass now explicitly",
					pass.Pkg.Name())
			}
			return true
		})
	}
	return nil, nil //nolint:nilnil
}
