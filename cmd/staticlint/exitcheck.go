// cmd/staticlint/exitcheck.go
package main

import (
	"go/ast"
	"go/types"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/types/typeutil"
)

// NoDirectOsExit определяет анализатор, который проверяет прямые вызовы os.Exit
// в функции main пакета main.
// nolint:gochecknoglobals
var NoDirectOsExit = &analysis.Analyzer{
	Name: "nodirectosexit",
	Doc:  "check for direct os.Exit calls in main function",
	Run:  runExitCheck,
}

func runExitCheck(pass *analysis.Pass) (interface{}, error) {
	for _, file := range pass.Files {
		// Проверяем только файлы пакета main
		if file.Name.Name != "main" {
			continue
		}

		// Пропускаем файлы из кэша сборки
		if strings.Contains(pass.Fset.Position(file.Pos()).Filename, "go-build") {
			continue
		}

		for _, decl := range file.Decls {
			funcDecl, ok := decl.(*ast.FuncDecl)
			if !ok || funcDecl.Recv != nil || funcDecl.Name.Name != "main" || funcDecl.Body == nil {
				continue
			}

			ast.Inspect(funcDecl.Body, func(n ast.Node) bool {
				callExpr, okCall := n.(*ast.CallExpr)
				if !okCall || !isPkgFunc(pass, callExpr, "os", "Exit") {
					return true
				}

				position := pass.Fset.Position(callExpr.Pos())
				pass.Reportf(
					callExpr.Pos(),
					"%s:%d: direct call os.Exit is not allowed in main function",
					filepath.Base(position.Filename),
					position.Line,
				)
				return true
			})
		}
	}

	return nil, nil //nolint:nilnil
}

// isPkgFunc проверяет что вызов обращается к функции name пакета pkgPath.
// Алиасы импорта разрешаются через информацию о типах.
func isPkgFunc(pass *analysis.Pass, call *ast.CallExpr, pkgPath, name string) bool {
	fn, ok := typeutil.Callee(pass.TypesInfo, call).(*types.Func)
	if !ok || fn.Pkg() == nil {
		return false
	}
	return fn.Pkg().Path() == pkgPath && fn.Name() == name
}
