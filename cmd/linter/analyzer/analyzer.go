// Package analyzer implements the hostguard analyzer. A telemetry library
// runs inside someone else's request path, so it must degrade silently:
// no panic calls anywhere, and no log.Fatal or os.Exit outside the main
// function of a main package.
package analyzer

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/ast/astutil"
)

var Analyzer = &analysis.Analyzer{
	Name: "hostguard",
	Doc:  "forbid panic, log.Fatal and os.Exit in code embedded into a host application",
	Run:  run,
}

func run(pass *analysis.Pass) (interface{}, error) {
	panicBuiltin := types.Universe.Lookup("panic")

	for _, file := range pass.Files {
		ast.Inspect(file, func(n ast.Node) bool {
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}

			obj := callee(pass, call)
			if obj == nil {
				return true
			}

			switch {
			case obj == panicBuiltin:
				pass.Reportf(call.Pos(), "panic must not be used: telemetry failures have to stay inside the library")
			case isPkgFunc(obj, "log", "Fatal", "Fatalf", "Fatalln"), isPkgFunc(obj, "os", "Exit"):
				if !inMainMain(pass, file, n) {
					pass.Reportf(call.Pos(), "%s.%s terminates the process and is only allowed in main.main", obj.Pkg().Name(), obj.Name())
				}
			}
			return true
		})
	}

	return nil, nil
}

// callee resolves the object a call expression invokes, covering both
// plain identifiers and package selectors.
func callee(pass *analysis.Pass, call *ast.CallExpr) types.Object {
	switch fun := call.Fun.(type) {
	case *ast.Ident:
		return pass.TypesInfo.ObjectOf(fun)
	case *ast.SelectorExpr:
		return pass.TypesInfo.ObjectOf(fun.Sel)
	}
	return nil
}

func isPkgFunc(obj types.Object, pkgPath string, names ...string) bool {
	fn, ok := obj.(*types.Func)
	if !ok {
		return false
	}
	pkg := fn.Pkg()
	if pkg == nil || pkg.Path() != pkgPath {
		return false
	}
	for _, name := range names {
		if fn.Name() == name {
			return true
		}
	}
	return false
}

// inMainMain reports whether the node sits inside func main of a main
// package.
func inMainMain(pass *analysis.Pass, file *ast.File, node ast.Node) bool {
	if pass.Pkg.Name() != "main" {
		return false
	}
	path, _ := astutil.PathEnclosingInterval(file, node.Pos(), node.End())
	for _, n := range path {
		if fn, ok := n.(*ast.FuncDecl); ok {
			return fn.Name.Name == "main" && fn.Recv == nil
		}
	}
	return false
}
