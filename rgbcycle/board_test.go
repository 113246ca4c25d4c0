package main

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Each board variant is built from its own file plus the shared tinygo
// files, so pins the shared files use must come from the board file.
var boardFiles = []string{"board_pwm.go", "board_xiao.go"}

func parseFile(t *testing.T, name string) *ast.File {
	t.Helper()
	f, err := parser.ParseFile(token.NewFileSet(), name, nil, 0)
	require.NoError(t, err)
	return f
}

func declaredVars(f *ast.File) map[string]bool {
	names := map[string]bool{}
	for _, decl := range f.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.VAR {
			continue
		}
		for _, spec := range gen.Specs {
			for _, n := range spec.(*ast.ValueSpec).Names {
				names[n.Name] = true
			}
		}
	}
	return names
}

func TestBoardsDeclareLCDPins(t *testing.T) {
	for _, name := range boardFiles {
		t.Run(name, func(t *testing.T) {
			vars := declaredVars(parseFile(t, name))
			for _, v := range []string{"lcdBus", "lcdSDA", "lcdSCL"} {
				assert.True(t, vars[v], "%s does not declare %s", name, v)
			}
		})
	}
}

func TestSharedLCDSetupUsesNoBoardPins(t *testing.T) {
	f := parseFile(t, "board_lcd.go")
	ast.Inspect(f, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		if x, ok := sel.X.(*ast.Ident); ok && x.Name == "machine" {
			name := sel.Sel.Name
			if strings.HasPrefix(name, "GP") || strings.HasPrefix(name, "I2C0") || strings.HasPrefix(name, "I2C1") {
				t.Errorf("board_lcd.go uses board pin machine.%s", name)
			}
		}
		return true
	})
}
