// Command astgen renders the Lox syntax tree node types from a small
// declaration file:
//
//	expr Binary {
//		Left Expression;
//		Operator token.Token;
//		Right Expression;
//	}
//
// Usage: astgen <in.def> <out.go> <package> [alias=importpath ...]
package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"strings"
	"unicode"

	"github.com/alecthomas/participle"

	. "github.com/dave/jennifer/jen"
)

type NodeDecls struct {
	Nodes []*NodeDecl `@@*`
}

type NodeDecl struct {
	Category string       `@("expr" | "stmt")`
	Name     string       `@Ident "{"`
	Fields   []*FieldDecl `@@* "}"`
}

type FieldDecl struct {
	Name    string `@Ident`
	Slice   bool   `@("[" "]")?`
	Pointer bool   `@"*"?`
	Type    string `@Ident ( @"." @Ident )? ";"`
}

func (n *NodeDecl) marker() string {
	if n.Category == "stmt" {
		return "statementMarker"
	}
	return "expressionMarker"
}

func (f *FieldDecl) param() string {
	runes := []rune(f.Name)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

func (f *FieldDecl) typeCode(imports map[string]string) (*Statement, error) {
	code := &Statement{}
	if f.Slice {
		code = code.Index()
	}
	if f.Pointer {
		code = code.Op("*")
	}
	if dot := strings.IndexByte(f.Type, '.'); dot >= 0 {
		alias, name := f.Type[:dot], f.Type[dot+1:]
		path, ok := imports[alias]
		if !ok {
			return nil, fmt.Errorf("field %s: no import path given for %q", f.Name, alias)
		}
		return code.Qual(path, name), nil
	}
	return code.Id(f.Type), nil
}

func GenerateNodes(pkgname string, imports map[string]string, decls *NodeDecls) (string, error) {
	f := NewFile(pkgname)
	f.HeaderComment("Code generated by astgen. DO NOT EDIT.")
	for alias, path := range imports {
		f.ImportAlias(path, alias)
	}

	consts := make([]Code, 0, len(decls.Nodes))
	for _, node := range decls.Nodes {
		consts = append(consts, Id("Node"+node.Name).Id("NodeType").Op("=").Lit(node.Name))
	}
	f.Const().Defs(consts...)

	for _, node := range decls.Nodes {
		fields := []Code{Id("nodeImpl"), Id(node.marker()), Line()}
		params := make([]Code, 0, len(node.Fields))
		values := []Code{Id("nodeImpl").Op(":").Id("newNodeImpl").Call(Id("Node" + node.Name))}
		for _, field := range node.Fields {
			typ, err := field.typeCode(imports)
			if err != nil {
				return "", fmt.Errorf("%s: %w", node.Name, err)
			}
			fields = append(fields, Id(field.Name).Add(typ))
			params = append(params, Id(field.param()).Add(typ.Clone()))
			values = append(values, Id(field.Name).Op(":").Id(field.param()))
		}
		f.Type().Id(node.Name).Struct(fields...)
		f.Func().Id("New"+node.Name).Params(params...).Op("*").Id(node.Name).Block(
			Return(Op("&").Id(node.Name).Values(values...)),
		)
	}

	return fmt.Sprintf("%#v", f), nil
}

func parseImports(args []string) (map[string]string, error) {
	imports := make(map[string]string, len(args))
	for _, arg := range args {
		eq := strings.IndexByte(arg, '=')
		if eq <= 0 || eq == len(arg)-1 {
			return nil, fmt.Errorf("bad import %q, want alias=importpath", arg)
		}
		imports[arg[:eq]] = arg[eq+1:]
	}
	return imports, nil
}

func main() {
	if len(os.Args) < 4 {
		fmt.Fprintln(os.Stderr, "usage: astgen <in.def> <out.go> <package> [alias=importpath ...]")
		os.Exit(2)
	}
	parser := participle.MustBuild(&NodeDecls{})

	in := os.Args[1]
	out := os.Args[2]
	pkgname := os.Args[3]
	imports, err := parseImports(os.Args[4:])
	if err != nil {
		panic(err)
	}

	inData, err := ioutil.ReadFile(in)
	if err != nil {
		panic(err)
	}

	decls := NodeDecls{}
	err = parser.ParseBytes(inData, &decls)
	if err != nil {
		panic(err)
	}

	src, err := GenerateNodes(pkgname, imports, &decls)
	if err != nil {
		panic(err)
	}
	err = ioutil.WriteFile(out, []byte(src), 0o644)
	if err != nil {
		panic(err)
	}
}
