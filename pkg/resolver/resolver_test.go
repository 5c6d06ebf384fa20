package resolver

import (
	"testing"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/parser"
	"lox/interpreter-go/pkg/scanner"
	"lox/interpreter-go/pkg/token"
)

func resolveSource(t *testing.T, source string) ([]ast.Statement, Locals, []*Error) {
	t.Helper()
	tokens, scanErrs := scanner.New(source).ScanTokens()
	if len(scanErrs) != 0 {
		t.Fatalf("unexpected scan errors: %v", scanErrs)
	}
	stmts, parseErrs := parser.New(tokens).Parse()
	if len(parseErrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", parseErrs)
	}
	locals, errs := New().Resolve(stmts)
	return stmts, locals, errs
}

func expectErrors(t *testing.T, source string, want ...string) {
	t.Helper()
	_, _, errs := resolveSource(t, source)
	if len(errs) != len(want) {
		t.Fatalf("expected %d errors for %q, got %v", len(want), source, errs)
	}
	for i, msg := range want {
		if errs[i].Message != msg {
			t.Fatalf("error %d: expected %q, got %q", i, msg, errs[i].Message)
		}
	}
}

func TestShadowedReferencesResolveIndependently(t *testing.T) {
	stmts, locals, errs := resolveSource(t, "var a = 1; { var a = 2; { print a; } print a; }")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors %v", errs)
	}
	outer := stmts[1].(*ast.Block)
	inner := outer.Statements[1].(*ast.Block)
	deep := inner.Statements[0].(*ast.Print).Expression
	shallow := outer.Statements[2].(*ast.Print).Expression
	if depth, ok := locals[deep]; !ok || depth != 1 {
		t.Fatalf("expected inner reference at depth 1, got %d (%v)", depth, ok)
	}
	if depth, ok := locals[shallow]; !ok || depth != 0 {
		t.Fatalf("expected block reference at depth 0, got %d (%v)", depth, ok)
	}
}

func TestGlobalsAreNotRecorded(t *testing.T) {
	stmts, locals, _ := resolveSource(t, "var g = 1; print g;")
	ref := stmts[1].(*ast.Print).Expression
	if _, ok := locals[ref]; ok {
		t.Fatalf("expected global reference to be absent from locals")
	}
}

func TestInitializerSeesOuterBinding(t *testing.T) {
	stmts, locals, errs := resolveSource(t, "var a = 1; { var b = a + 1; }")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors %v", errs)
	}
	init := stmts[1].(*ast.Block).Statements[0].(*ast.Var).Initializer.(*ast.Binary).Left
	if _, ok := locals[init]; ok {
		t.Fatalf("expected global a to stay unresolved")
	}
}

func TestSelfReferenceInInitializer(t *testing.T) {
	const msg = "Can't read local variable in its own initializer."
	expectErrors(t, "{ var a = a; }", msg)
	expectErrors(t, "{ var b = 1; { var a = a; } }", msg)
	expectErrors(t, "{ var a = a; } var a = 1;", msg)
	expectErrors(t, "var a = a;")
	expectErrors(t, "var a = 1; { var a = a + 1; }")
}

func TestInitializerReadsEnclosingBinding(t *testing.T) {
	stmts, locals, errs := resolveSource(t, "{ var a = 1; { var a = a + 1; print a; } }")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors %v", errs)
	}
	inner := stmts[0].(*ast.Block).Statements[1].(*ast.Block)
	init := inner.Statements[0].(*ast.Var).Initializer.(*ast.Binary).Left
	if depth, ok := locals[init]; !ok || depth != 1 {
		t.Fatalf("expected initializer to read the outer a at depth 1, got %d (%v)", depth, ok)
	}
	use := inner.Statements[1].(*ast.Print).Expression
	if depth, ok := locals[use]; !ok || depth != 0 {
		t.Fatalf("expected the later read to see the new a at depth 0, got %d (%v)", depth, ok)
	}

	stmts, locals, errs = resolveSource(t, "var a = 1; { var a = a + 1; }")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors %v", errs)
	}
	init = stmts[1].(*ast.Block).Statements[0].(*ast.Var).Initializer.(*ast.Binary).Left
	if _, ok := locals[init]; ok {
		t.Fatalf("expected the initializer to fall through to the global a")
	}
}

func TestKnownGlobalsSatisfyInitializer(t *testing.T) {
	tokens, _ := scanner.New("{ var a = a; }").ScanTokens()
	stmts, _ := parser.New(tokens).Parse()
	locals, errs := New("a").Resolve(stmts)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors %v", errs)
	}
	init := stmts[0].(*ast.Block).Statements[0].(*ast.Var).Initializer
	if _, ok := locals[init]; ok {
		t.Fatalf("expected the known global to stay unrecorded")
	}
}

func TestDuplicateDeclarations(t *testing.T) {
	expectErrors(t, "{ var a = 1; var a = 2; }", "Already a variable with this name in this scope.")
	expectErrors(t, "{ var a = 1; { var a = 2; } }")
	expectErrors(t, "fun f(a, a) {}", "Already a variable with this name in this scope.")
	expectErrors(t, "var a = 1; var a = 2;")
}

func TestClosureDepths(t *testing.T) {
	stmts, locals, errs := resolveSource(t, "fun make() { var i = 0; fun inc() { i = i + 1; return i; } return inc; }")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors %v", errs)
	}
	inc := stmts[0].(*ast.Function).Body[1].(*ast.Function)
	assign := inc.Body[0].(*ast.ExpressionStatement).Expression.(*ast.Assign)
	if locals[assign] != 1 {
		t.Fatalf("expected assignment at depth 1, got %d", locals[assign])
	}
	ret := inc.Body[1].(*ast.Return).Value
	if locals[ret] != 1 {
		t.Fatalf("expected return value at depth 1, got %d", locals[ret])
	}
}

func TestThisAndSuperDepths(t *testing.T) {
	stmts, locals, errs := resolveSource(t, `
class A { greet() {} }
class B < A {
  greet() { super.greet(); return this; }
  static make() { return B; }
}`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors %v", errs)
	}
	b := stmts[1].(*ast.Class)
	greet := b.Methods[0]
	super := greet.Body[0].(*ast.ExpressionStatement).Expression.(*ast.Call).Callee
	this := greet.Body[1].(*ast.Return).Value
	if locals[super] != 2 {
		t.Fatalf("expected super at depth 2, got %d", locals[super])
	}
	if locals[this] != 1 {
		t.Fatalf("expected this at depth 1, got %d", locals[this])
	}
	ref := b.StaticMethods[0].Body[0].(*ast.Return).Value
	if _, ok := locals[ref]; ok {
		t.Fatalf("expected class name inside static method to be global")
	}
}

func TestStaticMethodLocalsSkipThisScope(t *testing.T) {
	stmts, locals, errs := resolveSource(t, `
{
  var x = 1;
  class A < B { static get() { return x; } }
}`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors %v", errs)
	}
	class := stmts[0].(*ast.Block).Statements[1].(*ast.Class)
	ref := class.StaticMethods[0].Body[0].(*ast.Return).Value
	// params scope, super scope, then the block declaring x.
	if locals[ref] != 2 {
		t.Fatalf("expected x at depth 2, got %d", locals[ref])
	}
}

func TestThisAndSuperMisuse(t *testing.T) {
	expectErrors(t, "print this;", "Can't use 'this' outside of a class.")
	expectErrors(t, "fun f() { return super.x; }", "Can't use 'super' outside of a class.")
	expectErrors(t, "class A { m() { super.m(); } }", "Can't use 'super' in a class with no superclass.")
	expectErrors(t, "class A { static m() { return this; } }", "Can't use 'this' in a static method.")
	expectErrors(t, "class A < B { static m() { return super.m(); } }", "Can't use 'super' in a static method.")
	expectErrors(t, "class A { static m() { fun inner() { return this; } } }", "Can't use 'this' in a static method.")
	expectErrors(t, "class A { m() { fun inner() { return this; } } }")
}

func TestInheritFromSelf(t *testing.T) {
	expectErrors(t, "class A < A {}", "A class can't inherit from itself.")
}

func TestTopLevelReturn(t *testing.T) {
	expectErrors(t, "return 1;", "Can't return from top-level code.")
}

func TestPassContinuesAfterErrors(t *testing.T) {
	expectErrors(t, "print this; { var a = 1; var a = 2; } return;",
		"Can't use 'this' outside of a class.",
		"Already a variable with this name in this scope.",
		"Can't return from top-level code.",
	)
}

func TestIdenticalReferencesGetDistinctEntries(t *testing.T) {
	// Built by hand so both references carry identical tokens.
	first := ast.Ref("a")
	second := ast.Ref("a")
	program := []ast.Statement{
		ast.Blk(
			ast.VarDecl("a", ast.Num(1)),
			ast.PrintStmt(first),
			ast.Blk(ast.PrintStmt(second)),
		),
	}
	locals, errs := New().Resolve(program)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors %v", errs)
	}
	if locals[first] != 0 || locals[second] != 1 {
		t.Fatalf("expected depths 0 and 1, got %d and %d", locals[first], locals[second])
	}
}

func TestLocalsMerge(t *testing.T) {
	a := ast.Ref("a")
	b := ast.NewThis(token.New(token.This, "this", nil, 3))
	dst := Locals{a: 1}
	dst.Merge(Locals{b: 2})
	if len(dst) != 2 || dst[a] != 1 || dst[b] != 2 {
		t.Fatalf("unexpected merge result %#v", dst)
	}
}
