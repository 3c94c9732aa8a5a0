package compiler

import (
	"fmt"
	"strconv"
	"strings"
)

// Emitter performs pure syntax-directed translation from AST to target text
// (§4.5). It runs no analysis of its own and trusts a well-formed AST.
type Emitter struct {
	sb     strings.Builder
	indent int
}

// NewEmitter creates an Emitter with no output yet written.
func NewEmitter() *Emitter {
	return &Emitter{}
}

func (e *Emitter) writeIndent() {
	for i := 0; i < e.indent; i++ {
		e.sb.WriteString("  ")
	}
}

func (e *Emitter) writef(format string, args ...any) {
	fmt.Fprintf(&e.sb, format, args...)
}

// Emit renders prog's body inside a scope that receives H, followed by the
// lifecycle-registration epilogue for every lifecycle function the program
// declares (§4.5). Declared lifecycle names are taken directly from prog's
// top-level FuncDecls, in declaration order.
func (e *Emitter) Emit(prog *Program) string {
	e.sb.Reset()
	e.indent = 0

	e.sb.WriteString("(function (H) {\n")
	e.indent++

	var declaredLifecycle []string
	for _, stmt := range prog.Body {
		e.writeIndent()
		e.emitStmt(stmt)
		e.sb.WriteString("\n")
		if fd, ok := stmt.(*FuncDecl); ok {
			if _, ok := lifecycleRegistration[fd.Name]; ok {
				declaredLifecycle = append(declaredLifecycle, fd.Name)
			}
		}
	}

	if len(declaredLifecycle) > 0 {
		e.sb.WriteString("\n")
		for _, name := range declaredLifecycle {
			e.writeIndent()
			e.sb.WriteString(lifecycleRegistration[name])
			e.sb.WriteString(";\n")
		}
	}

	e.indent--
	e.sb.WriteString("})(H);\n")
	return e.sb.String()
}

// EmitFailure renders the fixed failure form (§4.5): a single comment header
// listing every ERROR diagnostic's message, with no executable code.
func EmitFailure(errorMessages []string) string {
	var sb strings.Builder
	sb.WriteString("/*\n")
	sb.WriteString(" * compilation failed:\n")
	for _, msg := range errorMessages {
		sb.WriteString(" *   - ")
		sb.WriteString(msg)
		sb.WriteString("\n")
	}
	sb.WriteString(" */\n")
	return sb.String()
}

func (e *Emitter) emitBlock(b *Block) {
	e.sb.WriteString("{\n")
	e.indent++
	for _, stmt := range b.Stmts {
		e.writeIndent()
		e.emitStmt(stmt)
		e.sb.WriteString("\n")
	}
	e.indent--
	e.writeIndent()
	e.sb.WriteString("}")
}

func (e *Emitter) emitStmt(stmt Stmt) {
	switch s := stmt.(type) {
	case *VarDecl:
		e.writef("%s %s", s.Form, s.Name)
		if s.Init != nil {
			e.sb.WriteString(" = ")
			e.emitExpr(s.Init)
		}
		e.sb.WriteString(";")

	case *FuncDecl:
		e.writef("function %s(%s) ", s.Name, strings.Join(s.Params, ", "))
		e.emitBlock(s.Body)

	case *Block:
		e.emitBlock(s)

	case *If:
		e.sb.WriteString("if (")
		e.emitExpr(s.Cond)
		e.sb.WriteString(") ")
		e.emitStmtAsBody(s.Then)
		if s.Else != nil {
			e.sb.WriteString(" else ")
			e.emitStmtAsBody(s.Else)
		}

	case *For:
		e.sb.WriteString("for (")
		if s.Init != nil {
			e.emitStmtInline(s.Init)
		}
		e.sb.WriteString("; ")
		e.emitExpr(s.Cond)
		e.sb.WriteString("; ")
		if s.Post != nil {
			e.emitStmtInline(s.Post)
		}
		e.sb.WriteString(") ")
		e.emitStmtAsBody(s.Body)

	case *While:
		e.sb.WriteString("while (")
		e.emitExpr(s.Cond)
		e.sb.WriteString(") ")
		e.emitStmtAsBody(s.Body)

	case *DoWhile:
		e.sb.WriteString("do ")
		e.emitStmtAsBody(s.Body)
		e.sb.WriteString(" while (")
		e.emitExpr(s.Cond)
		e.sb.WriteString(");")

	case *Switch:
		e.sb.WriteString("switch (")
		e.emitExpr(s.Target)
		e.sb.WriteString(") {\n")
		e.indent++
		for _, c := range s.Cases {
			e.writeIndent()
			if c.Test != nil {
				e.sb.WriteString("case ")
				e.emitExpr(c.Test)
				e.sb.WriteString(":\n")
			} else {
				e.sb.WriteString("default:\n")
			}
			e.indent++
			for _, bodyStmt := range c.Body {
				e.writeIndent()
				e.emitStmt(bodyStmt)
				e.sb.WriteString("\n")
			}
			e.indent--
		}
		e.indent--
		e.writeIndent()
		e.sb.WriteString("}")

	case *Return:
		e.sb.WriteString("return")
		if s.Value != nil {
			e.sb.WriteString(" ")
			e.emitExpr(s.Value)
		}
		e.sb.WriteString(";")

	case *Break:
		e.sb.WriteString("break;")

	case *Continue:
		e.sb.WriteString("continue;")

	case *Empty:
		e.sb.WriteString(";")

	case *ExprStmt:
		e.emitExpr(s.E)
		e.sb.WriteString(";")

	default:
		// Unknown node kind: a commented placeholder rather than a panic or
		// silently dropped statement (§9).
		e.writef("/* unsupported node %T */", s)
	}
}

// emitStmtAsBody renders a statement used as a control-flow body: a Block
// emits inline on the same line as its opening brace; any other statement
// emits as-is (the grammar allows a bare statement without braces there).
func (e *Emitter) emitStmtAsBody(stmt Stmt) {
	if b, ok := stmt.(*Block); ok {
		e.emitBlock(b)
		return
	}
	e.emitStmt(stmt)
}

// emitStmtInline renders a for-loop clause statement without its own
// trailing statement terminator or indentation.
func (e *Emitter) emitStmtInline(stmt Stmt) {
	switch s := stmt.(type) {
	case *VarDecl:
		e.writef("%s %s", s.Form, s.Name)
		if s.Init != nil {
			e.sb.WriteString(" = ")
			e.emitExpr(s.Init)
		}
	case *ExprStmt:
		e.emitExpr(s.E)
	default:
		e.emitStmt(stmt)
	}
}

var assignOpText = map[AssignOp]string{
	AssignSet: "=", AssignAdd: "+=", AssignSub: "-=",
	AssignMul: "*=", AssignDiv: "/=", AssignMod: "%=",
}

func (e *Emitter) emitExpr(expr Expr) {
	switch x := expr.(type) {
	case *Assign:
		e.emitExpr(x.Target)
		e.writef(" %s ", assignOpText[x.Op])
		e.emitExpr(x.Value)

	case *Binary:
		e.emitExpr(x.Left)
		e.writef(" %s ", x.Op)
		e.emitExpr(x.Right)

	case *Unary:
		e.writef("%s", x.Op)
		e.emitExpr(x.Right)

	case *Call:
		e.emitExpr(x.Callee)
		e.sb.WriteString("(")
		for i, arg := range x.Args {
			if i > 0 {
				e.sb.WriteString(", ")
			}
			e.emitExpr(arg)
		}
		e.sb.WriteString(")")

	case *Member:
		e.emitExpr(x.Object)
		if x.Computed {
			e.sb.WriteString("[")
			e.emitExpr(x.Property)
			e.sb.WriteString("]")
		} else {
			e.sb.WriteString(".")
			// Property is always an *Identifier for non-computed access.
			e.sb.WriteString(x.Property.(*Identifier).Name)
		}

	case *ThisRef:
		e.sb.WriteString("this")

	case *Identifier:
		if rewritten, ok := rewriteTable[x.Name]; ok {
			e.sb.WriteString(rewritten)
			return
		}
		e.sb.WriteString(x.Name)

	case *Literal:
		e.emitLiteral(x)

	case *ObjectLit:
		e.sb.WriteString("{")
		for i, prop := range x.Properties {
			if i > 0 {
				e.sb.WriteString(", ")
			}
			if prop.Computed {
				e.sb.WriteString("[")
				e.emitExpr(prop.Key)
				e.sb.WriteString("]")
			} else if ident, ok := prop.Key.(*Identifier); ok {
				e.sb.WriteString(ident.Name)
			} else {
				e.emitExpr(prop.Key)
			}
			e.sb.WriteString(": ")
			e.emitExpr(prop.Value)
		}
		e.sb.WriteString("}")

	case *ArrayLit:
		e.sb.WriteString("[")
		for i, el := range x.Elements {
			if i > 0 {
				e.sb.WriteString(", ")
			}
			if el != nil {
				e.emitExpr(el)
			}
		}
		e.sb.WriteString("]")

	case *Vec2Lit:
		e.sb.WriteString("{ x: ")
		e.emitExpr(x.X)
		e.sb.WriteString(", y: ")
		e.emitExpr(x.Y)
		e.sb.WriteString(" }")

	case *Vec3Lit:
		e.sb.WriteString("{ x: ")
		e.emitExpr(x.X)
		e.sb.WriteString(", y: ")
		e.emitExpr(x.Y)
		e.sb.WriteString(", z: ")
		e.emitExpr(x.Z)
		e.sb.WriteString(" }")

	default:
		e.writef("/* unsupported node %T */", x)
	}
}

// emitLiteral prints a Literal per §4.5: strings re-quoted with double
// quotes and inner double quotes escaped; numbers in decimal; null and
// booleans printed literally.
func (e *Emitter) emitLiteral(lit *Literal) {
	switch lit.Kind {
	case LitString:
		escaped := strings.ReplaceAll(lit.Raw, `\`, `\\`)
		escaped = strings.ReplaceAll(escaped, `"`, `\"`)
		e.sb.WriteString("\"")
		e.sb.WriteString(escaped)
		e.sb.WriteString("\"")
	case LitNumber:
		if f, err := parseNumberLiteralValue(lit.Raw); err == nil {
			e.sb.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
		} else {
			e.sb.WriteString(lit.Raw)
		}
	case LitBool:
		if lit.Bool {
			e.sb.WriteString("true")
		} else {
			e.sb.WriteString("false")
		}
	case LitNull:
		e.sb.WriteString(lit.Raw) // "null" or "undefined", printed literally
	}
}
