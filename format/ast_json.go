package format

import (
	"encoding/json"
	"io"

	"github.com/typedant/antls/ant/parser"
)

// ASTJSONEncoder writes a syntax tree as nested JSON objects.
type ASTJSONEncoder struct {
	w io.Writer
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(node parser.Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *ASTJSONEncoder) MarshalText(node parser.Node) ([]byte, error) {
	return json.MarshalIndent(nodeToJSON(node), "", "  ")
}

type astJSONNode struct {
	Kind     string         `json:"kind"`
	Pos      *astJSONPos    `json:"pos,omitempty"`
	Token    string         `json:"token,omitempty"`
	Type     string         `json:"type,omitempty"`
	Children []*astJSONNode `json:"children,omitempty"`
}

type astJSONPos struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func leaf(kind string, tok parser.Token) *astJSONNode {
	return &astJSONNode{
		Kind:  kind,
		Pos:   &astJSONPos{Line: tok.Line, Column: tok.Column},
		Token: tok.Literal,
	}
}

func typeName(t *parser.TypeExpr) string {
	if t == nil {
		return ""
	}
	return t.Name.Literal
}

func nodeToJSON(n parser.Node) *astJSONNode {
	if n == nil {
		return nil
	}
	jn := &astJSONNode{}
	add := func(children ...parser.Node) {
		for _, child := range children {
			if child == nil {
				continue
			}
			jn.Children = append(jn.Children, nodeToJSON(child))
		}
	}

	switch n := n.(type) {
	case *parser.Program:
		jn.Kind = "Program"
		for _, s := range n.Statements {
			add(s)
		}
		return jn
	case *parser.LetStmt:
		jn = leaf("Let", n.Name)
		jn.Type = typeName(n.Type)
		add(n.Value)
	case *parser.AssignStmt:
		jn = leaf("Assign", n.Name)
		add(n.Value)
	case *parser.FuncDecl:
		jn = leaf("Func", n.Name)
		jn.Type = typeName(n.Result)
		for _, p := range n.Params {
			param := leaf("Param", p.Name)
			param.Type = typeName(p.Type)
			jn.Children = append(jn.Children, param)
		}
		add(n.Body)
	case *parser.Block:
		jn = leaf("Block", n.LBrace)
		jn.Token = ""
		for _, s := range n.Statements {
			add(s)
		}
	case *parser.IfStmt:
		jn = leaf("If", n.If)
		jn.Token = ""
		add(n.Cond, n.Then)
		if n.Else != nil {
			add(n.Else)
		}
	case *parser.WhileStmt:
		jn = leaf("While", n.While)
		jn.Token = ""
		add(n.Cond, n.Body)
	case *parser.ReturnStmt:
		jn = leaf("Return", n.Return)
		jn.Token = ""
		if n.Value != nil {
			add(n.Value)
		}
	case *parser.ExprStmt:
		jn = &astJSONNode{Kind: "ExprStmt"}
		add(n.Expr)
	case *parser.Ident:
		jn = leaf("Ident", n.Name)
	case *parser.Literal:
		jn = leaf("Literal", n.Value)
	case *parser.UnaryExpr:
		jn = leaf("Unary", n.Op)
		add(n.Operand)
	case *parser.BinaryExpr:
		jn = leaf("Binary", n.Op)
		add(n.Left, n.Right)
	case *parser.CallExpr:
		jn = leaf("Call", n.LParen)
		jn.Token = ""
		add(n.Callee)
		for _, arg := range n.Args {
			add(arg)
		}
	case *parser.ParenExpr:
		jn = leaf("Paren", n.LParen)
		jn.Token = ""
		add(n.Inner)
	default:
		jn.Kind = "Unknown"
	}
	return jn
}
