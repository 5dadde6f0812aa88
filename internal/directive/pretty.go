package directive

import (
	"fmt"
	"strings"
)

// PrettyPrint renders a normalized directive stream in a debug-friendly,
// PTX-ish textual form. It is not a serialization format; it exists purely
// to make `--dump-normalized` output legible.
func PrettyPrint(directives []Directive) string {
	var b strings.Builder
	for i, d := range directives {
		if i > 0 {
			b.WriteString("\n")
		}
		switch v := d.(type) {
		case Method:
			b.WriteString(prettyMethod(v))
		case Variable:
			fmt.Fprintf(&b, ".global %s %%%d\n", v.Var.VType, v.Name)
		}
	}
	return b.String()
}

func prettyMethod(m Method) string {
	var b strings.Builder
	if m.FuncDecl.Name.Kernel != nil {
		fmt.Fprintf(&b, ".visible .entry %s(", *m.FuncDecl.Name.Kernel)
	} else if m.FuncDecl.Name.Func != nil {
		fmt.Fprintf(&b, ".func %%%d(", *m.FuncDecl.Name.Func)
	}
	for i, p := range m.FuncDecl.InputArguments {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%%%d: %s", p.Name, p.VType)
	}
	b.WriteString(")")
	if m.Body == nil {
		b.WriteString(";\n")
		return b.String()
	}
	b.WriteString(" {\n")
	for _, s := range m.Body {
		b.WriteString(prettyStatement(s, 1))
	}
	b.WriteString("}\n")
	return b.String()
}

func prettyStatement(s Statement, depth int) string {
	indent := strings.Repeat("  ", depth)
	switch v := s.(type) {
	case Label:
		return fmt.Sprintf("%s%%%d:\n", strings.Repeat("  ", depth-1), v.Name)
	case Variable:
		return fmt.Sprintf("%s.reg %s %%%d;\n", indent, v.Var.VType, v.Var.Name)
	case Instruction:
		return fmt.Sprintf("%s%s;\n", indent, v.Inst.Op())
	case Block:
		var b strings.Builder
		fmt.Fprintf(&b, "%s{\n", indent)
		for _, inner := range v.Body {
			b.WriteString(prettyStatement(inner, depth+1))
		}
		fmt.Fprintf(&b, "%s}\n", indent)
		return b.String()
	case LoadVar:
		return fmt.Sprintf("%sld %%%d, [%%%d];\n", indent, v.Arg.Dst, v.Arg.Src)
	case StoreVar:
		return fmt.Sprintf("%sst [%%%d], %%%d;\n", indent, v.Arg.Src1, v.Arg.Src2)
	case Constant:
		return fmt.Sprintf("%sconst %%%d;\n", indent, v.Dst)
	default:
		return fmt.Sprintf("%s<stmt>;\n", indent)
	}
}
