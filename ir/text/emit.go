package text

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/silicon-weave/netlist/core"
)

// Emit writes d's live cells to w in the textual IR grammar Parse accepts,
// walking Design.IterCellsTopo() so every operand is already emitted
// before the statement that references it. When raw is false, internal
// bookkeeping about skip/tombstone slots never surfaces (IterCellsTopo
// already excludes them); raw is reserved for a future more literal dump
// and is currently accepted for API symmetry with the grammar's intent.
func Emit(w io.Writer, d *core.Design, raw bool) error {
	bw := &errWriter{w: w}
	for _, ref := range d.IterCellsTopo() {
		emitCell(bw, ref)
	}
	return bw.err
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func netToken(n core.Net) string {
	switch {
	case n == core.ZeroNet:
		return "0"
	case n == core.OneNet:
		return "1"
	case n.IsUndef():
		return "X"
	default:
		return "%" + strconv.FormatUint(uint64(n.RawIndex()), 10)
	}
}

func controlToken(cn core.ControlNet) string {
	if cn.Negated {
		return "~" + netToken(cn.Net)
	}
	return netToken(cn.Net)
}

func valueTokens(v core.Value) []string {
	out := make([]string, len(v))
	for i, n := range v {
		out[i] = netToken(n)
	}
	return out
}

func lhs(ref core.CellRef) string {
	c := ref.Cell()
	out := ref.Output()
	if len(out) == 0 {
		return fmt.Sprintf("_:%d", c.Width)
	}
	return fmt.Sprintf("%s:%d", netToken(out[0]), c.Width)
}

func emitCell(w *errWriter, ref core.CellRef) {
	c := ref.Cell()
	switch c.Kind {
	case core.KindInput:
		w.printf("%s = input %q;\n", lhs(ref), c.Name)
	case core.KindConst:
		w.printf("%s = const 0b%s;\n", lhs(ref), binaryLiteral(c.ConstVal))
	case core.KindOutput:
		w.printf("%s = output %q, %s;\n", lhs(ref), c.Name, strings.Join(valueTokens(c.A), ", "))
	case core.KindName:
		w.printf("%s = name %q, %s;\n", lhs(ref), c.Name, strings.Join(valueTokens(c.A), ", "))
	case core.KindBuf:
		w.printf("%s = buf %s;\n", lhs(ref), strings.Join(valueTokens(c.A), ", "))
	case core.KindNot:
		w.printf("%s = not %s;\n", lhs(ref), strings.Join(valueTokens(c.A), ", "))
	case core.KindAnd:
		w.printf("%s = and %s, %s;\n", lhs(ref), strings.Join(valueTokens(c.A), "+"), strings.Join(valueTokens(c.B), "+"))
	case core.KindOr:
		w.printf("%s = or %s, %s;\n", lhs(ref), strings.Join(valueTokens(c.A), "+"), strings.Join(valueTokens(c.B), "+"))
	case core.KindXor:
		w.printf("%s = xor %s, %s;\n", lhs(ref), strings.Join(valueTokens(c.A), "+"), strings.Join(valueTokens(c.B), "+"))
	case core.KindMux:
		w.printf("%s = mux %s, %s, %s;\n", lhs(ref), netToken(c.Sel), strings.Join(valueTokens(c.A), "+"), strings.Join(valueTokens(c.B), "+"))
	case core.KindAig:
		w.printf("%s = aig %s, %s;\n", lhs(ref), controlToken(c.CA), controlToken(c.CB))
	case core.KindAdc:
		w.printf("%s = adc %s, %s, %s;\n", lhs(ref), strings.Join(valueTokens(c.A), "+"), strings.Join(valueTokens(c.B), "+"), netToken(c.Cin))
	case core.KindEq:
		w.printf("%s = eq %s, %s;\n", lhs(ref), strings.Join(valueTokens(c.A), "+"), strings.Join(valueTokens(c.B), "+"))
	case core.KindULt:
		w.printf("%s = ult %s, %s;\n", lhs(ref), strings.Join(valueTokens(c.A), "+"), strings.Join(valueTokens(c.B), "+"))
	case core.KindSLt:
		w.printf("%s = slt %s, %s;\n", lhs(ref), strings.Join(valueTokens(c.A), "+"), strings.Join(valueTokens(c.B), "+"))
	case core.KindShl:
		w.printf("%s = shl %s, %s, %d;\n", lhs(ref), strings.Join(valueTokens(c.A), "+"), strings.Join(valueTokens(c.B), "+"), c.Stride)
	case core.KindUShr:
		w.printf("%s = ushr %s, %s, %d;\n", lhs(ref), strings.Join(valueTokens(c.A), "+"), strings.Join(valueTokens(c.B), "+"), c.Stride)
	case core.KindSShr:
		w.printf("%s = sshr %s, %s, %d;\n", lhs(ref), strings.Join(valueTokens(c.A), "+"), strings.Join(valueTokens(c.B), "+"), c.Stride)
	case core.KindXShr:
		w.printf("%s = xshr %s, %s, %d;\n", lhs(ref), strings.Join(valueTokens(c.A), "+"), strings.Join(valueTokens(c.B), "+"), c.Stride)
	default:
		w.printf("// skipped unsupported cell kind %s at %s\n", c.Kind, lhs(ref))
	}
}

func binaryLiteral(c core.Const) string {
	var sb strings.Builder
	for i := len(c) - 1; i >= 0; i-- {
		sb.WriteString(c[i].String())
	}
	return sb.String()
}
