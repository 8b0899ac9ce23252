package core

import (
	"fmt"
	"strings"
)

// cellStructKey renders the structural identity of a cell as a string, used
// for hash-consing. Only fields that participate in the cell's semantics
// are included; Width is included because it disambiguates cells that
// otherwise share every operand (e.g. a 0-width Swizzle vs another).
func cellStructKey(c *Cell) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s/%d", c.Kind, c.Width)
	switch c.Kind {
	case KindConst:
		fmt.Fprintf(&sb, "/%s", c.ConstVal.String())
	case KindInput, KindOutput, KindName:
		fmt.Fprintf(&sb, "/%s/%v", c.Name, c.A)
	case KindParam:
		fmt.Fprintf(&sb, "/%s/%v", c.Name, c.ParamVal)
	case KindSwizzle:
		for _, ch := range c.Chunks {
			if ch.IsConst {
				fmt.Fprintf(&sb, "/c:%s:%v", ch.Const.String(), ch.SignExt)
			} else {
				fmt.Fprintf(&sb, "/v:%v:%v", ch.Value, ch.SignExt)
			}
		}
	case KindSlice:
		fmt.Fprintf(&sb, "/%v/%d/%d", c.A, c.SliceLo, c.SliceHi)
	case KindExt:
		fmt.Fprintf(&sb, "/%v/%v", c.A, c.ExtSigned)
	case KindMux:
		fmt.Fprintf(&sb, "/%v/%v/%v", c.Sel, c.A, c.B)
	case KindAig:
		fmt.Fprintf(&sb, "/%v%v/%v%v", c.CA.Negated, c.CA.Net, c.CB.Negated, c.CB.Net)
	case KindAdc:
		fmt.Fprintf(&sb, "/%v/%v/%v", c.A, c.B, c.Cin)
	case KindShl, KindUShr, KindSShr, KindXShr:
		fmt.Fprintf(&sb, "/%v/%v/%d", c.A, c.B, c.Stride)
	case KindDff, KindMemory, KindIob, KindTarget, KindInstance:
		// Stateful/IO/generic cells are never hash-consed (IsEffectful),
		// but we still need a stable key for cache misses to be cheap.
		fmt.Fprintf(&sb, "/%p", c)
	default:
		fmt.Fprintf(&sb, "/%v/%v", c.A, c.B)
	}
	return sb.String()
}
