package rewrite

import (
	"github.com/silicon-weave/netlist/core"
	"github.com/silicon-weave/netlist/core/meta"
)

// Ruleset is the single-dispatch rule interface every rewrite pass
// implements, per SPEC_FULL.md §4.E. Rewrite is called once per visited
// cell (and again, recursively, for every cell a rule creates via
// Rewriter.AddCell); CellAdded and NetReplaced are notification callbacks
// for Rulesets that maintain side tables (balance.LevelAnalysis is one
// example) rather than rewriting structure.
type Ruleset interface {
	// Rewrite inspects cell (whose operands have already been mapped
	// through the current in-pass net-replacement map) and returns a
	// Result. Returning NoMatch leaves the cell for the next ruleset.
	Rewrite(rw *Rewriter, cell *core.Cell, metaRef meta.Ref, output core.Value) Result

	// CellAdded is invoked once for every cell the driver finalizes
	// (including ones created via AddCell), after it has been committed.
	CellAdded(ref core.CellRef)

	// NetReplaced is invoked once for every net substitution the driver
	// records, in the order recorded.
	NetReplaced(from, to core.Net)
}

// BaseRuleset is embedded by Rulesets that only need Rewrite and want
// no-op CellAdded/NetReplaced, mirroring the teacher's convention of small
// embeddable default implementations over boilerplate per-type no-ops.
type BaseRuleset struct{}

func (BaseRuleset) CellAdded(core.CellRef)    {}
func (BaseRuleset) NetReplaced(core.Net, core.Net) {}

// Rewriter drives one Run over a core.Design: it owns the in-pass
// net-replacement map (distinct from core.Design's own deferred-apply
// map), the hash-cons cache, and the processed-net set that backs
// FindCell's three-way Const/Opaque/Cell result.
type Rewriter struct {
	d        *core.Design
	rulesets []Ruleset

	netMap    map[core.Net]core.Net
	cache     map[string]core.Value
	processed map[core.Net]bool
}

// Run visits every live cell of d in topological order (core.Design.
// IterCellsTopo), dispatching each to rulesets in order per SPEC_FULL.md
// §4.E, then drains the resulting change queue with a single d.Apply().
// It reports whether anything changed.
func Run(d *core.Design, rulesets []Ruleset) (bool, error) {
	rw := &Rewriter{
		d:         d,
		rulesets:  rulesets,
		netMap:    make(map[core.Net]core.Net),
		cache:     make(map[string]core.Value),
		processed: make(map[core.Net]bool),
	}
	for _, ref := range d.IterCellsTopo() {
		if !ref.Valid() {
			continue
		}
		if err := rw.processCell(ref); err != nil {
			return false, err
		}
	}
	return d.Apply()
}

// mapNet resolves n through the in-pass net-replacement map, following
// chains (a replaced net may itself have been replaced again later in the
// same pass).
func (rw *Rewriter) mapNet(n core.Net) core.Net {
	for {
		to, ok := rw.netMap[n]
		if !ok || to == n {
			return n
		}
		n = to
	}
}

func (rw *Rewriter) recordReplacement(from, to core.Net) {
	rw.netMap[from] = to
	for _, rs := range rw.rulesets {
		rs.NetReplaced(from, to)
	}
}

func (rw *Rewriter) notifyAdded(ref core.CellRef) {
	for _, rs := range rw.rulesets {
		rs.CellAdded(ref)
	}
}

// processCell runs the full rule-evaluation loop for one already-visited
// cell: operand remapping, repeated dispatch restarting from rule 0 on any
// structural change, and finalization (hash-cons or commit), per
// SPEC_FULL.md §4.E points 1-4.
func (rw *Rewriter) processCell(ref core.CellRef) error {
	orig := ref.Cell()
	work := cloneCell(orig)
	remapCellOperands(&work, rw.mapNet)
	metaRef := work.Meta
	output := ref.Output()

	for {
		matched := false
		for _, rs := range rw.rulesets {
			res := rs.Rewrite(rw, &work, metaRef, output)
			switch res.Kind {
			case None:
				continue
			case ReplacedCell:
				work = cloneCell(res.Cell)
				work.Meta = metaRef
				remapCellOperands(&work, rw.mapNet)
				matched = true
			case ReplacedCellMeta:
				work = cloneCell(res.Cell)
				work.Meta = res.Meta
				metaRef = res.Meta
				remapCellOperands(&work, rw.mapNet)
				matched = true
			case ReplacedValue:
				return rw.finishWithValue(ref, output, res.Value)
			}
			if matched {
				break // restart from the first rule
			}
		}
		if !matched {
			break
		}
	}

	return rw.finalize(ref, &work, metaRef, output)
}

// finishWithValue implements point 4 of SPEC_FULL.md §4.E: replace every
// output net of the cell with the corresponding net of v, record the
// substitutions in the in-pass map, notify NetReplaced, and tombstone the
// cell.
func (rw *Rewriter) finishWithValue(ref core.CellRef, output, v core.Value) error {
	if len(v) != len(output) {
		return core.ErrWidthMismatch
	}
	for i := range output {
		if output[i] == v[i] {
			continue
		}
		rw.recordReplacement(output[i], v[i])
		if err := rw.d.ReplaceNet(output[i], v[i]); err != nil && err != core.ErrNetNotFound {
			return err
		}
	}
	for i := range output {
		rw.processed[output[i]] = true
	}
	ref.Unalive()
	return nil
}

// finalize implements point 3: commit the (possibly rewritten) cell in
// place and, if it has no side effects, insert it into the hash-cons
// cache, deduplicating against a structurally identical cell finalized
// earlier in this pass.
func (rw *Rewriter) finalize(ref core.CellRef, work *core.Cell, metaRef meta.Ref, output core.Value) error {
	work.Meta = metaRef

	if !work.IsEffectful() && len(output) > 0 {
		key := work.StructKey()
		if existing, ok := rw.cache[key]; ok && len(existing) == len(output) {
			if eref, _, err := rw.d.FindCell(existing[0]); err == nil {
				eref.Cell().Meta = rw.d.Meta().Merge(eref.Cell().Meta, metaRef)
			}
			for i := range output {
				if output[i] == existing[i] {
					continue
				}
				rw.recordReplacement(output[i], existing[i])
				if err := rw.d.ReplaceNet(output[i], existing[i]); err != nil && err != core.ErrNetNotFound {
					return err
				}
			}
			for i := range output {
				rw.processed[output[i]] = true
			}
			ref.Unalive()
			return nil
		}
	}

	if orig := ref.Cell(); work.StructKey() != orig.StructKey() || work.Meta != orig.Meta {
		if err := ref.Replace(work); err != nil {
			return err
		}
		if work.Width == orig.Width {
			*orig = *work
		}
	}
	for i := range output {
		rw.processed[output[i]] = true
	}
	if !work.IsEffectful() {
		rw.cache[work.StructKey()] = output
	}
	rw.notifyAdded(ref)
	return nil
}

// AddCell processes cell through the full rule loop recursively (as if it
// had been visited by Run), appends it to the design (or reuses a
// hash-cons hit, merging metadata onto the existing cell), and marks its
// output nets processed so that later FindCell calls in this pass can see
// through it. This is the surface rule bodies use to introduce new cells
// mid-rewrite (e.g. SimpleAigOpt building an Aig to replace an And).
func (rw *Rewriter) AddCell(cell *core.Cell, metaRef meta.Ref) (core.Value, meta.Ref, error) {
	work := cloneCell(cell)
	work.Meta = metaRef
	remapCellOperands(&work, rw.mapNet)

	for {
		matched := false
		for _, rs := range rw.rulesets {
			res := rs.Rewrite(rw, &work, metaRef, nil)
			switch res.Kind {
			case None:
				continue
			case ReplacedCell:
				work = cloneCell(res.Cell)
				work.Meta = metaRef
				remapCellOperands(&work, rw.mapNet)
				matched = true
			case ReplacedCellMeta:
				work = cloneCell(res.Cell)
				work.Meta = res.Meta
				metaRef = res.Meta
				remapCellOperands(&work, rw.mapNet)
				matched = true
			case ReplacedValue:
				for i := range res.Value {
					rw.processed[res.Value[i]] = true
				}
				return res.Value, metaRef, nil
			}
			if matched {
				break
			}
		}
		if !matched {
			break
		}
	}

	if !work.IsEffectful() && work.Width > 0 {
		key := work.StructKey()
		if existing, ok := rw.cache[key]; ok {
			ref, _, err := rw.d.FindCell(existing[0])
			if err == nil {
				ref.Cell().Meta = rw.d.Meta().Merge(ref.Cell().Meta, metaRef)
				return existing, ref.Cell().Meta, nil
			}
		}
	}

	work.Meta = metaRef
	v, err := rw.d.AddCell(&work)
	if err != nil {
		return nil, meta.Ref{}, err
	}
	for i := range v {
		rw.processed[v[i]] = true
	}
	if !work.IsEffectful() {
		rw.cache[work.StructKey()] = v
	}
	if ref, _, err := rw.d.FindCell(v[0]); err == nil {
		rw.notifyAdded(ref)
	}
	return v, metaRef, nil
}
