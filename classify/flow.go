package classify

import (
	"go.uber.org/zap"

	"axnav/dom"
)

// flowIndex maps ids to elements whose flow reference lists them. Rebuilt
// when document generation changes.
type flowIndex struct {
	valid     bool
	gen       uint64
	referrers map[string][]dom.Node
}

func (c *Classifier) referrers() map[string][]dom.Node {
	gen := c.doc.Generation()
	if c.flows.valid && c.flows.gen == gen {
		return c.flows.referrers
	}
	refs := make(map[string][]dom.Node)
	for n := range dom.Descendants(c.doc.Top()) {
		for _, id := range dom.IDRefs(n, dom.AttrFlowTo) {
			refs[id] = append(refs[id], n)
		}
	}
	c.flows = flowIndex{valid: true, gen: gen, referrers: refs}
	if len(refs) > 0 {
		c.log.Debug("Flow references indexed", zap.Int("targets", len(refs)))
	}
	return refs
}

// FlowTargets resolves outbound flow references of n. Unresolved ids are
// logged and skipped.
func (c *Classifier) FlowTargets(n dom.Node) []dom.Node {
	var res []dom.Node
	for _, id := range dom.IDRefs(n, dom.AttrFlowTo) {
		t := c.doc.ByID(id)
		if t == nil {
			c.log.Debug("Unresolved flow reference", zap.String("id", id), zap.Stringer("node", stringer{n}))
			continue
		}
		res = append(res, t)
	}
	return res
}

// FlowReferrers returns elements whose flow reference points to n.
func (c *Classifier) FlowReferrers(n dom.Node) []dom.Node {
	id := dom.ID(n)
	if id == "" {
		return nil
	}
	return c.referrers()[id]
}
