package harbour

import "sort"

// sortDockApps orders dapps per the open question decision recorded in
// DESIGN.md ("Harbour sort order"): dockapps with a positive
// AutoProperties position sort ascending nearest the start edge,
// position-0 dockapps stay in insertion order in the middle, and
// negative-position dockapps sort ascending toward the end edge.
func sortDockApps(dapps []*DockApp) {
	sort.SliceStable(dapps, func(i, j int) bool {
		ri, rj := dockAppRank(dapps[i]), dockAppRank(dapps[j])
		if ri != rj {
			return ri < rj
		}
		if ri == rankMiddle {
			return false // preserve insertion order within the middle group
		}
		return dapps[i].Position < dapps[j].Position
	})
}

const (
	rankPositive = iota
	rankMiddle
	rankNegative
)

func dockAppRank(d *DockApp) int {
	switch {
	case d.Position > 0:
		return rankPositive
	case d.Position == 0:
		return rankMiddle
	default:
		return rankNegative
	}
}
