package cranes

func (g *Group) deactivateAll() {
	g.active = 0
	for i := range g.cranes {
		g.cranes[i].Active = false
	}
}

// elect deactivates every crane and then promotes idle cranes by descending
// progress until the budget is used. Ties go to the lowest index.
func (g *Group) elect() {
	g.deactivateAll()
	for g.active < g.activeMax {
		best := -1
		for i, c := range g.cranes {
			if c.Active {
				continue
			}
			if best < 0 || c.Progress > g.cranes[best].Progress {
				best = i
			}
		}
		if best < 0 {
			return
		}
		g.cranes[best].Active = true
		g.active++
	}
}

// Shed stops the running crane with the least progress for the rest of the
// current cycle. Ties go to the highest index, mirroring the election order.
// The budget is left untouched so the next election can restore the crane.
// It returns false when no crane is running.
func (g *Group) Shed() bool {
	worst := -1
	for i, c := range g.cranes {
		if !c.Active {
			continue
		}
		if worst < 0 || c.Progress <= g.cranes[worst].Progress {
			worst = i
		}
	}
	if worst < 0 {
		return false
	}
	g.cranes[worst].Active = false
	g.active--
	return true
}
