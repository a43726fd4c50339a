package sim

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nebula4x/simcore/core"
)

// ResearchPlan is a prerequisite-ordered set of projects toward one or
// more target techs
type ResearchPlan struct {
	Order     []string `json:"order"`
	TotalCost float64  `json:"total_cost"`
	Errors    []string `json:"errors,omitempty"`
}

// PlanApplyMode selects how a plan merges into the existing queue
type PlanApplyMode uint8

const (
	PlanAppend PlanApplyMode = iota
	PlanPrepend
	PlanReplace
)

// PlanOptions controls ApplyResearchPlan
type PlanOptions struct {
	Mode PlanApplyMode
	// SetActive starts the first queued project immediately when no
	// project is active; OverrideActive abandons the current one first
	SetActive      bool
	OverrideActive bool
}

// ComputeResearchPlan resolves the prerequisite closure of the targets
// into dependency order, skipping techs the faction already knows. All
// problems are collected rather than failing fast.
func (s *Simulation) ComputeResearchPlan(factionId core.Id, targets []string) ResearchPlan {
	plan := ResearchPlan{}
	f := s.faction(factionId)
	if f == nil {
		plan.Errors = []string{"unknown faction"}
		return plan
	}

	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	visit := make(map[string]int)
	var stack []string
	errSet := make(map[string]bool)
	seen := make(map[string]bool)

	var dfs func(id string)
	dfs = func(id string) {
		switch visit[id] {
		case done:
			return
		case visiting:
			// report the cycle as the stack segment from id onward
			start := 0
			for i, v := range stack {
				if v == id {
					start = i
					break
				}
			}
			cyc := append(append([]string{}, stack[start:]...), id)
			errSet["Prerequisite cycle: "+strings.Join(cyc, " -> ")] = true
			return
		}
		tech := s.content.Tech(id)
		if tech == nil {
			errSet[fmt.Sprintf("Unknown tech: %s", id)] = true
			visit[id] = done
			return
		}
		visit[id] = visiting
		stack = append(stack, id)
		for _, p := range tech.Prereqs {
			dfs(p)
		}
		stack = stack[:len(stack)-1]
		visit[id] = done

		if !f.KnowsTech(id) && !seen[id] {
			seen[id] = true
			plan.Order = append(plan.Order, id)
			plan.TotalCost += tech.Cost
		}
	}

	for _, t := range targets {
		dfs(t)
	}

	for e := range errSet {
		plan.Errors = append(plan.Errors, e)
	}
	sort.Strings(plan.Errors)
	return plan
}

// ApplyResearchPlan merges a plan into the faction's research queue
func (s *Simulation) ApplyResearchPlan(factionId core.Id, plan ResearchPlan, opts PlanOptions) error {
	f := s.faction(factionId)
	if f == nil {
		return fmt.Errorf("unknown faction")
	}
	if len(plan.Errors) > 0 {
		return fmt.Errorf("plan has errors: %s", strings.Join(plan.Errors, "; "))
	}

	var incoming []string
	for _, id := range plan.Order {
		if !f.KnowsTech(id) && id != f.ActiveResearchId {
			incoming = append(incoming, id)
		}
	}

	merge := func(first, second []string) []string {
		var out []string
		have := make(map[string]bool)
		for _, id := range append(append([]string{}, first...), second...) {
			if have[id] {
				continue
			}
			have[id] = true
			out = append(out, id)
		}
		return out
	}

	switch opts.Mode {
	case PlanPrepend:
		f.ResearchQueue = merge(incoming, f.ResearchQueue)
	case PlanReplace:
		f.ResearchQueue = merge(incoming, nil)
	default:
		f.ResearchQueue = merge(f.ResearchQueue, incoming)
	}

	if opts.SetActive {
		if opts.OverrideActive && f.ActiveResearchId != "" {
			// abandoned project goes to the back, progress lost
			f.ResearchQueue = merge(f.ResearchQueue, []string{f.ActiveResearchId})
			f.ActiveResearchId = ""
			f.ActiveResearchProgress = 0
		}
		if f.ActiveResearchId == "" {
			s.activateNextResearch(f)
		}
	}
	return nil
}
