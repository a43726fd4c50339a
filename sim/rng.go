package sim

import (
	"github.com/nebula4x/simcore/environment"
)

// rollSeed folds context ids and the current time into a deterministic
// seed. Every probabilistic effect derives from a seed like this so
// replays from the same state are bytewise identical.
func (s *Simulation) rollSeed(tag uint64, ids ...uint64) uint64 {
	h := environment.Splitmix64(tag ^ 0x4E344E34)
	h = environment.Splitmix64(h ^ uint64(s.st.Date))
	h = environment.Splitmix64(h ^ uint64(s.st.HourOfDay)<<32)
	for _, id := range ids {
		h = environment.Splitmix64(h ^ id)
	}
	return h
}

// rollU01 returns a deterministic uniform sample in [0,1)
func (s *Simulation) rollU01(tag uint64, ids ...uint64) float64 {
	return environment.U01FromU64(s.rollSeed(tag, ids...))
}

// roll tags keep unrelated effects decorrelated
const (
	rollTagBeamHit    = 0xBEA11
	rollTagSubsystem  = 0x5B5751
	rollTagMisjump    = 0x15377
	rollTagJumpHazard = 0x4A5A12
	rollTagJumpGlitch = 0x6717C4
)
