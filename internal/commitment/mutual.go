package commitment

import "github.com/google/uuid"

// IsMutuallyDependent reports whether picking candidateID as a dependency of
// self would create a direct mutual wait, i.e. the candidate is conditional
// and already waiting on self.
//
// Only direct pairs are detected. Longer cycles (A waits on B, B on C, C on
// A) are not walked; EffectiveDeadline stays finite on them regardless.
func IsMutuallyDependent(candidateID uuid.UUID, self *Participant, all []*Participant) bool {
	if self == nil {
		return false
	}
	for _, p := range all {
		if p == nil || p.UserID != candidateID {
			continue
		}
		return p.Status == StatusConditional && p.DependsOn(self.UserID)
	}
	return false
}
