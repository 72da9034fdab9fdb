package core

// CheckAndReplay keeps the ambient loop alive: when the track has run out
// it stops the player, rewinds to the start, and resumes. It returns true
// only when the pre-call state was ended and resuming succeeded. Player
// errors are never propagated; a failed restart is reported as false and
// the monitoring loop carries on.
func CheckAndReplay(p Player) bool {
	if p.State() != StateEnded {
		return false
	}
	_ = p.Stop()
	_ = p.Rewind()
	return p.Play() == nil
}
