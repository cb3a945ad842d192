package game

// LiftOffEnvelope describes the jump gain bounds for the medium an entity lifts off from.
type LiftOffEnvelope struct {
	Name        string
	MinJumpGain float64
	MaxJumpGain float64
	// JumpEffectApplies is false where jump boost does not increase the gain.
	JumpEffectApplies bool
}

var (
	LiftOffNormal          = LiftOffEnvelope{Name: "normal", MinJumpGain: DefaultJumpMotion, MaxJumpGain: DefaultJumpMotion, JumpEffectApplies: true}
	LiftOffLimitLiquid     = LiftOffEnvelope{Name: "limit_liquid", MinJumpGain: 0.1, MaxJumpGain: 0.15}
	LiftOffLimitNearGround = LiftOffEnvelope{Name: "limit_near_ground", MinJumpGain: 0.1, MaxJumpGain: 0.1}
	LiftOffLimitSpecial    = LiftOffEnvelope{Name: "limit_special", MinJumpGain: 0.42 * 0.5, MaxJumpGain: 0.42 * 0.5, JumpEffectApplies: true}
	LiftOffNoJump          = LiftOffEnvelope{Name: "no_jump"}
	LiftOffUnknown         = LiftOffEnvelope{Name: "unknown"}
)

// MinGain returns the smallest legitimate vertical gain on lift-off for the given jump boost amplifier
// (level, starting at 1; 0 for none).
func (e LiftOffEnvelope) MinGain(jumpAmplifier float64) float64 {
	if e.JumpEffectApplies && jumpAmplifier > 0 {
		return e.MinJumpGain + 0.1*jumpAmplifier
	}
	return e.MinJumpGain
}

// MaxGain returns the largest legitimate vertical gain on lift-off for the given jump boost amplifier.
func (e LiftOffEnvelope) MaxGain(jumpAmplifier float64) float64 {
	if e.JumpEffectApplies && jumpAmplifier > 0 {
		return e.MaxJumpGain + 0.1*jumpAmplifier
	}
	return e.MaxJumpGain
}
