package locomotion

// Test-only accessors; production callers go through Update/Tick.

func (m *Model) SetStateForTest(s State) { m.state = s }

func (m *Model) JumpCooldownForTest() float64 { return m.jumpCooldown }

func (m *Model) ExpireJumpCooldownForTest() { m.jumpCooldown = 0 }
