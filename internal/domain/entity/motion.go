package entity

// Controls is the directional input that drives the player for one frame.
type Controls struct {
	Left        bool
	Right       bool
	JumpPressed bool // edge-triggered: true only on the frame the key went down
}

// Movement holds the player movement constants.
type Movement struct {
	Speed     float64 // horizontal speed (px/s)
	JumpSpeed float64 // upward launch speed (px/s, positive)

	// RequireGround blocks jumps while airborne. When false any jump press
	// launches the player, including mid-air.
	RequireGround bool
}

// DefaultMovement is 100 px/s run and 200 px/s jump.
var DefaultMovement = Movement{Speed: 100, JumpSpeed: 200}

// Motion is the velocity and facing state of the player.
type Motion struct {
	VX, VY      float64
	FacingRight bool
}

// ApplyInput maps one frame of controls onto the player's motion.
//
// Right takes priority over left. With no direction held the horizontal
// velocity is zero and facing is kept. A jump press overwrites the vertical
// velocity; otherwise VY is left to the physics simulation.
func ApplyInput(c Controls, m Motion, grounded bool, cfg Movement) Motion {
	switch {
	case c.Right:
		m.VX = cfg.Speed
		m.FacingRight = true
	case c.Left:
		m.VX = -cfg.Speed
		m.FacingRight = false
	default:
		m.VX = 0
	}

	if c.JumpPressed && (grounded || !cfg.RequireGround) {
		m.VY = -cfg.JumpSpeed
	}

	return m
}
