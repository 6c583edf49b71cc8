// Package config centralizes all tunable game parameters.
//
// Values that shape the screen and the connection live here as constants.
// Values that shape gameplay (fruit bands, catch radii, difficulty presets)
// live in Tuning so they can be overridden from a YAML file.
package config

import "time"

// View resolution - the visible viewport in logical units.
// Actual rendering scales to fit terminal size.
const (
	ViewWidth  = 120 // Logical viewport width
	ViewHeight = 80  // Logical viewport height (in sub-pixels, so 40 terminal rows)
)

// Max render resolution in terminal cells. Larger terminals get a centered
// render area with a border.
const (
	MaxTermWidth  = 180
	MaxTermHeight = 56
)

// Projection
const (
	FieldOfView = 60.0 // Vertical field of view in degrees
	NearPlane   = 0.1
	FarPlane    = 200.0
)

// Player controls
const (
	MoveSpeed        = 8.0  // Units per second
	SprintMultiplier = 2.0  // Applied while sprint is held
	KeyTurnSpeed     = 90.0 // Degrees per second for keyboard look
	MouseSensitivity = 1.5  // Degrees per terminal cell of mouse motion
	MaxPitch         = 89.0 // Degrees
)

// Effects
const (
	FlashSeconds        = 0.6 // Penalty overlay duration
	SplashParticles     = 10  // Particles spawned per catch
	SplashSpeed         = 4.0
	SplashLifetime      = 0.6
	RainbowCycleSpeed   = 2.0 // Radians per second
	MaxDeltaSeconds     = 0.1 // Clamp for long frame hitches
	ScorePopupSeconds   = 1.0
	MaxVisibleParticles = 256
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Leaderboard
const (
	TopScoresShown    = 10
	MaxUsernameLength = 16 // Maximum display length for player usernames
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Server tick rate. The scoreboard does not need a fast tick.
const (
	ServerTickRate = 10
	ServerTickTime = time.Second / ServerTickRate
)
