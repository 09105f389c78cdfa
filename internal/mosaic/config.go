package mosaic

// Palette ranges (hue in degrees).
const (
	BaseHueMin     = 190.0
	BaseHueMax     = 250.0
	AccentDeltaMin = 15.0
	AccentDeltaMax = 45.0
	SaturationMin  = 0.45
	SaturationMax  = 0.85
	ValueMin       = 0.60
	ValueMax       = 0.95
)

// Grid defaults.
const (
	DefaultGridSize     = 12
	DefaultFillFraction = 0.9  // share of the short viewport side the grid spans
	DefaultFillRatio    = 0.35 // target tiles per grid cell
	DefaultCandidates   = 12
	SetupAttempts       = 1000
	CrowdRadius         = 2.0 // Manhattan distance in cells
	CenterBias          = 0.35
)

// Tile timing (seconds).
const (
	StageDurationMin = 0.35
	StageDurationMax = 1.1
	RetireRate       = 0.06 // chance per second a steady tile starts hiding
)

// Spawning.
const (
	SpawnBudget   = 2
	BoostedBudget = 6
	LargeChance   = 0.5
	LargeBassGain = 0.35
	LargeMax      = 0.85
)

// Kind selection.
const (
	KindHistoryCap = 64
	RepeatPenalty  = 0.75
	KindBandGain   = 1.5
	ColorRedraw    = 0.7
)

// Beat bursts and the rare-event hazard scheduler.
const (
	BeatCooldown      = 0.25
	BeatBurst         = 3
	HazardRate        = 0.015 // per second
	HazardFluxGain    = 0.25  // per second at full flux
	RareCooldown      = 8.0
	RareBoostDuration = 2.5
	RareBurst         = 12
)

// Audio-reactive parameter bounds.
const (
	FlipChanceMin  = 0.005
	FlipChanceMax  = 0.12
	NoiseChanceMin = 0.3
	NoiseChanceMax = 0.95
)

// Energy references: soft(x, ref) is 0.5 when x == ref.
const (
	BandRef = 2e-4
	FluxRef = 5e-5
)

// Scene scheduling (seconds).
const (
	DefaultCycleInterval     = 45.0
	DefaultCrossfadeDuration = 4.0
)

// Mixed into an engine seed to derive its scene id without touching the
// engine's own draw sequence.
const sceneIDSalt = 0x5CE4E1D
