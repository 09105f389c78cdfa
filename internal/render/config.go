package render

// Camera effects.
const (
	PulseMax      = 0.06
	PulseDecay    = 0.4 // per second
	BeatPulse     = 0.015
	RareShake     = 6.0 // pixels
	RareShakeTime = 0.6
)

// Tile geometry.
const (
	ArcSegments = 12
	TileGap     = 0.08 // fraction of a cell left empty around each tile
)

// Streaming vertex buffer size in bytes.
const vertexBufferBytes = 1 << 22
