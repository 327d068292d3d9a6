package core

// RuntimeConfig describes the rendering surface and timing the platform
// hands to the runtime. Games only ever see the logical surface size.
type RuntimeConfig struct {
	SurfaceW int   // Logical surface width in pixels
	SurfaceH int   // Logical surface height in pixels
	ScreenW  int   // Terminal width in characters (terminal backends only)
	ScreenH  int   // Terminal height in characters (terminal backends only)
	TickRate int   // Frames per second requested from the frame clock
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		SurfaceW: 640,
		SurfaceH: 480,
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     0, // 0 means use current time in platform layer
	}
}
