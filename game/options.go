package game

import "time"

// Options configures a Game beyond the loaded config.
type Options struct {
	Seed      int64 // RNG seed for particle allocation
	Count     int   // Particle count override (0 = use config)
	Headless  bool  // No window: input, HUD and debug panel are skipped
	MaxTicks  int   // Stop after N ticks (0 = unlimited)
	OutputDir string
	LogStats  bool

	// Now overrides the clock source (nil = time.Now).
	Now func() time.Time
}
