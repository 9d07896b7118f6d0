package ui

// Config contains window/input/audio related settings.
type Config struct {
	Title string // window title
	Scale int    // integer upscaling factor for the 64x32 screen
	Muted bool   // disable the beeper
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.Title == "" {
		c.Title = "c8emu"
	}
	if c.Scale <= 0 {
		c.Scale = 12
	}
}
