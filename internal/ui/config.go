package ui

// Config holds window settings for the viewer.
type Config struct {
	Title string
	Scale int
}
