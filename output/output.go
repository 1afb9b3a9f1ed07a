// Package output describes what should be shown on an output.
package output

import (
	"fmt"
	"time"
)

// Output is the configuration for a single output. It is treated as
// immutable: configuration changes replace it wholesale.
type Output struct {
	// Path is either an image file or a directory of them. When it is a
	// directory, a random image is picked from it every time that the
	// wallpaper is drawn.
	Path string

	// Duration is how long each wallpaper is shown before it is
	// replaced. Zero disables rotation.
	Duration time.Duration
}

func (o *Output) String() string {
	if o.Duration == 0 {
		return o.Path
	}
	return fmt.Sprintf("%v (every %v)", o.Path, o.Duration)
}

// Info is what the compositor has told us about an output.
type Info struct {
	ID          uint32
	Name        string
	Description string
	Make        string
	Model       string
	Width       int32
	Height      int32
	Scale       int32
}

func (info Info) String() string {
	if info.Name != "" {
		return info.Name
	}
	return fmt.Sprintf("%v %v (%v)", info.Make, info.Model, info.ID)
}
