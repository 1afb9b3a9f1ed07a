// Package surface draws wallpapers onto layer shell background
// surfaces.
//
// A Surface is driven by a single loop. Compositor events are recorded
// by the layer surface's listener as they are dispatched and are only
// acted on when the loop calls HandleEvents. Drawing happens in Draw,
// never inside of a listener.
package surface

import (
	"fmt"
	"image"
	"time"

	wl "deedles.dev/wlpaperd/client"
	"deedles.dev/wlpaperd/layershell"
	"deedles.dev/wlpaperd/output"
	"deedles.dev/wlpaperd/raster"
	"deedles.dev/wlpaperd/source"
	"deedles.dev/wlpaperd/timer"
	"github.com/charmbracelet/log"
)

// Namespace is the layer surface namespace that the daemon's surfaces
// are created with.
const Namespace = "wlpaperd"

// Pool provides the pixel buffers that a Surface draws into. The
// buffers that it returns must not be handed out again until the
// compositor has released them.
type Pool interface {
	Resize(size int) error
	Buffer(width, height, stride int32, format wl.ShmFormat) ([]byte, *wl.Buffer, error)
	Format() wl.ShmFormat
	Destroy() error
}

type wlSurface interface {
	Attach(buf *wl.Buffer, x, y int32)
	DamageBuffer(x, y, width, height int32)
	Commit()
	Destroy()
}

type layerSurface interface {
	AckConfigure(serial uint32)
	Destroy()
}

// DimensionError is returned when a rendered image does not have the
// size of the surface that it was rendered for.
type DimensionError struct {
	Want, Got image.Point
}

func (err DimensionError) Error() string {
	return fmt.Sprintf("rendered %vx%v image for %vx%v surface", err.Got.X, err.Got.Y, err.Want.X, err.Want.Y)
}

// Surface is the wallpaper of a single output.
type Surface struct {
	// Info is the output's metadata.
	Info output.Info

	// Timer decides when the wallpaper is rotated. It is shared with
	// the loop, which calls Check on it.
	Timer *timer.Timer

	// Rand picks a random index in [0, n) when the output's path is a
	// directory. If it is nil, a default source is used.
	Rand func(n int) int

	out     *wl.Output
	surface wlSurface
	layer   layerSurface
	pool    Pool
	output  *output.Output
	events  Cell

	width, height uint32
	needRedraw    bool
}

// New gives surf the background layer role on out and returns a
// Surface that draws o's wallpaper into it using buffers from pool.
// Nothing is drawn until the compositor has configured the surface.
func New(out *wl.Output, surf *wl.Surface, shell *layershell.Shell, info output.Info, pool Pool, o *output.Output) *Surface {
	layer := shell.GetLayerSurface(surf, out, layershell.LayerBackground, Namespace)
	layer.SetSize(0, 0)
	layer.SetAnchor(layershell.AnchorAll)
	layer.SetExclusiveZone(-1)

	s := newSurface(surf, layer, info, pool, o, time.Now())
	s.out = out
	layer.Listener = (*layerListener)(s)
	surf.Commit()

	return s
}

func newSurface(surf wlSurface, layer layerSurface, info output.Info, pool Pool, o *output.Output, now time.Time) *Surface {
	return &Surface{
		Info:    info,
		Timer:   timer.New(o, now),
		surface: surf,
		layer:   layer,
		pool:    pool,
		output:  o,
	}
}

// Output returns the wl_output that the surface is shown on.
func (s *Surface) Output() *wl.Output {
	return s.out
}

// Size returns the size that the compositor last configured the
// surface to.
func (s *Surface) Size() (width, height uint32) {
	return s.width, s.height
}

// HandleEvents applies the most recent event from the compositor. It
// returns true if the surface has been closed, in which case it should
// be destroyed and forgotten.
func (s *Surface) HandleEvents() bool {
	ev := s.events.Take()
	switch ev.Kind {
	case EventClosed:
		return true

	case EventConfigure:
		if ev.Width == 0 || ev.Height == 0 {
			log.Debug("zero-size configure", "output", s.Info, "width", ev.Width, "height", ev.Height)
		}
		s.width, s.height = ev.Width, ev.Height
		s.needRedraw = true
	}

	return false
}

// Draw draws a wallpaper if the surface has been configured and either
// needs to be redrawn or the timer has expired. If it draws, it
// returns the output's duration. If it doesn't, it returns 0 and a nil
// error.
//
// The redraw flags are cleared before any drawing is attempted, so a
// failed draw is not retried until something requests one again.
func (s *Surface) Draw() (time.Duration, error) {
	ready := s.width > 0 && s.height > 0
	if !s.Timer.Consume(s.needRedraw, ready) {
		return 0, nil
	}
	s.needRedraw = false

	width, height := int(s.width), int(s.height)

	path, err := source.Resolve(s.output.Path, s.Rand)
	if err != nil {
		return 0, err
	}

	src, err := raster.Load(path)
	if err != nil {
		return 0, err
	}

	img := raster.Fill(src, width, height, raster.Lanczos3)
	if size := img.Bounds().Size(); size != image.Pt(width, height) {
		return 0, DimensionError{Want: image.Pt(width, height), Got: size}
	}

	stride := 4 * width
	err = s.pool.Resize(stride * height)
	if err != nil {
		return 0, fmt.Errorf("resize pool: %w", err)
	}

	format := s.pool.Format()
	data, buf, err := s.pool.Buffer(int32(width), int32(height), int32(stride), format)
	if err != nil {
		return 0, fmt.Errorf("get buffer: %w", err)
	}
	err = raster.Write(data, img, format)
	if err != nil {
		return 0, err
	}

	s.surface.Attach(buf, 0, 0)
	s.surface.DamageBuffer(0, 0, int32(width), int32(height))
	s.surface.Commit()

	log.Debug("drew wallpaper", "output", s.Info, "path", path, "width", width, "height", height)
	return s.output.Duration, nil
}

// UpdateOutput replaces the surface's output record. The wallpaper is
// redrawn on the next call to Draw.
func (s *Surface) UpdateOutput(o *output.Output) {
	s.output = o
	s.Timer.Update(o, time.Now())
	s.needRedraw = true
}

// Destroy destroys the layer surface, then the surface, then the
// pool.
func (s *Surface) Destroy() error {
	log.Info("destroying surface", "output", s.Info)

	s.layer.Destroy()
	s.surface.Destroy()
	return s.pool.Destroy()
}

type layerListener Surface

func (lis *layerListener) Configure(serial, width, height uint32) {
	if lis.events.Closed() {
		return
	}

	lis.layer.AckConfigure(serial)
	lis.events.Record(Event{Kind: EventConfigure, Width: width, Height: height})
}

func (lis *layerListener) Closed() {
	lis.events.Record(Event{Kind: EventClosed})
}
