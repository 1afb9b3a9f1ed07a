package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	wl "deedles.dev/wlpaperd/client"
	"deedles.dev/wlpaperd/config"
	"deedles.dev/wlpaperd/layershell"
	"deedles.dev/wlpaperd/output"
	"deedles.dev/wlpaperd/shm"
	"deedles.dev/wlpaperd/surface"
	"github.com/charmbracelet/log"
)

// maxWait bounds how long the loop sleeps when no timer is due.
const maxWait = time.Minute

type state struct {
	configPath string
	config     config.Config

	client     *wl.Client
	display    *wl.Display
	registry   *wl.Registry
	compositor *wl.Compositor
	shm        *wl.Shm
	shell      *layershell.Shell

	outputs map[uint32]*outputState
}

type outputState struct {
	state *state

	name    uint32
	output  *wl.Output
	info    output.Info
	done    bool
	surface *surface.Surface
}

func (s *state) init() error {
	s.outputs = make(map[uint32]*outputState)

	client, err := wl.Dial()
	if err != nil {
		return fmt.Errorf("dial display: %w", err)
	}
	s.client = client

	s.display = client.Display()
	s.display.Listener = (*displayListener)(s)

	s.registry = s.display.GetRegistry()
	s.registry.Listener = (*registryListener)(s)

	err = s.client.RoundTrip()
	if err != nil {
		return fmt.Errorf("round trip: %w", err)
	}

	if s.compositor == nil {
		return errors.New("no compositor found")
	}
	if s.shm == nil {
		return errors.New("no shm found")
	}
	if s.shell == nil {
		return fmt.Errorf("no %v found", layershell.ShellInterface)
	}

	// Outputs announce their metadata in response to being bound, and
	// their surfaces are created once it has all arrived.
	err = s.client.RoundTrip()
	if err != nil {
		return fmt.Errorf("round trip: %w", err)
	}

	return nil
}

func (s *state) addOutput(name, version uint32) {
	o := outputState{
		state:  s,
		name:   name,
		output: wl.BindOutput(s.client, s.registry, name, version),
	}
	o.info.ID = name
	o.output.Listener = (*outputListener)(&o)
	s.outputs[name] = &o

	log.Debug("bound output", "name", name, "version", o.output.Version())
}

func (s *state) removeOutput(name uint32) {
	o, ok := s.outputs[name]
	if !ok {
		return
	}
	delete(s.outputs, name)

	s.destroySurface(o)
	o.output.Release()
	log.Info("output removed", "output", o.info)
}

func (s *state) createSurface(o *outputState) {
	if (s.compositor == nil) || (s.shm == nil) || (s.shell == nil) {
		return
	}

	out, err := s.config.Output(o.info.Name)
	if err != nil {
		log.Error("no configuration for output", "output", o.info, "err", err)
		return
	}

	pool, err := shm.NewPool(s.shm)
	if err != nil {
		log.Error("create pool", "output", o.info, "err", err)
		return
	}

	surf := s.compositor.CreateSurface()
	o.surface = surface.New(o.output, surf, s.shell, o.info, pool, out)
	log.Info("created surface", "output", o.info, "wallpaper", out)
}

func (s *state) destroySurface(o *outputState) {
	if o.surface == nil {
		return
	}

	err := o.surface.Destroy()
	if err != nil {
		log.Error("destroy surface", "output", o.info, "err", err)
	}
	o.surface = nil
}

// reload rereads the configuration file and passes the new
// configuration to every output.
func (s *state) reload() error {
	c, err := config.Load(s.configPath)
	if err != nil {
		log.Error("reload configuration", "err", err)
		return nil
	}
	s.config = c
	log.Info("reloaded configuration", "path", s.configPath)

	for _, o := range s.outputs {
		if o.surface == nil {
			if o.done {
				s.createSurface(o)
			}
			continue
		}

		out, err := c.Output(o.info.Name)
		if err != nil {
			log.Error("no configuration for output", "output", o.info, "err", err)
			continue
		}
		o.surface.UpdateOutput(out)
	}

	return nil
}

// skip expires every timer, moving every output on to its next
// wallpaper.
func (s *state) skip() error {
	for _, o := range s.outputs {
		if o.surface != nil {
			o.surface.Timer.Expire()
		}
	}
	return nil
}

// deadline returns the time at which the earliest timer is due.
func (s *state) deadline(now time.Time) time.Time {
	deadline := now.Add(maxWait)
	for _, o := range s.outputs {
		if o.surface == nil {
			continue
		}
		if due, ok := o.surface.Timer.Due(); ok && due.Before(deadline) {
			deadline = due
		}
	}
	return deadline
}

// run drives the client until ctx is canceled or the connection is
// lost.
func (s *state) run(ctx context.Context) error {
	for {
		wctx, cancel := context.WithDeadline(ctx, s.deadline(time.Now()))
		err := s.client.Wait(wctx)
		cancel()

		switch {
		case ctx.Err() != nil:
			return nil
		case wl.IsConnectionError(err):
			return err
		case errors.Is(err, context.DeadlineExceeded):
		case err != nil:
			log.Error("dispatch", "err", err)
		}

		s.tick(time.Now())
	}
}

func (s *state) tick(now time.Time) {
	for _, o := range s.outputs {
		if o.surface == nil {
			continue
		}

		if o.surface.HandleEvents() {
			log.Info("surface closed", "output", o.info)
			s.destroySurface(o)
			continue
		}

		o.surface.Timer.Check(now)
		d, err := o.surface.Draw()
		if err != nil {
			log.Error("draw", "output", o.info, "err", err)
			continue
		}
		if d > 0 {
			o.surface.Timer.Schedule(now)
		}
	}
}

// shutdown destroys everything and closes the connection. If the
// connection is still usable, it waits for the compositor to process
// the destruction first.
func (s *state) shutdown(connected bool) {
	for _, o := range s.outputs {
		s.destroySurface(o)
		o.output.Release()
	}
	if s.shell != nil {
		s.shell.Destroy()
	}

	if connected {
		err := s.client.RoundTrip()
		if err != nil {
			log.Error("round trip", "err", err)
		}
	}

	err := s.client.Close()
	if err != nil {
		log.Error("close connection", "err", err)
	}
}

type displayListener state

func (s *displayListener) Error(id uint32, code wl.DisplayError, msg string) {
	log.Fatal("display error", "object", id, "code", code, "message", msg)
}

func (s *displayListener) DeleteId(id uint32) {
	s.client.Delete(id)
}

type registryListener state

func (s *registryListener) Global(name uint32, inter string, version uint32) {
	switch inter {
	case wl.CompositorInterface:
		if version < 4 {
			log.Warn("old compositor, damage will use surface coordinates", "version", version)
		}
		s.compositor = wl.BindCompositor(s.client, s.registry, name, version)
	case wl.ShmInterface:
		s.shm = wl.BindShm(s.client, s.registry, name, version)
	case layershell.ShellInterface:
		s.shell = layershell.BindShell(s.client, s.registry, name, version)
		log.Debug("bound layer shell", "version", s.shell.Version())
	case wl.OutputInterface:
		(*state)(s).addOutput(name, version)
	}
}

func (s *registryListener) GlobalRemove(name uint32) {
	(*state)(s).removeOutput(name)
}

type outputListener outputState

func (o *outputListener) Geometry(x, y, physicalWidth, physicalHeight int32, subpixel wl.OutputSubpixel, make, model string, transform wl.OutputTransform) {
	o.info.Make = make
	o.info.Model = model
}

func (o *outputListener) Mode(flags wl.OutputMode, width, height, refresh int32) {
	if flags&wl.OutputModeCurrent == 0 {
		return
	}
	o.info.Width = width
	o.info.Height = height
}

func (o *outputListener) Scale(factor int32) {
	o.info.Scale = factor
}

func (o *outputListener) Name(name string) {
	o.info.Name = name
}

func (o *outputListener) Description(description string) {
	o.info.Description = description
}

func (o *outputListener) Done() {
	o.done = true
	if o.surface != nil {
		o.surface.Info = o.info
		return
	}

	log.Debug("output ready", "output", o.info, "width", o.info.Width, "height", o.info.Height)
	o.state.createSurface((*outputState)(o))
}
