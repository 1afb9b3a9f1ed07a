// wlpaperd draws wallpapers on the background layer of every output
// of a wlroots-based Wayland compositor.
//
// Signals:
//
//	SIGHUP   reload the configuration file
//	SIGUSR1  skip to the next wallpaper on every output
//	SIGINT, SIGTERM  exit
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	wl "deedles.dev/wlpaperd/client"
	"deedles.dev/wlpaperd/config"
	"github.com/charmbracelet/log"
	"golang.org/x/sys/unix"
)

func handleSignals(ctx context.Context, s *state) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, unix.SIGHUP, unix.SIGUSR1)
	defer signal.Stop(c)

	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-c:
			switch sig {
			case unix.SIGHUP:
				s.client.Do(s.reload)
			case unix.SIGUSR1:
				s.client.Do(s.skip)
			}
		}
	}
}

func main() {
	configPath := flag.String("config", "", "path to the configuration file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %v [options]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	log.SetReportTimestamp(true)
	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	path := *configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			log.Fatal("find configuration", "err", err)
		}
		path = p
	}

	c, err := config.Load(path)
	if err != nil {
		log.Fatal("load configuration", "err", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, unix.SIGTERM)
	defer cancel()

	s := state{configPath: path, config: c}
	err = s.init()
	if err != nil {
		log.Fatal("init", "err", err)
	}
	go handleSignals(ctx, &s)

	err = s.run(ctx)
	s.shutdown(!wl.IsConnectionError(err))
	if err != nil {
		log.Fatal("connection lost", "err", err)
	}
}
