package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lixenwraith/citygrid/city"
	"github.com/lixenwraith/citygrid/parameter"
)

func main() {
	n := flag.Int("n", 0, "grid dimension, 3..9 (overrides -config, defaults to the profile's)")
	vehicles := flag.Int("vehicles", 0, "target vehicle count (overrides -config)")
	rush := flag.Bool("rush", false, "start in rush-hour mode")
	configPath := flag.String("config", "", "path to a TOML scenario profile")
	debug := flag.Bool("debug", false, "enable debug logging to logs/citysim.log")
	ticks := flag.Int("ticks", 0, "stop after this many ticks (0 runs until interrupted)")
	wsAddr := flag.String("ws-addr", "", "if set, serve a websocket snapshot feed on this address, e.g. :8080")
	seed := flag.Int64("seed", 0, "PRNG seed (0 picks one from the current time)")
	flag.Parse()

	logFile := setupLogging(*debug)
	if logFile != nil {
		defer logFile.Close()
	}

	p, err := loadProfile(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *n != 0 {
		p.Dimension = *n
	}
	if *vehicles != 0 {
		p.TargetCount = *vehicles
	}
	if *rush {
		p.RushHour = true
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(rngSeed))

	c, err := city.New(p.Dimension, rng)
	if err != nil {
		fmt.Fprintf(os.Stderr, "citysim: %v\n", err)
		os.Exit(1)
	}
	if p.RushHour {
		c.ToggleRush()
	}
	if p.TargetCount > 0 {
		c.SetTargetCount(p.TargetCount)
	}
	log.Printf("city ready: dimension=%d rush=%v target=%d seed=%d", p.Dimension, p.RushHour, p.TargetCount, rngSeed)

	if *wsAddr != "" {
		go serveWebsocket(c, *wsAddr)
	}

	run(c, *ticks)
}

// serveWebsocket blocks serving the snapshot feed; a failure here is
// logged but does not take down the simulation, since the sim loop is
// useful on its own.
func serveWebsocket(c *city.City, addr string) {
	mux := http.NewServeMux()
	mux.HandleFunc("/snapshot", func(w http.ResponseWriter, r *http.Request) {
		serveObserver(c, w, r)
	})
	log.Printf("websocket snapshot feed listening on %s/snapshot", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Printf("websocket server stopped: %v", err)
	}
}

// run drives the simulation at parameter.TimeStep cadence until either
// maxTicks is reached (0 means unbounded) or the process receives an
// interrupt/terminate signal. Admission is attempted once per tick;
// City.Spawn itself enforces the target count and mode capacity.
func run(c *city.City, maxTicks int) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(parameter.TimeStep)
	defer ticker.Stop()

	tick := 0
	for {
		select {
		case <-sigCh:
			log.Printf("citysim: interrupted after %d ticks", tick)
			return
		case <-ticker.C:
			c.Spawn(parameter.Sedan, "white")
			c.Tick()
			tick++
			if maxTicks > 0 && tick >= maxTicks {
				log.Printf("citysim: reached %d ticks, stopping", tick)
				return
			}
		}
	}
}
