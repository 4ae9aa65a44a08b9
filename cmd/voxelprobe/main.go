package main

import (
	"flag"
	"log"

	"voxelgrid/internal/config"
)

func main() {
	configPath := flag.String("config", "", "grid settings YAML file")
	ticks := flag.Int("ticks", 64, "number of probe ticks to run")
	hops := flag.Int("hops", -1, "override max_chunk_hops (clamped to 0..16)")
	tps := flag.Int("tps", 0, "ticks per second, 0 runs unpaced")
	flag.Parse()

	if *configPath != "" {
		s, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		if err := config.Apply(s); err != nil {
			log.Fatalf("config: %v", err)
		}
	}
	if *hops >= 0 {
		config.SetMaxChunkHops(*hops)
	}

	settings := config.GetSettings()
	probe, err := setupProbe(settings)
	if err != nil {
		log.Fatalf("setup: %v", err)
	}
	log.Printf("grid: layout=%+v hops=%d load radius=%d chunks=%d",
		probe.Layout, settings.MaxChunkHops, settings.LoadRadius, probe.World.Len())

	loop := NewProbeLoop(probe)
	limiter := NewTickLimiter(*tps)
	for i := 0; i < *ticks; i++ {
		loop.Tick()
		limiter.Wait()
	}
	loop.Report()
}
