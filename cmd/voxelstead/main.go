package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"voxelstead/internal/config"
	"voxelstead/internal/game"
)

func main() {
	// Change working directory to the executable location for deployed
	// builds, so the assets directory resolves. Skip this for "go run",
	// which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	path := flag.String("config", "assets/config/voxelstead.yaml", "session tuning file")
	flag.Parse()

	cfgPath := *path
	if _, err := os.Stat(cfgPath); err != nil {
		log.Printf("no tuning file at %s, using defaults", cfgPath)
		cfgPath = ""
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	g, err := game.New(cfg)
	if err != nil {
		log.Fatalf("voxelstead: %v", err)
	}
	g.Run()
}
