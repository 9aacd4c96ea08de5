package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ayusman/airdesk/internal/app"
	"github.com/ayusman/airdesk/internal/server"
	"github.com/ayusman/airdesk/internal/tray"
)

func main() {
	cfg := parseFlags(os.Args[1:])

	fmt.Println("AirDesk - Hand-Controlled Desktop")
	fmt.Println("  Move your index finger to steer the cursor")
	fmt.Println("  Pinch thumb and index finger to click")
	fmt.Println("  Show both hands during the ball game to hold the bar")
	fmt.Println("  Press 'q' to quit")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.New(cfg)

	if cfg.ServerAddr != "" {
		hub := server.NewHub()
		a.SetHub(hub)

		webDir := findWebDir()
		if webDir != "" {
			fmt.Printf("Serving static files from: %s\n", webDir)
		}
		srv := server.New(server.Config{Hub: hub, StaticDir: webDir})

		fmt.Printf("Starting spectator server on %s\n", cfg.ServerAddr)
		go func() {
			if err := srv.ListenAndServe(ctx, cfg.ServerAddr); err != nil {
				log.Printf("Server failed: %v", err)
			}
		}()
	}

	if cfg.EnableTray {
		t := tray.New()
		a.SetCommands(t.Commands())
		a.SetStatus(t.SetStatus)
		go t.Run()
		defer t.Stop()
	}

	if err := a.Run(ctx); err != nil {
		log.Fatalf("AirDesk failed: %v", err)
	}
}

func parseFlags(args []string) app.Config {
	cfg := app.DefaultConfig()

	fs := flag.NewFlagSet("airdesk", flag.ExitOnError)
	fs.IntVar(&cfg.CameraID, "camera", cfg.CameraID, "camera device index")
	fs.DurationVar(&cfg.ClickCooldown, "cooldown", cfg.ClickCooldown, "minimum time between two clicks")
	fs.BoolVar(&cfg.ShowCameraBG, "camera-bg", cfg.ShowCameraBG, "show the camera behind the UI")
	fs.BoolVar(&cfg.ShowLandmarks, "landmarks", cfg.ShowLandmarks, "draw detected hand landmarks")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "game random seed (0 picks one from the clock)")
	fs.StringVar(&cfg.ServerAddr, "listen", cfg.ServerAddr, "spectator server address, e.g. :8080 (empty disables)")
	fs.BoolVar(&cfg.EnableTray, "tray", cfg.EnableTray, "show a system tray menu")
	fs.Parse(args)

	return cfg
}

// findWebDir searches for the spectator web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.airdesk/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".airdesk", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
