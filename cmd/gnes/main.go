// Command gnes runs the emulator: windowed by default, terminal or
// headless with flags.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gnes/internal/app"
	"gnes/internal/version"
)

func main() {
	var (
		romFile     = flag.String("rom", "", "path to an iNES ROM file")
		configFile  = flag.String("config", "", "path to the configuration file")
		backend     = flag.String("backend", "", "video backend: ebitengine, terminal, headless")
		frames      = flag.Int("frames", 0, "headless: number of frames to run")
		debug       = flag.Bool("debug", false, "enable debug output")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	if *romFile == "" {
		fmt.Fprintln(os.Stderr, "usage: gnes -rom <file> [options]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	configPath := *configFile
	if configPath == "" {
		configPath = app.DefaultConfigPath()
	}

	application, err := app.NewApplication(configPath, *romFile)
	if err != nil {
		log.Fatalf("startup: %v", err)
	}

	if *backend != "" {
		application.Config.Video.Backend = *backend
	}
	if *debug {
		application.Config.Debug.Enabled = true
		application.Config.Debug.TraceUnmapped = true
		application.Console.CPU.TraceUnmapped = true
	}

	if application.Config.Video.Backend == "headless" {
		if err := application.RunHeadlessFrames(*frames); err != nil {
			log.Fatalf("headless run: %v", err)
		}
		return
	}

	if err := application.Run(); err != nil {
		log.Fatalf("run: %v", err)
	}
}
