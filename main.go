package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/fermion/pkg/imageio"
	"github.com/df07/fermion/pkg/loaders"
	"github.com/df07/fermion/pkg/renderer"
	"github.com/df07/fermion/pkg/scene"
)

func main() {
	// Parse command line flags
	sceneName := flag.String("scene", "default", "Built-in scene name, 'file:<name>' from scenes/, or a path to a .json scene")
	input := flag.String("input", "", "Path to a JSON scene file (overrides -scene)")
	concurrency := flag.Int("concurrency", 0, "Number of render workers (0 = all logical CPUs)")
	batchSize := flag.Int("batch", renderer.DefaultBatchSize, "Pixels per streamed batch")
	seed := flag.Int64("seed", 0, "Random seed for a reproducible render (0 = time based)")
	format := flag.String("format", "png", "Output format: png, bmp or tiff")
	output := flag.String("output", "output", "Root directory for rendered images")
	progressRate := flag.Int("progress", 15, "Progress updates per second (0 = quiet)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		printHelp()
		return
	}

	imgFormat, err := imageio.ParseFormat(*format)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	s, name, err := createScene(*sceneName, *input)
	if err != nil {
		fmt.Printf("Error loading scene: %v\n", err)
		os.Exit(1)
	}

	workers := clampConcurrency(*concurrency, renderer.HardwareConcurrency())
	fmt.Printf("Rendering scene %q (%dx%d, %d samples/pixel, depth %d)\n",
		name, s.Width, s.Height, s.SamplesPerPixel, s.MaxDepth)

	rc, err := renderer.Render(s, renderer.Config{
		Concurrency: workers,
		BatchSize:   *batchSize,
		Seed:        *seed,
		Logger:      renderer.NewDefaultLogger(),
	})
	if err != nil {
		fmt.Printf("Error starting render: %v\n", err)
		os.Exit(1)
	}

	reportProgress(rc, *progressRate)

	if _, err := rc.Wait(context.Background()); err != nil {
		fmt.Printf("Error rendering: %v\n", err)
		os.Exit(1)
	}

	filename := imageio.OutputPath(*output, name, imgFormat, time.Now())
	if err := imageio.SaveImage(filename, rc.Image(), imgFormat); err != nil {
		fmt.Printf("Error saving image: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Render saved as %s\n", filename)
}

func printHelp() {
	fmt.Println("Fermion Ray Tracer")
	fmt.Println("Usage: fermion [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.ListBuiltinScenes() {
		fmt.Printf("  %-15s %s\n", info.ID, info.Description)
	}
	if files, err := scene.ListFileScenes(scene.ScenesDir()); err == nil {
		for _, info := range files {
			fmt.Printf("  %-15s %s\n", info.ID, info.Description)
		}
	}
	fmt.Println()
	fmt.Println("Output will be saved to <output>/<scene>/render_<timestamp>.<format>")
}

// createScene resolves the scene flags to a scene and the name used for its
// output directory
func createScene(sceneArg, inputPath string) (*scene.Scene, string, error) {
	switch {
	case inputPath != "":
		return loadSceneFile(inputPath)
	case strings.HasSuffix(strings.ToLower(sceneArg), ".json"):
		return loadSceneFile(sceneArg)
	case strings.HasPrefix(sceneArg, scene.FilePrefix):
		path, err := scene.FindSceneFile(scene.ScenesDir(), sceneArg)
		if err != nil {
			return nil, "", err
		}
		return loadSceneFile(path)
	default:
		s, err := scene.Create(sceneArg)
		if err != nil {
			return nil, "", err
		}
		return s, sceneArg, nil
	}
}

func loadSceneFile(path string) (*scene.Scene, string, error) {
	s, err := loaders.LoadSceneFile(path)
	if err != nil {
		return nil, "", err
	}
	return s, sceneNameFromPath(path), nil
}

// sceneNameFromPath turns "scenes/three-spheres.json" into "three-spheres"
func sceneNameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// clampConcurrency keeps the worker count within [1, hardware]
func clampConcurrency(requested, hardware int) int {
	if hardware < 1 {
		hardware = 1
	}
	if requested <= 0 || requested > hardware {
		return hardware
	}
	return requested
}

// reportProgress prints the render progress ratePerSecond times a second
// until the render completes
func reportProgress(rc *renderer.RenderContext, ratePerSecond int) {
	if ratePerSecond <= 0 {
		<-rc.Done()
		return
	}

	ticker := time.NewTicker(time.Second / time.Duration(ratePerSecond))
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-rc.Done():
			fmt.Printf("\rProgress: 100.0%% (%v)\n", time.Since(start).Round(time.Millisecond))
			return
		case <-ticker.C:
			fmt.Printf("\rProgress: %5.1f%% (%v)", 100*rc.Progress(), time.Since(start).Round(time.Millisecond))
		}
	}
}
