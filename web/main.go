package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/fermion/pkg/scene"
	"github.com/df07/fermion/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	scenesDir := flag.String("scenes", "", "Directory of JSON scene files (default: ./scenes or ../scenes)")
	flag.Parse()

	dir := *scenesDir
	if dir == "" {
		dir = scene.ScenesDir()
	}

	webServer := server.NewServer(*port, dir)

	log.Printf("Fermion Web Server")
	log.Printf("Visit http://localhost:%d/api/scenes to list scenes", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
