package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-sphere-pathtracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	scenesDir := flag.String("scenes", "scenes", "Directory of .json/.gltf/.glb scene files")
	flag.Parse()

	// Create and start web server
	webServer := server.NewServer(*port, *scenesDir)

	log.Printf("Sphere Path Tracer Web Server")
	log.Printf("Visit http://localhost:%d/api/render?scene=cornell to start rendering", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
