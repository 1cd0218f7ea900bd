package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-spectral-raytracer/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	scenes := flag.String("scenes", "scenes", "Directory of JSON scene configs")
	flag.Parse()

	webServer := server.NewServer(*port, *scenes)

	log.Printf("Spectral Raytracer Web Server")
	log.Printf("Try http://localhost:%d/api/render?scene=simple", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
