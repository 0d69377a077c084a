package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	envFile := flag.String("env", ".env", "Environment file with deployment settings")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Printf("Error loading configuration: %v", err)
		os.Exit(1)
	}

	webServer := server.NewServer(*port, cfg.Workers)

	if cfg.S3.Enabled() {
		client, err := output.NewS3Client(cfg.S3)
		if err != nil {
			log.Printf("Error creating S3 client: %v", err)
			os.Exit(1)
		}
		webServer.SetPublisher(output.NewS3Publisher(client, cfg.S3.Bucket, cfg.S3.Prefix))
		log.Printf("Uploads enabled to bucket %s", cfg.S3.Bucket)
	}

	log.Printf("Whitted Raytracer Web Server")
	log.Printf("Visit http://localhost:%d to start rendering", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
