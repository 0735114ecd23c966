package main

import (
	"log"

	"priority-scheduler/api"
	"priority-scheduler/config"
)

func main() {
	cfg := config.GetSchedulerConfig()

	log.Fatalln(api.Serve(cfg))
}
