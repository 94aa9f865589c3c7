package workers

import (
	"log"
	"time"

	"gostablebridge/config"
	"gostablebridge/pool"
	"gostablebridge/redis"
)

// Worker_snapshot periodically persists the pool counters. Every mutation
// already persists, this loop just catches up after transient redis errors.
func Worker_snapshot(p *pool.Pool) {
	for !WorkerShutdown {
		time.Sleep(config.SNAPSHOT_INTERVAL_SECONDS * time.Second)

		if err := redis.SaveSnapshot(p.Snapshot()); err != nil {
			log.Printf("Error saving pool snapshot: %v", err)
		}
	}
}
