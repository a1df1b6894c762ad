package mess

import (
	"context"
	"log"
	"time"
)

// Broadcaster receives each authoritative directory snapshot.
type Broadcaster interface {
	Broadcast(snapshot interface{})
}

// RunWatcher tails the messes change stream and pushes a freshly computed
// full snapshot after every write. Subscribers always get the complete
// collection, never a delta. Returns when ctx is cancelled.
func RunWatcher(ctx context.Context, repo *MongoRepository, service *Service, hub Broadcaster) {
	publish := func() {
		cards, err := service.ListCards(ctx)
		if err != nil {
			log.Printf("watcher: snapshot read failed: %v", err)
			return
		}
		hub.Broadcast(map[string]interface{}{"messes": cards})
	}

	// Seed clients before the first change arrives.
	publish()

	for {
		stream, err := repo.Watch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("watcher: change stream open failed: %v", err)
			select {
			case <-time.After(5 * time.Second):
				continue
			case <-ctx.Done():
				return
			}
		}

		for stream.Next(ctx) {
			publish()
		}
		_ = stream.Close(context.Background())

		if ctx.Err() != nil {
			return
		}
		log.Printf("watcher: change stream ended: %v", stream.Err())
	}
}
