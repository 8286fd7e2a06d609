package service_test

import (
	"sync"

	"github.com/rs/zerolog"

	"outline/internal/service"
	"outline/internal/storage"
)

// newTestServices wires a fresh store with both services sharing one
// mutation mutex, the way the app layer does.
func newTestServices() (*service.PageService, *service.BlockService, *service.MockEmitter) {
	mu := &sync.Mutex{}
	store := storage.NewPageStore()
	emitter := &service.MockEmitter{}
	log := zerolog.Nop()
	return service.NewPageService(mu, store, emitter, log),
		service.NewBlockService(mu, store, emitter, log),
		emitter
}

func eventNames(emitter *service.MockEmitter) []string {
	names := make([]string, 0, len(emitter.Events))
	for _, e := range emitter.Events {
		names = append(names, e.Event)
	}
	return names
}
