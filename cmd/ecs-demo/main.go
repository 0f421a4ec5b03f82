// ecs-demo walks through the store's lifecycle: an entity is created, given a component, and
// removed; a second entity takes its place; every remaining component is printed.
//
// Diagnostics are configured from the environment:
//
//	ECS_DIAGNOSTICS=true ECS_LOG_LEVEL=debug go run ./cmd/ecs-demo
package main

import (
	"fmt"
	"os"

	"github.com/argus-labs/ecstore/pkg/ecs"
	"github.com/argus-labs/ecstore/pkg/telemetry"
	"github.com/rs/zerolog/log"
)

// Reading is a sample component whose default value is 1.
type Reading struct {
	Data float32
}

func (Reading) Default() Reading {
	return Reading{Data: 1}
}

func main() {
	tel, err := telemetry.New(telemetry.Options{ServiceName: "ecs-demo"})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up logging")
	}
	logger := tel.GetLogger("main")

	opts, err := ecs.LoadOptions()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load store options")
	}

	store := ecs.NewStore(ecs.WithLogger(tel.GetLogger("ecs")), ecs.WithOptions(opts))
	defer store.Close()
	entities := ecs.NewAllocator()

	first := entities.New()
	ecs.AddValue(store, first, &Reading{Data: 1})
	store.RemoveEntity(first)

	second := entities.New()
	ecs.Add[Reading](store, second)

	// Misuse is reported and recovered from.
	ecs.AddValue(store, second, &Reading{Data: 2})
	ecs.Remove[Reading](store, first)

	logger.Info().
		Uint32("first", uint32(first)).
		Uint32("second", uint32(second)).
		Int("components", store.Len()).
		Strs("types", store.ComponentTypes()).
		Msg("demo finished")

	ecs.ForEachEntity(store, func(eid ecs.EntityID, r *Reading) {
		fmt.Fprintf(os.Stdout, "entity %d: %v\n", eid, r.Data)
	})
}
