// ecs-profile runs a churn workload against the store for profiling. The workload is configured
// from the environment:
//
//	go build ./cmd/ecs-profile
//	PROFILE_MODE=mem PROFILE_ENTITIES=5000 ./ecs-profile
//	go tool pprof -http=":8000" ./ecs-profile mem.pprof
package main

import (
	"github.com/argus-labs/ecstore/pkg/ecs"
	"github.com/caarlos0/env/v11"
	"github.com/pkg/profile"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
)

type config struct {
	// Profile to capture ("cpu", "mem").
	Mode string `env:"PROFILE_MODE" envDefault:"cpu"`

	// Number of fresh stores to run.
	Rounds int `env:"PROFILE_ROUNDS" envDefault:"50"`

	// Iterations per store.
	Iters int `env:"PROFILE_ITERS" envDefault:"100"`

	// Entities created per iteration.
	Entities int `env:"PROFILE_ENTITIES" envDefault:"1000"`
}

func loadConfig(envOpts env.Options) (config, error) {
	cfg := config{}

	if err := env.ParseWithOptions(&cfg, envOpts); err != nil {
		return cfg, eris.Wrap(err, "failed to parse profile config")
	}

	if cfg.Mode != "cpu" && cfg.Mode != "mem" {
		return cfg, eris.Errorf("invalid profile mode: %s (must be 'cpu' or 'mem')", cfg.Mode)
	}
	if cfg.Rounds <= 0 || cfg.Iters <= 0 || cfg.Entities <= 0 {
		return cfg, eris.Errorf("workload sizes must be positive, got %+v", cfg)
	}

	return cfg, nil
}

type position struct {
	X, Y float64
}

type velocity struct {
	X, Y float64
}

type health struct {
	Value int
}

func main() {
	cfg, err := loadConfig(env.Options{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load profile config")
	}

	mode := profile.CPUProfile
	if cfg.Mode == "mem" {
		mode = profile.MemProfileAllocs
	}
	p := profile.Start(mode, profile.ProfilePath("."), profile.NoShutdownHook)

	checksum := run(cfg.Rounds, cfg.Iters, cfg.Entities)
	p.Stop()

	log.Info().Str("mode", cfg.Mode).Float64("checksum", checksum).Msg("profile written")
}

// run creates entities with a mix of components, integrates positions, then removes every entity.
func run(rounds, iters, numEntities int) float64 {
	var checksum float64
	for range rounds {
		store := ecs.NewStore()
		alloc := ecs.NewAllocator()

		for range iters {
			created := make([]ecs.EntityID, 0, numEntities)
			for i := range numEntities {
				eid := alloc.New()
				created = append(created, eid)
				ecs.AddValue(store, eid, &position{})
				ecs.AddValue(store, eid, &velocity{X: 1, Y: float64(i % 3)})
				if i%2 == 0 {
					ecs.AddValue(store, eid, &health{Value: 100})
				}
			}

			ecs.ForEachEntity(store, func(eid ecs.EntityID, p *position) {
				if v, ok := ecs.Get[velocity](store, eid); ok {
					p.X += v.X
					p.Y += v.Y
				}
			})
			ecs.ForEach(store, func(p *position) {
				checksum += p.X + p.Y
			})

			for _, eid := range created {
				store.RemoveEntity(eid)
			}
		}
		store.Close()
	}
	return checksum
}
