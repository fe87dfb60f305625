package factory

import (
	"context"
	"fmt"

	"github.com/mvasiljevic/feed-curator/internal/storage"
	"github.com/mvasiljevic/feed-curator/internal/storage/es"
	"github.com/mvasiljevic/feed-curator/internal/storage/in_mem"
	"github.com/mvasiljevic/feed-curator/internal/storage/pg"
	pkgserver "github.com/mvasiljevic/feed-curator/pkg/server"
)

// Config carries the backend selection plus the per-backend settings;
// only the selected backend's section is consulted.
type Config struct {
	Type storage.Type
	PG   pg.PoolConfig
	ES   es.ClientConfig
}

// Backends bundles the two storage interfaces a generator needs. The
// in_mem backend serves both; pg serves both; es serves reads only and
// pairs with a pg briefing store when persistence is required.
type Backends struct {
	Candidates storage.CandidateReader
	Briefings  storage.BriefingStore
	pinger     pkgserver.Pinger
	close      func()
}

func (b *Backends) Close() {
	if b.close != nil {
		b.close()
	}
}

// HealthChecker returns a liveness probe for the selected backend: a
// pool ping when Postgres is in play, always-healthy otherwise.
func (b *Backends) HealthChecker() pkgserver.HealthChecker {
	if b.pinger != nil {
		return pkgserver.NewPingHealthChecker(b.pinger)
	}
	return pkgserver.NewOkHealthChecker()
}

func NewBackends(ctx context.Context, cfg Config) (*Backends, error) {
	switch cfg.Type {
	case storage.PG:
		pool, err := pg.NewConnectionPool(ctx, cfg.PG)
		if err != nil {
			return nil, err
		}
		reader, err := pg.NewCandidateReader(pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		briefings, err := pg.NewBriefingStore(pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return &Backends{Candidates: reader, Briefings: briefings, pinger: pool, close: pool.Close}, nil
	case storage.ES:
		reader, err := es.NewCandidateReader(cfg.ES)
		if err != nil {
			return nil, err
		}
		pool, err := pg.NewConnectionPool(ctx, cfg.PG)
		if err != nil {
			return nil, err
		}
		briefings, err := pg.NewBriefingStore(pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return &Backends{Candidates: reader, Briefings: briefings, pinger: pool, close: pool.Close}, nil
	case storage.InMem:
		store := in_mem.NewStore()
		return &Backends{Candidates: store, Briefings: store}, nil
	default:
		return nil, fmt.Errorf(string(storage.ErrUnsupportedStore), cfg.Type)
	}
}
