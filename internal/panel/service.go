package panel

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrUnknownPanel is returned when no panel is registered under a name.
var ErrUnknownPanel = errors.New("unknown panel")

// Service runs the load, render and error lifecycle for a fixed set of panels.
type Service struct {
	panels []Panel
	byName map[string]Panel
	log    *zap.Logger
}

// NewService registers panels in display order. Names must be unique.
func NewService(log *zap.Logger, panels ...Panel) (*Service, error) {
	s := &Service{
		byName: make(map[string]Panel, len(panels)),
		log:    log,
	}
	for _, p := range panels {
		name := p.Describe().Name
		if name == "" {
			return nil, fmt.Errorf("panel without a name")
		}
		if _, dup := s.byName[name]; dup {
			return nil, fmt.Errorf("duplicate panel %q", name)
		}
		s.byName[name] = p
		s.panels = append(s.panels, p)
	}
	return s, nil
}

// Panels returns the metadata of every registered panel in display order.
func (s *Service) Panels() []Meta {
	metas := make([]Meta, 0, len(s.panels))
	for _, p := range s.panels {
		metas = append(metas, p.Describe())
	}
	return metas
}

// Render runs one invocation of the named panel. Panel failures are folded
// into the outcome; the returned error is only ever ErrUnknownPanel.
func (s *Service) Render(ctx context.Context, name string, in Input) (Outcome, error) {
	p, ok := s.byName[name]
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %s", ErrUnknownPanel, name)
	}
	return s.run(ctx, p, in), nil
}

func (s *Service) run(ctx context.Context, p Panel, in Input) (out Outcome) {
	out = Outcome{
		Panel:   p.Describe().Name,
		RunID:   uuid.NewString(),
		Started: time.Now(),
	}

	defer func() {
		if r := recover(); r != nil {
			out.Err = Fail(ReasonRender, fmt.Errorf("panic: %v", r))
		}
		out.Elapsed = time.Since(out.Started)
		if out.Err != nil {
			out.Fragment = ErrorHTML(out.Err)
			s.log.Warn("panel failed",
				zap.String("panel", out.Panel),
				zap.String("run", out.RunID),
				zap.String("reason", string(ReasonOf(out.Err))),
				zap.Duration("elapsed", out.Elapsed),
				zap.Error(out.Err),
			)
			return
		}
		s.log.Debug("panel rendered",
			zap.String("panel", out.Panel),
			zap.String("run", out.RunID),
			zap.Duration("elapsed", out.Elapsed),
		)
	}()

	out.Fragment, out.Err = p.Load(ctx, in)
	return out
}

// Probe runs every panel concurrently with default input and records the
// outcomes in store.
func (s *Service) Probe(ctx context.Context, store StatusStore) {
	var wg sync.WaitGroup
	for _, p := range s.panels {
		p := p
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Save(StatusFrom(s.run(ctx, p, Input{})))
		}()
	}
	wg.Wait()
}
