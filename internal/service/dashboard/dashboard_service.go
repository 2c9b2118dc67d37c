package dashboard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dinerozz/datahive-backend/internal/entity"
	"github.com/dinerozz/datahive-backend/internal/pipeline"
	"github.com/dinerozz/datahive-backend/internal/shared"
	"golang.org/x/sync/singleflight"
)

type Ledger interface {
	ListWebsites(ctx context.Context) ([]string, error)
	FetchWebsiteDataset(ctx context.Context, websiteID string) (entity.WebsiteDataset, error)
}

type Products interface {
	ResolveAll(ctx context.Context, ids []string) (pipeline.Catalog, error)
	Categories() []string
}

// idle users are forgotten after this long
const selectionIdleTTL = 30 * time.Minute

// selectionState tracks the latest selection of one user. Every Select bumps
// generation; a build only commits if its generation is still the latest.
type selectionState struct {
	generation uint64
	selection  entity.Selection
	view       *entity.DashboardView
	lastSeen   time.Time
	building   int
}

type DashboardService struct {
	ledger   Ledger
	products Products
	decoder  *pipeline.Decoder
	logger   *slog.Logger
	now      func() time.Time
	fetches  singleflight.Group

	mu         sync.Mutex
	selections map[string]*selectionState
	idleTTL    time.Duration
	lastSweep  time.Time
}

func NewDashboardService(ledger Ledger, products Products, logger *slog.Logger) *DashboardService {
	return &DashboardService{
		ledger:     ledger,
		products:   products,
		decoder:    pipeline.NewDecoder(),
		logger:     logger.With("component", "dashboard"),
		now:        time.Now,
		selections: make(map[string]*selectionState),
		idleTTL:    selectionIdleTTL,
	}
}

func (s *DashboardService) Websites(ctx context.Context) ([]string, error) {
	return s.ledger.ListWebsites(ctx)
}

func (s *DashboardService) Categories() []string {
	return s.products.Categories()
}

// Build runs the whole pipeline for one selection. It keeps no state.
func (s *DashboardService) Build(ctx context.Context, sel entity.Selection) (*entity.DashboardView, error) {
	start := s.now()

	ds, err := s.fetch(ctx, sel.WebsiteID)
	if err != nil {
		return nil, err
	}

	decoded := s.decoder.DecodeDataset(ds)
	failures := decoded.FailureCount()
	if failures > 0 {
		for _, sess := range decoded.Sessions {
			for _, in := range sess.Interactions {
				if in.Failed() {
					s.logger.Debug("decode failure", slog.String("website_id", sel.WebsiteID), slog.Any("error", in.Err))
				}
			}
		}
	}

	catalog, err := s.products.ResolveAll(ctx, pipeline.ReferencedProductIDs(decoded))
	if err != nil {
		return nil, err
	}

	view := &entity.DashboardView{
		Selection:      sel,
		Sessions:       len(decoded.Sessions),
		Interactions:   decoded.InteractionCount(),
		DecodeFailures: failures,
		ClickSeries:    pipeline.ClickSeries(decoded, catalog),
		ProductSeries:  pipeline.ProductSeries(decoded, catalog, sel.Category),
		Funnel:         pipeline.Funnel(decoded),
		BuiltAt:        s.now(),
	}

	s.logger.Info("dashboard built",
		slog.String("website_id", sel.WebsiteID),
		slog.String("category", sel.Category),
		slog.Int("sessions", view.Sessions),
		slog.Int("interactions", view.Interactions),
		slog.Int("decode_failures", failures),
		slog.Duration("took", view.BuiltAt.Sub(start)))

	return view, nil
}

// fetch shares one ledger read between concurrent builds of the same website.
// The read is detached from the caller so one cancelled request does not
// fail the others; the ledger client applies its own timeout.
func (s *DashboardService) fetch(ctx context.Context, websiteID string) (entity.WebsiteDataset, error) {
	ch := s.fetches.DoChan(websiteID, func() (any, error) {
		return s.ledger.FetchWebsiteDataset(context.WithoutCancel(ctx), websiteID)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return entity.WebsiteDataset{}, res.Err
		}
		if res.Shared {
			s.logger.Debug("shared ledger fetch", slog.String("website_id", websiteID))
		}
		return res.Val.(entity.WebsiteDataset), nil
	case <-ctx.Done():
		return entity.WebsiteDataset{}, shared.NewUpstreamError("ledger", "fetch website "+websiteID, ctx.Err())
	}
}

// Select makes sel the user's current selection and builds its view. If the
// user selects again before the build finishes, the result is discarded and
// ErrSelectionSuperseded is returned.
func (s *DashboardService) Select(ctx context.Context, userID string, sel entity.Selection) (*entity.DashboardView, error) {
	s.mu.Lock()
	now := s.now()
	s.sweepLocked(now)
	state, ok := s.selections[userID]
	if !ok {
		state = &selectionState{}
		s.selections[userID] = state
	}
	state.generation++
	generation := state.generation
	state.selection = sel
	state.view = nil
	state.lastSeen = now
	state.building++
	s.mu.Unlock()

	view, err := s.Build(ctx, sel)

	s.mu.Lock()
	defer s.mu.Unlock()
	state.building--
	state.lastSeen = s.now()
	if state.generation != generation {
		s.logger.Debug("discarding stale dashboard build",
			slog.String("user_id", userID),
			slog.Uint64("generation", generation),
			slog.Uint64("latest", state.generation))
		return nil, shared.ErrSelectionSuperseded
	}
	if err != nil {
		return nil, err
	}

	view.Generation = generation
	state.view = view
	return view, nil
}

// Current returns the committed view of the user's current selection.
func (s *DashboardService) Current(userID string) (*entity.DashboardView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.selections[userID]
	if !ok || state.view == nil {
		return nil, shared.ErrNoView
	}
	state.lastSeen = s.now()
	view := *state.view
	return &view, nil
}

// sweepLocked drops users idle for longer than idleTTL. States with a build
// in flight are kept so the build still has somewhere to commit.
func (s *DashboardService) sweepLocked(now time.Time) {
	if now.Sub(s.lastSweep) < s.idleTTL {
		return
	}
	for userID, state := range s.selections {
		if state.building == 0 && now.Sub(state.lastSeen) > s.idleTTL {
			delete(s.selections, userID)
		}
	}
	s.lastSweep = now
}
