package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"paxfusion-service/internal/domain/entity"
	"paxfusion-service/internal/domain/repository"
	"paxfusion-service/pkg/logger"
	"paxfusion-service/pkg/metrics"
)

// Stage names used in logs and metrics
const (
	StageReconcile  = "reconcile"
	StageSuspicious = "suspicious_filter"
	StageDedup      = "dedup"
	StageLink       = "loyalty_link"
	StageAssign     = "assign_ids"
	StageFuse       = "fuse_flights"
)

// DocumentBranchResult is the output of the document branch
type DocumentBranchResult struct {
	Links            []entity.DocumentLink
	Conflicts        []entity.DocumentConflict
	Chains           []entity.DocumentChain
	ReconciledLegs   []entity.FlightLeg
	SuspiciousLegs   []entity.SuspiciousLeg
	Legs             []entity.FlightLeg
	AmbiguousTickets []entity.AmbiguousTicket
}

// FusionProcessor runs the identity-resolution and flight fusion pipeline
type FusionProcessor struct {
	airlineRepo repository.AirlineRepository
	logger      logger.Logger
	metrics     *metrics.Metrics
	ratio       float64
}

// NewFusionProcessor creates a new fusion processor. airlineRepo and metrics
// may be nil.
func NewFusionProcessor(
	airlineRepo repository.AirlineRepository,
	logger logger.Logger,
	metrics *metrics.Metrics,
	ratio float64,
) *FusionProcessor {
	if ratio <= 0 {
		ratio = DefaultSuspiciousRatio
	}
	return &FusionProcessor{
		airlineRepo: airlineRepo,
		logger:      logger,
		metrics:     metrics,
		ratio:       ratio,
	}
}

// Run executes both branches concurrently, then assigns canonical IDs and fuses
// the flight history. A failing branch aborts the run with a *entity.BranchError.
func (fp *FusionProcessor) Run(ctx context.Context, snapshot *entity.Snapshot) (*entity.FusionResult, error) {
	if snapshot == nil {
		return nil, fmt.Errorf("failed to run fusion: %w", entity.ErrMalformedInput)
	}
	runID := uuid.NewString()
	log := fp.logger.With("runID", runID)
	log.Info("Starting fusion run",
		"reservations", len(snapshot.Reservations),
		"boardingPasses", len(snapshot.BoardingPasses),
		"exchange", len(snapshot.Exchange),
		"club", len(snapshot.Club),
		"forum", len(snapshot.Forum),
	)

	var (
		docs    *DocumentBranchResult
		loyalty *LinkResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := fp.runDocumentBranch(gctx, snapshot, log)
		if err != nil {
			return &entity.BranchError{Branch: entity.BranchDocument, Err: err}
		}
		docs = res
		return nil
	})
	g.Go(func() error {
		res, err := fp.runLoyaltyBranch(gctx, snapshot, log)
		if err != nil {
			return &entity.BranchError{Branch: entity.BranchLoyalty, Err: err}
		}
		loyalty = res
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Error("Fusion run failed", "error", err)
		fp.metrics.RunFinished("failed")
		return nil, err
	}

	start := time.Now()
	assigned := AssignIDs(loyalty.Identities, docs.ReconciledLegs)
	fp.metrics.ObserveStage(StageAssign, start)
	fp.metrics.AddRows(StageAssign, metrics.KindIn, len(loyalty.Identities))
	fp.metrics.AddRows(StageAssign, metrics.KindOut, len(assigned.Identities))
	fp.metrics.AddRows(StageAssign, metrics.KindDropped, assigned.Unlabelled)
	fp.metrics.AddConflicts("ffkey_document", len(assigned.Conflicts))
	log.Info("Assigned canonical IDs",
		"identities", len(assigned.Identities),
		"unlabelled", assigned.Unlabelled,
		"ffkeyDocumentConflicts", len(assigned.Conflicts),
	)

	start = time.Now()
	fused := FuseFlights(assigned.Identities, docs.Legs, snapshot.Exchange, snapshot.Club, snapshot.Forum)
	fp.metrics.ObserveStage(StageFuse, start)
	fp.metrics.AddRows(StageFuse, metrics.KindOut, len(fused.History))
	fp.metrics.AddRows(StageFuse, metrics.KindDropped, fused.NoFlight)
	log.Info("Fused flight history", "rows", len(fused.History), "noFlight", fused.NoFlight)

	fp.enrichAirlines(ctx, fused.History, log)

	fp.metrics.RunFinished("success")
	log.Info("Fusion run finished")

	return &entity.FusionResult{
		RunID:                  runID,
		DocumentLinks:          docs.Links,
		DocumentConflicts:      docs.Conflicts,
		DocumentChains:         docs.Chains,
		ReconciledLegs:         docs.ReconciledLegs,
		SuspiciousLegs:         docs.SuspiciousLegs,
		Legs:                   docs.Legs,
		AmbiguousTickets:       docs.AmbiguousTickets,
		Identities:             assigned.Identities,
		ConflictedKeys:         loyalty.ConflictedKeys,
		NicknameConflicts:      loyalty.NicknameConflicts,
		FFKeyDocumentConflicts: assigned.Conflicts,
		History:                fused.History,
	}, nil
}

// RunDocumentBranch reconciles documents, filters suspicious legs and
// deduplicates the reservation and boarding leg sets.
func (fp *FusionProcessor) RunDocumentBranch(ctx context.Context, snapshot *entity.Snapshot) (*DocumentBranchResult, error) {
	return fp.runDocumentBranch(ctx, snapshot, fp.logger)
}

// RunLoyaltyBranch links loyalty keys, uids and nicknames into identities
func (fp *FusionProcessor) RunLoyaltyBranch(ctx context.Context, snapshot *entity.Snapshot) (*LinkResult, error) {
	return fp.runLoyaltyBranch(ctx, snapshot, fp.logger)
}

func (fp *FusionProcessor) runDocumentBranch(ctx context.Context, snapshot *entity.Snapshot, log logger.Logger) (*DocumentBranchResult, error) {
	if err := requireRows(
		extractSize{entity.SourceReservation, len(snapshot.Reservations)},
		extractSize{entity.SourceBoarding, len(snapshot.BoardingPasses)},
	); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reservation := ReservationLegs(snapshot.Reservations)
	boarding := BoardingLegs(snapshot.BoardingPasses)

	start := time.Now()
	reconciled := Reconcile(reservation, boarding)
	fp.metrics.ObserveStage(StageReconcile, start)
	fp.metrics.AddRows(StageReconcile, metrics.KindIn, len(reservation))
	fp.metrics.AddConflicts("document", len(reconciled.Conflicts))
	fp.metrics.AddConflicts("document_chain", len(reconciled.Chains))
	log.Info("Reconciled documents",
		"links", len(reconciled.Links),
		"conflicts", len(reconciled.Conflicts),
		"chains", len(reconciled.Chains),
	)

	start = time.Now()
	filtered := FilterSuspicious(reconciled.Legs, fp.ratio)
	fp.metrics.ObserveStage(StageSuspicious, start)
	fp.metrics.AddRows(StageSuspicious, metrics.KindIn, len(reconciled.Legs))
	fp.metrics.AddRows(StageSuspicious, metrics.KindOut, len(filtered.Legs))
	fp.metrics.AddRows(StageSuspicious, metrics.KindDropped, len(filtered.Dropped))
	log.Info("Filtered suspicious legs", "in", len(reconciled.Legs), "dropped", len(filtered.Dropped), "ratio", fp.ratio)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start = time.Now()
	deduped := Deduplicate(filtered.Legs, boarding)
	fp.metrics.ObserveStage(StageDedup, start)
	fp.metrics.AddRows(StageDedup, metrics.KindIn, len(filtered.Legs)+len(boarding))
	fp.metrics.AddRows(StageDedup, metrics.KindOut, len(deduped.Legs))
	fp.metrics.AddRows(StageDedup, metrics.KindDropped, deduped.MissingKeys)
	fp.metrics.AddConflicts("ambiguous_ticket", len(deduped.AmbiguousTickets))
	log.Info("Deduplicated legs",
		"legs", len(deduped.Legs),
		"missingKeys", deduped.MissingKeys,
		"ambiguousTickets", len(deduped.AmbiguousTickets),
	)

	return &DocumentBranchResult{
		Links:            reconciled.Links,
		Conflicts:        reconciled.Conflicts,
		Chains:           reconciled.Chains,
		ReconciledLegs:   reconciled.Legs,
		SuspiciousLegs:   filtered.Dropped,
		Legs:             deduped.Legs,
		AmbiguousTickets: deduped.AmbiguousTickets,
	}, nil
}

func (fp *FusionProcessor) runLoyaltyBranch(ctx context.Context, snapshot *entity.Snapshot, log logger.Logger) (*LinkResult, error) {
	if err := requireRows(
		extractSize{entity.SourceExchange, len(snapshot.Exchange)},
		extractSize{entity.SourceClub, len(snapshot.Club)},
		extractSize{entity.SourceForum, len(snapshot.Forum)},
	); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	linked := LinkLoyalty(snapshot.Exchange, snapshot.Club, snapshot.Forum)
	fp.metrics.ObserveStage(StageLink, start)
	fp.metrics.AddRows(StageLink, metrics.KindOut, len(linked.Identities))
	fp.metrics.AddRows(StageLink, metrics.KindExcluded, len(linked.ConflictedKeys))
	fp.metrics.AddConflicts("conflicted_key", len(linked.ConflictedKeys))
	fp.metrics.AddConflicts("nickname", len(linked.NicknameConflicts))
	log.Info("Linked loyalty identities",
		"identities", len(linked.Identities),
		"conflictedKeys", len(linked.ConflictedKeys),
		"nicknameConflicts", len(linked.NicknameConflicts),
	)
	return &linked, nil
}

// enrichAirlines resolves the airline name from the two-character flight number prefix
func (fp *FusionProcessor) enrichAirlines(ctx context.Context, history []entity.HistoryRow, log logger.Logger) {
	if fp.airlineRepo == nil {
		return
	}
	names := make(map[string]string)
	for i := range history {
		prefix := strings.ToUpper(history[i].FlightNumber)
		if len(prefix) < 2 {
			continue
		}
		prefix = prefix[:2]
		name, ok := names[prefix]
		if !ok {
			airline, err := fp.airlineRepo.GetByCode(ctx, prefix)
			switch {
			case err == nil && airline != nil:
				name = airline.Name
			case errors.Is(err, entity.ErrNotFound):
				log.Debug("Airline not in directory", "code", prefix)
			case err != nil:
				log.Warn("Failed to get airline", "code", prefix, "error", err)
			}
			names[prefix] = name
		}
		history[i].Airline = name
	}
}

type extractSize struct {
	source entity.Source
	rows   int
}

func requireRows(sizes ...extractSize) error {
	for _, s := range sizes {
		if s.rows == 0 {
			return fmt.Errorf("%s extract: %w", s.source, entity.ErrEmptyExtract)
		}
	}
	return nil
}
