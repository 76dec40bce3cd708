package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"paxfusion-service/internal/domain/entity"
	"paxfusion-service/internal/domain/repository"
	"paxfusion-service/pkg/logger"
)

// Flight graph defaults
const (
	DefaultGraphFrom       = "2023-01-01"
	DefaultGraphTo         = "2025-01-01"
	DefaultGraphMinFlights = 2
)

// GraphQuery selects the passengers and window of a flight graph
type GraphQuery struct {
	From       string // inclusive, 2006-01-02
	To         string // inclusive, 2006-01-02
	MinFlights int
}

// FlightGraphBuilder geocodes the unified history for the map view
type FlightGraphBuilder struct {
	airportRepo repository.AirportRepository
	logger      logger.Logger
}

// NewFlightGraphBuilder creates a new flight graph builder
func NewFlightGraphBuilder(airportRepo repository.AirportRepository, logger logger.Logger) *FlightGraphBuilder {
	return &FlightGraphBuilder{
		airportRepo: airportRepo,
		logger:      logger,
	}
}

// Build selects passengers with at least MinFlights flights in the whole history,
// most active first, and returns their flights inside the date window. Flights
// whose airports have no coordinates are skipped and counted.
func (b *FlightGraphBuilder) Build(ctx context.Context, history []entity.HistoryRow, q GraphQuery) (*entity.FlightGraph, error) {
	q = q.withDefaults()
	from, err := dateOrError(q.From)
	if err != nil {
		return nil, err
	}
	to, err := dateOrError(q.To)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	var order []string
	for _, row := range history {
		if _, ok := counts[row.AssignedID]; !ok {
			order = append(order, row.AssignedID)
		}
		counts[row.AssignedID]++
	}
	var passengers []string
	for _, id := range order {
		if counts[id] >= q.MinFlights {
			passengers = append(passengers, id)
		}
	}
	sort.SliceStable(passengers, func(i, j int) bool {
		return counts[passengers[i]] > counts[passengers[j]]
	})

	graph := &entity.FlightGraph{Passengers: passengers, Paths: []entity.FlightPath{}}
	coords := make(map[string]*entity.Coordinates)
	for _, id := range passengers {
		for _, row := range history {
			if row.AssignedID != id || row.FlightDate < from || row.FlightDate > to {
				continue
			}
			fromCoords, err := b.lookup(ctx, coords, row.Origin)
			if err != nil {
				return nil, err
			}
			toCoords, err := b.lookup(ctx, coords, row.Dest)
			if err != nil {
				return nil, err
			}
			if fromCoords == nil || toCoords == nil {
				graph.Skipped++
				continue
			}
			graph.Paths = append(graph.Paths, entity.FlightPath{
				PassengerID:  row.AssignedID,
				FlightDate:   row.FlightDate,
				FlightNumber: row.FlightNumber,
				From:         row.Origin,
				To:           row.Dest,
				FromCoords:   *fromCoords,
				ToCoords:     *toCoords,
			})
		}
	}

	if graph.Skipped > 0 {
		b.logger.Warn("Skipped flights without airport coordinates", "count", graph.Skipped)
	}
	return graph, nil
}

// lookup resolves airport coordinates once per code; unknown airports yield nil
func (b *FlightGraphBuilder) lookup(ctx context.Context, cache map[string]*entity.Coordinates, code string) (*entity.Coordinates, error) {
	if c, ok := cache[code]; ok {
		return c, nil
	}
	if code == "" || b.airportRepo == nil {
		cache[code] = nil
		return nil, nil
	}
	airport, err := b.airportRepo.GetByAirportCode(ctx, code)
	if errors.Is(err, entity.ErrNotFound) {
		b.logger.Warn("Airport not in directory", "code", code)
		cache[code] = nil
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get airport: %w", err)
	}
	c, ok := airport.Coordinates()
	if !ok {
		b.logger.Warn("Airport has no coordinates", "code", code)
		cache[code] = nil
		return nil, nil
	}
	cache[code] = &c
	return &c, nil
}

func (q GraphQuery) withDefaults() GraphQuery {
	if q.From == "" {
		q.From = DefaultGraphFrom
	}
	if q.To == "" {
		q.To = DefaultGraphTo
	}
	if q.MinFlights <= 0 {
		q.MinFlights = DefaultGraphMinFlights
	}
	return q
}

func dateOrError(value string) (string, error) {
	d := dateOrEmpty(value)
	if d == "" {
		return "", fmt.Errorf("%w: invalid date %q", entity.ErrMalformedInput, value)
	}
	return d, nil
}
