package usecase

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"paxfusion-service/internal/domain/entity"
	"paxfusion-service/pkg/utils"
)

// ExtractHandlerAdapter adapts one ExtractParser method to the ExtractHandler interface
type ExtractHandlerAdapter struct {
	source   entity.Source
	patterns []string
	load     func(r io.Reader, snapshot *entity.Snapshot) error
}

// NewReservationHandler handles the reservation-system export
func NewReservationHandler(parser *utils.ExtractParser, patterns []string) *ExtractHandlerAdapter {
	return &ExtractHandlerAdapter{
		source:   entity.SourceReservation,
		patterns: patterns,
		load: func(r io.Reader, s *entity.Snapshot) error {
			rows, err := parser.ParseReservationExport(r)
			s.Reservations = append(s.Reservations, rows...)
			return err
		},
	}
}

// NewBoardingHandler handles the boarding-pass export
func NewBoardingHandler(parser *utils.ExtractParser, patterns []string) *ExtractHandlerAdapter {
	return &ExtractHandlerAdapter{
		source:   entity.SourceBoarding,
		patterns: patterns,
		load: func(r io.Reader, s *entity.Snapshot) error {
			rows, err := parser.ParseBoardingPasses(r)
			s.BoardingPasses = append(s.BoardingPasses, rows...)
			return err
		},
	}
}

// NewExchangeHandler handles the travel-agency exchange feed
func NewExchangeHandler(parser *utils.ExtractParser, patterns []string) *ExtractHandlerAdapter {
	return &ExtractHandlerAdapter{
		source:   entity.SourceExchange,
		patterns: patterns,
		load: func(r io.Reader, s *entity.Snapshot) error {
			rows, err := parser.ParseExchangeFeed(r)
			s.Exchange = append(s.Exchange, rows...)
			return err
		},
	}
}

// NewClubHandler handles the loyalty-club export
func NewClubHandler(parser *utils.ExtractParser, patterns []string) *ExtractHandlerAdapter {
	return &ExtractHandlerAdapter{
		source:   entity.SourceClub,
		patterns: patterns,
		load: func(r io.Reader, s *entity.Snapshot) error {
			rows, err := parser.ParseClubExport(r)
			s.Club = append(s.Club, rows...)
			return err
		},
	}
}

// NewForumHandler handles the forum profile dump
func NewForumHandler(parser *utils.ExtractParser, patterns []string) *ExtractHandlerAdapter {
	return &ExtractHandlerAdapter{
		source:   entity.SourceForum,
		patterns: patterns,
		load: func(r io.Reader, s *entity.Snapshot) error {
			rows, err := parser.ParseForumProfiles(r)
			s.Forum = append(s.Forum, rows...)
			return err
		},
	}
}

// CanHandle checks if the file name contains one of the handler's patterns
func (a *ExtractHandlerAdapter) CanHandle(filename string) bool {
	name := strings.ToLower(filepath.Base(filename))
	for _, pattern := range a.patterns {
		if pattern != "" && strings.Contains(name, strings.ToLower(pattern)) {
			return true
		}
	}
	return false
}

// Source reports which extract the handler produces
func (a *ExtractHandlerAdapter) Source() entity.Source {
	return a.source
}

// Load parses the file into the snapshot
func (a *ExtractHandlerAdapter) Load(ctx context.Context, r io.Reader, snapshot *entity.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return a.load(r, snapshot)
}

// String names the handler in logs
func (a *ExtractHandlerAdapter) String() string {
	return string(a.source)
}

// RegisterDefaultHandlers registers one handler per extract on the router
func RegisterDefaultHandlers(router SourceRouter, parser *utils.ExtractParser, files map[entity.Source][]string) {
	router.Register(NewReservationHandler(parser, files[entity.SourceReservation]))
	router.Register(NewBoardingHandler(parser, files[entity.SourceBoarding]))
	router.Register(NewExchangeHandler(parser, files[entity.SourceExchange]))
	router.Register(NewClubHandler(parser, files[entity.SourceClub]))
	router.Register(NewForumHandler(parser, files[entity.SourceForum]))
}
