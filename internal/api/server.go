package api

import (
	"github.com/avieira/cardbox/internal/services"
	"github.com/avieira/cardbox/internal/worker"
)

// Server holds the handler dependencies.
type Server struct {
	GroupService  services.GroupService
	CardService   services.CardService
	StudyService  services.StudyService
	ReviewService services.ReviewService
	StatsService  services.StatsService
	ResetPool     *worker.Pool
	DueBatchLimit int
}
