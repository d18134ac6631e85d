package service

import (
	"context"

	"academy-service/internal/models"
	"academy-service/internal/repository"
)

type ReportService struct {
	repo     repository.JediRepository
	pageSize int
}

func NewReportService(repo repository.JediRepository, pageSize int) *ReportService {
	return &ReportService{repo: repo, pageSize: pageSizeOrDefault(pageSize)}
}

// AllJedi lists every Jedi with its number of padawans.
func (s *ReportService) AllJedi(ctx context.Context, page string) (*models.Page[models.JediSummary], error) {
	return s.list(ctx, 0, page)
}

// JediWithMoreThanOnePadawan lists Jedi mentoring at least two padawans.
func (s *ReportService) JediWithMoreThanOnePadawan(ctx context.Context, page string) (*models.Page[models.JediSummary], error) {
	return s.list(ctx, 2, page)
}

func (s *ReportService) list(ctx context.Context, minPadawans int, page string) (*models.Page[models.JediSummary], error) {
	total, err := s.repo.CountJediSummaries(ctx, minPadawans)
	if err != nil {
		return nil, err
	}
	w, err := resolvePage(page, total, s.pageSize)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListJediSummaries(ctx, minPadawans, w.offset, s.pageSize)
	if err != nil {
		return nil, err
	}
	return newPage(items, w, s.pageSize, total), nil
}
