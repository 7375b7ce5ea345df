package service

import (
	"context"
	"time"

	"go-pos-admin/internal/apperror"
	"go-pos-admin/internal/model"
	"go-pos-admin/internal/repository"
)

type DashboardService interface {
	GetOrderMovement(ctx context.Context, caller *model.Staff, days int) ([]repository.OrderMovementData, error)
	GetDashboardStats(ctx context.Context, caller *model.Staff) (*repository.DashboardStats, error)
}

type dashboardService struct {
	repo repository.DashboardRepository
}

func NewDashboardService(repo repository.DashboardRepository) DashboardService {
	return &dashboardService{repo: repo}
}

func (s *dashboardService) GetOrderMovement(ctx context.Context, caller *model.Staff, days int) ([]repository.OrderMovementData, error) {
	if err := Authorize(caller, model.PermDashboardView); err != nil {
		return nil, err
	}
	scope := ScopeOf(caller)
	if scope.Empty() {
		return []repository.OrderMovementData{}, nil
	}

	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)

	data, err := s.repo.GetOrderMovement(ctx, scope.BrandIDs(), scope.OutletIDs(), startDate, endDate)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return data, nil
}

func (s *dashboardService) GetDashboardStats(ctx context.Context, caller *model.Staff) (*repository.DashboardStats, error) {
	if err := Authorize(caller, model.PermDashboardView); err != nil {
		return nil, err
	}
	scope := ScopeOf(caller)
	if scope.Empty() {
		return &repository.DashboardStats{}, nil
	}
	stats, err := s.repo.GetDashboardStats(ctx, scope.BrandIDs(), scope.OutletIDs())
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return stats, nil
}
