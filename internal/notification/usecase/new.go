package usecase

import (
	"realtime-srv/internal/notification"
	"realtime-srv/internal/notification/repository"
	pkgLog "realtime-srv/pkg/log"
)

type usecase struct {
	l    pkgLog.Logger
	repo repository.Repository
}

func New(l pkgLog.Logger, repo repository.Repository) notification.UseCase {
	return &usecase{
		l:    l,
		repo: repo,
	}
}
