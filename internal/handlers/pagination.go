package handlers

import (
	"errors"

	"github.com/Job-Wilhelm/course-booking/internal/models"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 50
)

var errInvalidNumber = errors.New("invalid number")

func buildPaginationMeta(page, limit, total int) models.PaginationMeta {
	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return models.PaginationMeta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
