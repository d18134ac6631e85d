package service

import (
	"strconv"

	"academy-service/internal/apperror"
	"academy-service/internal/models"
)

const (
	lastPage        = "last"
	DefaultPageSize = 10
)

func pageSizeOrDefault(size int) int {
	if size < 1 {
		return DefaultPageSize
	}
	return size
}

type pageWindow struct {
	number   int
	numPages int
	offset   int
}

// resolvePage interprets the page query parameter. An empty listing still
// has one (empty) first page; any other page outside the range, or a value
// that is neither a number nor "last", is not found.
func resolvePage(param string, total, size int) (pageWindow, error) {
	numPages := 1
	if total > 0 {
		numPages = (total + size - 1) / size
	}

	number := 1
	switch param {
	case "":
	case lastPage:
		number = numPages
	default:
		n, err := strconv.Atoi(param)
		if err != nil {
			return pageWindow{}, &apperror.NotFoundError{Resource: "page " + param}
		}
		number = n
	}
	if number < 1 || number > numPages {
		return pageWindow{}, &apperror.NotFoundError{Resource: "page " + param}
	}

	return pageWindow{number: number, numPages: numPages, offset: (number - 1) * size}, nil
}

func newPage[T any](items []T, w pageWindow, size, total int) *models.Page[T] {
	return &models.Page[T]{
		Items:    items,
		Number:   w.number,
		Size:     size,
		Total:    total,
		NumPages: w.numPages,
	}
}
