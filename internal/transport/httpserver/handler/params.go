package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const defaultPageSize = 6

// pathID returns the {id} route parameter when it is a well-formed
// uuid. A malformed id cannot match any row, so callers treat it the
// same as an unknown one; it must never reach a uuid column bind.
func pathID(r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

func parseCSV(value string) []string {
	parts := strings.Split(value, ",")
	seen := make(map[string]struct{}, len(parts))
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		result = append(result, item)
	}
	return result
}

func parseIntParam(value string, fallback int) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0, fmt.Errorf("invalid int")
	}
	return parsed, nil
}

func parseBoolFlag(value string) bool {
	switch strings.TrimSpace(value) {
	case "1", "true", "True":
		return true
	}
	return false
}

// parsePagination turns 1-based page/limit query params into a
// limit/offset pair.
func parsePagination(page, limit string) (int, int, error) {
	pageNum, err := parseIntParam(page, 1)
	if err != nil || pageNum == 0 {
		return 0, 0, fmt.Errorf("invalid page")
	}
	pageSize, err := parseIntParam(limit, defaultPageSize)
	if err != nil || pageSize == 0 {
		return 0, 0, fmt.Errorf("invalid limit")
	}
	return pageSize, (pageNum - 1) * pageSize, nil
}
