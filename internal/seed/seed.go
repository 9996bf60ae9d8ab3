package seed

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"recipe-app-go/internal/domain/catalog"
	"recipe-app-go/pkg/logger"
	"github.com/google/uuid"
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Loader imports reference data from CSV files. Rows already present
// are skipped, so re-running an import is safe.
type Loader struct {
	repo catalog.Repository
	log  logger.Logger
}

func NewLoader(repo catalog.Repository, log logger.Logger) *Loader {
	return &Loader{repo: repo, log: log}
}

// LoadIngredients reads "name,measurement_unit" rows without a header.
func (l *Loader) LoadIngredients(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open ingredients file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 2

	var created, skipped int
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read ingredients file: %w", err)
		}

		name := capitalize(strings.TrimSpace(record[0]))
		unit := strings.TrimSpace(record[1])
		if name == "" || unit == "" {
			skipped++
			continue
		}

		ingredient := catalog.Ingredient{
			ID:              uuid.NewString(),
			Name:            name,
			MeasurementUnit: unit,
		}
		isNew, err := l.repo.GetOrCreateIngredient(ctx, &ingredient)
		if err != nil {
			return fmt.Errorf("import ingredient %q: %w", name, err)
		}
		if isNew {
			created++
		} else {
			skipped++
		}
	}

	l.log.Info("ingredients imported", "created", created, "skipped", skipped)
	return nil
}

// LoadTags reads "name,color,slug" rows without a header.
func (l *Loader) LoadTags(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open tags file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 3

	var created, skipped int
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read tags file: %w", err)
		}

		tag := catalog.Tag{
			ID:    uuid.NewString(),
			Name:  strings.TrimSpace(record[0]),
			Color: strings.TrimSpace(record[1]),
			Slug:  strings.TrimSpace(record[2]),
		}
		if tag.Name == "" || tag.Slug == "" {
			skipped++
			continue
		}
		if !colorPattern.MatchString(tag.Color) {
			return fmt.Errorf("import tag %q: color %q is not a hex triplet", tag.Name, tag.Color)
		}

		isNew, err := l.repo.GetOrCreateTag(ctx, &tag)
		if err != nil {
			return fmt.Errorf("import tag %q: %w", tag.Name, err)
		}
		if isNew {
			created++
		} else {
			skipped++
		}
	}

	l.log.Info("tags imported", "created", created, "skipped", skipped)
	return nil
}

// capitalize uppercases the first rune and lowercases the rest.
func capitalize(s string) string {
	if s == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(first)) + strings.ToLower(s[size:])
}
