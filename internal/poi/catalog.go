// Package poi ищет точки интереса для города: по статическому каталогу или через Amadeus.
package poi

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"globetrotter/internal/model"

	"gopkg.in/yaml.v3"
)

// Finder возвращает точки интереса для названия города или направления.
type Finder interface {
	Find(ctx context.Context, city string) ([]model.POI, error)
}

//go:embed catalog.yaml
var defaultCatalog []byte

type catalogCity struct {
	Key  string      `yaml:"key"`
	POIs []model.POI `yaml:"pois"`
}

type catalogFile struct {
	Cities  []catalogCity `yaml:"cities"`
	Default []model.POI   `yaml:"default"`
}

// Catalog - статическая таблица точек интереса, работает без сети.
type Catalog struct {
	cities   []catalogCity
	fallback []model.POI
}

// LoadCatalog читает каталог из файла; пустой путь означает встроенный каталог.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return ParseCatalog(defaultCatalog)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать каталог POI: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog разбирает YAML-документ каталога.
func ParseCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("некорректный каталог POI: %w", err)
	}
	if len(f.Default) == 0 {
		return nil, errors.New("в каталоге POI нет списка default")
	}
	for i := range f.Cities {
		f.Cities[i].Key = strings.ToLower(strings.TrimSpace(f.Cities[i].Key))
	}
	return &Catalog{cities: f.Cities, fallback: f.Default}, nil
}

// Lookup возвращает список первого города, ключ которого содержится в destination,
// или список по умолчанию.
func (c *Catalog) Lookup(destination string) []model.POI {
	dest := strings.ToLower(destination)
	for _, city := range c.cities {
		if city.Key != "" && strings.Contains(dest, city.Key) {
			return clonePOIs(city.POIs)
		}
	}
	return clonePOIs(c.fallback)
}

// Find реализует Finder; статический каталог никогда не возвращает ошибку.
func (c *Catalog) Find(_ context.Context, city string) ([]model.POI, error) {
	return c.Lookup(city), nil
}

func clonePOIs(src []model.POI) []model.POI {
	out := make([]model.POI, len(src))
	copy(out, src)
	return out
}
