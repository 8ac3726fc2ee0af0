package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"questlog/internal/modules/catalog/domain"
	catalogout "questlog/internal/modules/catalog/port/out"
	apperrors "questlog/internal/platform/errors"
)

// YAMLDefinitionStore keeps each collection in its own YAML file as an
// ordered sequence, so listing preserves insertion order. Writes go
// through a temp file and rename; a failed write leaves the previous
// file intact.
type YAMLDefinitionStore struct {
	paths map[domain.Collection]string
}

type definitionRecord struct {
	Name        string  `yaml:"name"`
	BaseMinutes int     `yaml:"base_minutes"`
	BaseXP      float64 `yaml:"base_xp"`
	Multiplier  float64 `yaml:"multiplier"`
}

func NewYAMLDefinitionStore(tasksPath, rewardsPath string) catalogout.DefinitionStore {
	return &YAMLDefinitionStore{paths: map[domain.Collection]string{
		domain.CollectionTasks:   tasksPath,
		domain.CollectionRewards: rewardsPath,
	}}
}

func (s *YAMLDefinitionStore) Save(_ context.Context, collection domain.Collection, def domain.Definition) error {
	records, err := s.load(collection)
	if err != nil {
		return err
	}
	record := definitionRecord{
		Name:        def.Name,
		BaseMinutes: def.BaseMinutes,
		BaseXP:      def.BaseXP,
		Multiplier:  def.Multiplier,
	}
	replaced := false
	for i := range records {
		if records[i].Name == def.Name {
			records[i] = record
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, record)
	}
	return s.write(collection, records)
}

func (s *YAMLDefinitionStore) Delete(_ context.Context, collection domain.Collection, name string) error {
	records, err := s.load(collection)
	if err != nil {
		return err
	}
	for i := range records {
		if records[i].Name == name {
			return s.write(collection, append(records[:i:i], records[i+1:]...))
		}
	}
	return fmt.Errorf("%w: %s %q", apperrors.ErrNotFound, collection, name)
}

func (s *YAMLDefinitionStore) Find(_ context.Context, collection domain.Collection, name string) (domain.Definition, error) {
	records, err := s.load(collection)
	if err != nil {
		return domain.Definition{}, err
	}
	for _, record := range records {
		if record.Name == name {
			return toDefinition(record), nil
		}
	}
	return domain.Definition{}, fmt.Errorf("%w: %s %q", apperrors.ErrNotFound, collection, name)
}

func (s *YAMLDefinitionStore) List(_ context.Context, collection domain.Collection) ([]domain.Definition, error) {
	records, err := s.load(collection)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Definition, 0, len(records))
	for _, record := range records {
		out = append(out, toDefinition(record))
	}
	return out, nil
}

func (s *YAMLDefinitionStore) Clear(_ context.Context, collection domain.Collection) error {
	return s.write(collection, []definitionRecord{})
}

func (s *YAMLDefinitionStore) load(collection domain.Collection) ([]definitionRecord, error) {
	payload, err := os.ReadFile(s.paths[collection])
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s store: %w", collection, err)
	}
	var records []definitionRecord
	if err := yaml.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("decode %s store: %w", collection, err)
	}
	return records, nil
}

func (s *YAMLDefinitionStore) write(collection domain.Collection, records []definitionRecord) error {
	path := s.paths[collection]
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s store dir: %w", collection, err)
	}
	payload, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s store: %w", collection, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("%w: write %s store: %v", apperrors.ErrPersistence, collection, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("%w: commit %s store: %v", apperrors.ErrPersistence, collection, err)
	}
	return nil
}

func toDefinition(record definitionRecord) domain.Definition {
	return domain.Definition{
		Name:        record.Name,
		BaseMinutes: record.BaseMinutes,
		BaseXP:      record.BaseXP,
		Multiplier:  record.Multiplier,
	}
}
