package repository

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/cookoff/internal/domain/model"
)

// Dataset is the YAML layout accepted by LoadDataset.
//
//	reference:
//	  nationalities: [{id: 1, name: Greek}]
//	  cooks: [{id: 1, first_name: Ada, last_name: Byron, ranking: chef}]
//	  recipes: [{id: 1, nationality_id: 1, name: Moussaka}]
//	  nationality_cooks: [{nationality_id: 1, cook_id: 1}]
//	  recipe_cooks: []
//	history:
//	  episodes: []
type Dataset struct {
	Reference model.Reference `koanf:"reference"`
	History   model.History   `koanf:"history"`
}

// LoadDataset reads a YAML dataset file. Cook rankings are parsed from their
// titles.
func LoadDataset(path string) (Dataset, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return Dataset{}, fmt.Errorf("%w: %s: %w", ErrLoadDataset, path, err)
	}
	var ds Dataset
	if err := k.UnmarshalWithConf("", &ds, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Dataset{}, fmt.Errorf("%w: %s: %w", ErrLoadDataset, path, err)
	}
	return ds, nil
}

// NewMemoryStoreFromFile seeds a MemoryStore from a YAML dataset.
func NewMemoryStoreFromFile(path string) (*MemoryStore, error) {
	ds, err := LoadDataset(path)
	if err != nil {
		return nil, err
	}
	return NewMemoryStore(WithReference(ds.Reference), WithHistory(ds.History)), nil
}
