// Package seed loads reference datasets (providers, receivers, claims and
// optionally listings and contacts) from YAML files into a store.
//
// A dataset is decoded strictly (unknown keys are rejected), checked
// against an embedded CUE schema, and imported in one transaction.
// Importing the same file twice inserts nothing the second time.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/roach88/foodwaste/internal/model"
	"github.com/roach88/foodwaste/internal/store"
)

//go:embed dataset.cue
var schemaCUE string

const op = "seed"

// Dataset is the file format. Every section is optional.
type Dataset struct {
	Providers []model.Provider    `yaml:"providers" json:"providers"`
	Receivers []model.Receiver    `yaml:"receivers" json:"receivers"`
	Claims    []model.Claim       `yaml:"claims" json:"claims"`
	Listings  []model.FoodListing `yaml:"listings" json:"listings"`
	Contacts  []model.Contact     `yaml:"contacts" json:"contacts"`
}

// Batch converts the dataset to a store import batch.
func (d Dataset) Batch() store.Batch {
	return store.Batch{
		Providers: d.Providers,
		Receivers: d.Receivers,
		Claims:    d.Claims,
		Listings:  d.Listings,
		Contacts:  d.Contacts,
	}
}

// Importer is the part of the store Apply needs.
type Importer interface {
	Import(ctx context.Context, b store.Batch) (store.ImportResult, error)
}

// LoadFile reads, decodes and validates a dataset file.
func LoadFile(path string) (Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("read dataset: %w", err)
	}
	return Load(bytes.NewReader(data), path)
}

// Load decodes and validates a dataset. name is used in error messages.
func Load(r io.Reader, name string) (Dataset, error) {
	var d Dataset
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&d); err != nil {
		if errors.Is(err, io.EOF) {
			return Dataset{}, model.NewValidationError(op, name, "dataset is empty")
		}
		return Dataset{}, model.NewValidationError(op, name, fmt.Sprintf("parse YAML: %v", err))
	}

	if err := Validate(d); err != nil {
		return Dataset{}, model.NewValidationError(op, name, err.Error())
	}
	return d, nil
}

// Validate checks d against the embedded CUE schema.
func Validate(d Dataset) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("dataset.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile dataset schema: %w", err)
	}

	value := ctx.Encode(d.withEmptySections())
	if err := value.Err(); err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Dataset")).Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("dataset does not match schema: %w", err)
	}
	return nil
}

// withEmptySections replaces nil sections, which encode as null, with
// empty lists.
func (d Dataset) withEmptySections() Dataset {
	if d.Providers == nil {
		d.Providers = []model.Provider{}
	}
	if d.Receivers == nil {
		d.Receivers = []model.Receiver{}
	}
	if d.Claims == nil {
		d.Claims = []model.Claim{}
	}
	if d.Listings == nil {
		d.Listings = []model.FoodListing{}
	}
	if d.Contacts == nil {
		d.Contacts = []model.Contact{}
	}
	return d
}

// Apply imports d into the store.
func Apply(ctx context.Context, imp Importer, d Dataset) (store.ImportResult, error) {
	return imp.Import(ctx, d.Batch())
}
