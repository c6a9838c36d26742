package service

import (
	"context"

	"github.com/roach88/foodwaste/internal/report"
)

// ReportInfo describes one catalog entry.
type ReportInfo struct {
	ID      string             `json:"id"`
	Name    string             `json:"name"`
	Columns []string           `json:"columns"`
	Params  []report.ParamSpec `json:"params"`
}

// ListReportNames returns the display names of every report in catalog order.
func (s *Service) ListReportNames() []string {
	return report.Names()
}

// ReportCatalog describes every report in catalog order. It needs no store.
func ReportCatalog() []ReportInfo {
	ids := report.All()
	out := make([]ReportInfo, 0, len(ids))
	for _, id := range ids {
		def, _ := report.Lookup(id)
		params := def.Params
		if params == nil {
			params = []report.ParamSpec{}
		}
		out = append(out, ReportInfo{
			ID:      id.Slug(),
			Name:    id.String(),
			Columns: def.Columns(),
			Params:  params,
		})
	}
	return out
}

// RunReport runs the report named by name (slug, display name or number).
func (s *Service) RunReport(ctx context.Context, name string, params report.Params) (report.Table, error) {
	id, err := report.ParseReportID(name)
	if err != nil {
		return report.Table{}, err
	}

	table, err := s.runner.Run(ctx, id, params)
	if err != nil {
		s.log.Debug("report failed", "report", id.Slug(), "error", err)
		return report.Table{}, err
	}
	s.log.Debug("report run", "report", id.Slug(), "rows", table.Len(), "empty_dataset", table.EmptyDataset)
	return table, nil
}

// Breakdown sums listing quantity by the named dimension.
func (s *Service) Breakdown(ctx context.Context, dimension string) (report.Table, error) {
	d, err := report.ParseDimension(dimension)
	if err != nil {
		return report.Table{}, err
	}
	return s.runner.Breakdown(ctx, d)
}

// ProviderDirectory aggregates listings per provider. An empty city means all.
func (s *Service) ProviderDirectory(ctx context.Context, city string) (report.Table, error) {
	return s.runner.ProviderDirectory(ctx, city)
}

// ReceiverDirectory counts claims per receiver. An empty city means all.
func (s *Service) ReceiverDirectory(ctx context.Context, city string) (report.Table, error) {
	return s.runner.ReceiverDirectory(ctx, city)
}

// ContactDirectory lists provider or receiver contact details.
func (s *Service) ContactDirectory(ctx context.Context, party string) (report.Table, error) {
	p, err := report.ParseParty(party)
	if err != nil {
		return report.Table{}, err
	}
	return s.runner.ContactDirectory(ctx, p)
}

// ListingCities returns the distinct listing locations.
func (s *Service) ListingCities(ctx context.Context) ([]string, error) {
	return s.runner.ListingCities(ctx)
}

// ReceiverCities returns the distinct receiver cities.
func (s *Service) ReceiverCities(ctx context.Context) ([]string, error) {
	return s.runner.ReceiverCities(ctx)
}
