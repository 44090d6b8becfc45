package filters

import (
	"context"
	"fmt"

	"donorbase/internal/core"
	"donorbase/internal/store"
)

// Dimension names, in evaluation order.
const (
	DimensionPlace    = "place"
	DimensionSegment  = "segment"
	DimensionCampaign = "campaign"
	DimensionAmount   = "amount"
)

type dimension struct {
	name  string
	query func(ctx context.Context) ([]string, error)
}

// Resolver evaluates global filter dimensions against a FilterSource.
type Resolver struct {
	src store.FilterSource
}

func NewResolver(src store.FilterSource) *Resolver {
	return &Resolver{src: src}
}

// Resolve returns NoConstraint when no dimension is set. Otherwise each active
// dimension is queried in turn (OR within the dimension) and the results are
// intersected (AND across dimensions). Evaluation stops as soon as the running
// intersection is empty.
func (r *Resolver) Resolve(ctx context.Context, f core.GlobalFilters) (Resolution, error) {
	dims := r.active(f)
	if len(dims) == 0 {
		return NoConstraint(), nil
	}

	acc := NoConstraint()
	for _, d := range dims {
		ids, err := d.query(ctx)
		if err != nil {
			return Resolution{}, fmt.Errorf("resolve %s filter: %w", d.name, err)
		}
		acc = acc.Intersect(Matches(ids))
		if acc.Empty() {
			return acc, nil
		}
	}
	return acc, nil
}

// ActiveDimensions lists the dimensions Resolve would evaluate.
func ActiveDimensions(f core.GlobalFilters) []string {
	var out []string
	for _, d := range (&Resolver{}).active(f) {
		out = append(out, d.name)
	}
	return out
}

func (r *Resolver) active(f core.GlobalFilters) []dimension {
	var dims []dimension
	if f.HasPlace() {
		dims = append(dims, dimension{DimensionPlace, func(ctx context.Context) ([]string, error) {
			return r.src.DonorIDsByPlace(ctx, f.CountryIDs, f.CityIDs, f.NeighborhoodIDs)
		}})
	}
	if len(f.SegmentIDs) > 0 {
		dims = append(dims, dimension{DimensionSegment, func(ctx context.Context) ([]string, error) {
			return r.src.DonorIDsBySegments(ctx, f.SegmentIDs)
		}})
	}
	if len(f.CampaignIDs) > 0 {
		dims = append(dims, dimension{DimensionCampaign, func(ctx context.Context) ([]string, error) {
			return r.src.DonorIDsByCampaigns(ctx, f.CampaignIDs)
		}})
	}
	if f.HasAmount() {
		dims = append(dims, dimension{DimensionAmount, func(ctx context.Context) ([]string, error) {
			return r.src.DonorIDsByAmount(ctx, f.AmountMin, f.AmountMax)
		}})
	}
	return dims
}
