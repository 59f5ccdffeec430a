// ABOUTME: Orchestrates forecast, harvest, selection, packing and costing per request
// ABOUTME: Caches station forecasts per snapshot and fans district outlooks out with errgroup

package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/Eswari2225/DropSaviors/backend/cache"
	"github.com/Eswari2225/DropSaviors/backend/dataset"
	"github.com/Eswari2225/DropSaviors/backend/metrics"
	"github.com/Eswari2225/DropSaviors/backend/models"
	"github.com/Eswari2225/DropSaviors/backend/ratecard"
)

// Fraction of the harvest each structure kind must hold
const (
	storageCapacityFraction  = 0.9
	rechargeCapacityFraction = 0.8
)

type AssessorOptions struct {
	StartYear   int
	EndYear     int
	Concurrency int
	Metrics     *metrics.Recorder
}

// Assessor runs the estimation pipeline against the current dataset snapshot.
type Assessor struct {
	store     *dataset.Store
	card      *ratecard.RateCard
	volume    *VolumeEstimator
	costs     *CostEstimator
	forecasts *cache.Cache[models.ForecastSeries]
	group     singleflight.Group
	opts      AssessorOptions
	now       func() time.Time
}

func NewAssessor(store *dataset.Store, card *ratecard.RateCard, forecasts *cache.Cache[models.ForecastSeries], opts AssessorOptions) *Assessor {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Assessor{
		store:     store,
		card:      card,
		volume:    NewVolumeEstimator(card),
		costs:     NewCostEstimator(card),
		forecasts: forecasts,
		opts:      opts,
		now:       time.Now,
	}
}

func (a *Assessor) Window() (int, int) {
	return a.opts.StartYear, a.opts.EndYear
}

// CachedForecasts reports how many station forecasts are cached.
func (a *Assessor) CachedForecasts() int {
	return a.forecasts.Len()
}

func requireLocation(district, station string) (string, string, error) {
	district, station = NormalizeLocation(district), NormalizeLocation(station)
	if district == "" || station == "" {
		return "", "", models.ErrMissingLocation
	}
	if err := ValidateLocationName("district", district); err != nil {
		return "", "", &models.ContractError{Field: "district", Reason: err.Error()}
	}
	if err := ValidateLocationName("station", station); err != nil {
		return "", "", &models.ContractError{Field: "station", Reason: err.Error()}
	}
	return district, station, nil
}

// StationForecast returns a station's yearly history and its forecast over
// the configured window. Forecasts are cached per snapshot, and concurrent
// misses for the same station share one computation.
func (a *Assessor) StationForecast(ctx context.Context, district, station string) (models.ForecastResponse, error) {
	district, station, err := requireLocation(district, station)
	if err != nil {
		return models.ForecastResponse{}, err
	}

	snap := a.store.Current()
	dName, sName, ok := snap.Lookup(district, station)
	if !ok {
		return models.ForecastResponse{}, fmt.Errorf("%w: %s / %s",
			models.ErrStationNotFound, sanitizeForLog(district), sanitizeForLog(station))
	}
	history := snap.YearlyAverages(dName, sName)

	series, err := a.cachedForecast(ctx, snap, dName, sName, history)
	if err != nil {
		return models.ForecastResponse{}, err
	}

	resp := models.ForecastResponse{
		District: dName,
		Station:  sName,
		History:  history,
		Series:   series,
	}
	resp.PeakYear, resp.PeakRainfallMM, _ = series.Peak()
	return resp, nil
}

func (a *Assessor) cachedForecast(ctx context.Context, snap *dataset.Snapshot, district, station string, history []models.YearlyAverage) (models.ForecastSeries, error) {
	key := fmt.Sprintf("forecast:%s:%s:%d-%d:%d",
		strings.ToLower(district), strings.ToLower(station),
		a.opts.StartYear, a.opts.EndYear, snap.LoadedAt().UnixNano())

	if series, ok := a.forecasts.Get(key); ok {
		a.opts.Metrics.ForecastLookup("hit")
		return series, nil
	}

	ch := a.group.DoChan(key, func() (interface{}, error) {
		series, err := Forecast(history, a.opts.StartYear, a.opts.EndYear)
		if err != nil {
			return nil, err
		}
		a.forecasts.Set(key, series)
		return series, nil
	})

	select {
	case <-ctx.Done():
		return models.ForecastSeries{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return models.ForecastSeries{}, res.Err
		}
		if res.Shared {
			a.opts.Metrics.ForecastLookup("shared")
		} else {
			a.opts.Metrics.ForecastLookup("miss")
		}
		return res.Val.(models.ForecastSeries), nil
	}
}

// Assess estimates the harvest for one rooftop and recommends a structure.
// The design rainfall is the peak year of the station forecast.
func (a *Assessor) Assess(ctx context.Context, req models.AssessmentRequest) (models.Assessment, error) {
	forecast, err := a.StationForecast(ctx, req.District, req.Station)
	if err != nil {
		return models.Assessment{}, err
	}

	roofArea := nonNegative(req.RoofAreaM2)
	harvested := a.volume.HarvestableLiters(roofArea, forecast.PeakRainfallMM, req.RoofType)
	rec := SelectStructure(harvested, req.HasOpenSpace)

	openArea := 0.0
	if req.HasOpenSpace {
		openArea = nonNegative(req.OpenAreaM2)
	}

	result := models.Assessment{
		ID:                uuid.NewString(),
		District:          forecast.District,
		Station:           forecast.Station,
		RoofType:          strings.TrimSpace(req.RoofType),
		RoofAreaM2:        roofArea,
		OpenAreaM2:        openArea,
		RainfallSeries:    forecast.Series,
		PeakYear:          forecast.PeakYear,
		PeakRainfallMM:    forecast.PeakRainfallMM,
		RunoffCoefficient: a.volume.RunoffCoefficient(req.RoofType),
		HarvestedLiters:   roundLiters(harvested),
		Recommendation:    rec,
		CreatedAt:         a.now().UTC(),
	}

	a.opts.Metrics.AssessmentCompleted(string(rec.StructureType), string(rec.Feasibility))
	slog.Info("Assessment completed",
		"id", result.ID,
		"district", result.District,
		"station", result.Station,
		"harvested_liters", result.HarvestedLiters,
		"structure", rec.StructureType,
		"feasibility", rec.Feasibility,
	)
	return result, nil
}

// DesignSystem packs a structure against the matching catalogue and costs it.
// Storage tanks hold 90% of the harvest; recharge structures 80%.
func (a *Assessor) DesignSystem(req models.SystemDesignRequest) (models.SystemDesign, error) {
	systemType := strings.TrimSpace(req.SystemType)
	if systemType == "" {
		return models.SystemDesign{}, models.ErrMissingSystemType
	}
	harvested := nonNegative(req.HarvestedLiters)

	var geom models.Geometry
	var custom *models.GeometryResult
	if len(req.Dimensions) > 0 {
		geom = models.ParseGeometry(req.Shape, req.Dimensions)
		result := VolumeFromShape(geom)
		custom = &result
	}

	design := models.SystemDesign{SystemType: systemType, CustomVolume: custom}

	var required float64
	var catalogue []models.ComponentOption
	if models.IsStorage(systemType) {
		design.Purpose = models.PurposeStorage
		required = harvested * storageCapacityFraction
		catalogue = a.card.Catalogues.Tank
	} else {
		design.Purpose = models.PurposeRecharge
		required = harvested * rechargeCapacityFraction
		catalogue = a.card.Catalogues.Recharge
	}

	decomposition, err := GreedyFill(required, catalogue)
	if err != nil {
		return models.SystemDesign{}, fmt.Errorf("packing %s: %w", sanitizeForLog(systemType), err)
	}

	if design.Purpose == models.PurposeStorage {
		design.Cost = a.costs.TankCost(decomposition.Components, models.ParseTankMaterial(req.Material), geom)
	} else {
		design.Cost = a.costs.RechargeCost(decomposition.Components, req.IsLined(), geom)
	}
	design.RequiredCapacityLiters = roundLiters(required)
	design.Components = decomposition.Components
	design.RemainderLiters = roundLiters(decomposition.RemainderLiters)

	a.opts.Metrics.SystemDesigned(string(design.Purpose))
	slog.Debug("System designed",
		"system_type", sanitizeForLog(systemType),
		"required_liters", design.RequiredCapacityLiters,
		"units", decomposition.Units(),
		"total", design.Cost.Total(),
	)
	return design, nil
}

// DistrictOutlook forecasts every station in a district with bounded
// concurrency. Stations are returned in name order.
func (a *Assessor) DistrictOutlook(ctx context.Context, district string) (models.DistrictOutlook, error) {
	district = NormalizeLocation(district)
	if district == "" {
		return models.DistrictOutlook{}, &models.ContractError{Field: "district", Reason: "is required", Err: models.ErrMissingLocation}
	}
	if err := ValidateLocationName("district", district); err != nil {
		return models.DistrictOutlook{}, &models.ContractError{Field: "district", Reason: err.Error()}
	}

	stations := a.store.Current().Stations(district)
	if len(stations) == 0 {
		return models.DistrictOutlook{}, fmt.Errorf("%w: no stations in district %s",
			models.ErrStationNotFound, sanitizeForLog(district))
	}

	outlooks := make([]models.StationOutlook, len(stations))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.Concurrency)

	var canonical string
	for i, station := range stations {
		g.Go(func() error {
			fc, err := a.StationForecast(gctx, district, station)
			if err != nil {
				return fmt.Errorf("station %s: %w", station, err)
			}
			if i == 0 {
				canonical = fc.District
			}
			first, _ := fc.Series.Value(fc.Series.StartYear)
			last, _ := fc.Series.Value(fc.Series.EndYear())
			outlooks[i] = models.StationOutlook{
				Station:        fc.Station,
				PeakYear:       fc.PeakYear,
				PeakRainfallMM: fc.PeakRainfallMM,
				FirstValue:     first,
				LastValue:      last,
				Trend:          TrendOf(fc.Series),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.DistrictOutlook{}, err
	}

	return models.DistrictOutlook{
		District:  canonical,
		StartYear: a.opts.StartYear,
		EndYear:   a.opts.EndYear,
		Stations:  outlooks,
	}, nil
}
