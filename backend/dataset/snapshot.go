// ABOUTME: Immutable, indexed view of the rainfall observations being served
// ABOUTME: Lookups are case-insensitive; yearly averages are derived on demand

package dataset

import (
	"sort"
	"strings"
	"time"

	"github.com/Eswari2225/DropSaviors/backend/models"
)

type stationData struct {
	name         string
	observations []models.Observation
}

type districtData struct {
	name     string
	stations map[string]*stationData
}

// Snapshot is never mutated after construction and is safe to share
// between goroutines.
type Snapshot struct {
	source    string
	loadedAt  time.Time
	districts map[string]*districtData
	count     int
	stations  int
}

func key(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// NewSnapshot indexes observations by district and station. Rows without a
// district or station are skipped. The input slice is not retained.
func NewSnapshot(source string, observations []models.Observation, loadedAt time.Time) *Snapshot {
	s := &Snapshot{
		source:    source,
		loadedAt:  loadedAt,
		districts: make(map[string]*districtData),
	}

	for _, obs := range observations {
		dk, sk := key(obs.District), key(obs.Station)
		if dk == "" || sk == "" {
			continue
		}
		d, ok := s.districts[dk]
		if !ok {
			d = &districtData{name: strings.TrimSpace(obs.District), stations: make(map[string]*stationData)}
			s.districts[dk] = d
		}
		st, ok := d.stations[sk]
		if !ok {
			st = &stationData{name: strings.TrimSpace(obs.Station)}
			d.stations[sk] = st
			s.stations++
		}
		obs.District, obs.Station = d.name, st.name
		st.observations = append(st.observations, obs)
		s.count++
	}

	for _, d := range s.districts {
		for _, st := range d.stations {
			sort.SliceStable(st.observations, func(i, j int) bool {
				return st.observations[i].Year < st.observations[j].Year
			})
		}
	}
	return s
}

func (s *Snapshot) Source() string      { return s.source }
func (s *Snapshot) LoadedAt() time.Time { return s.loadedAt }
func (s *Snapshot) Len() int            { return s.count }

// Districts returns district names, sorted.
func (s *Snapshot) Districts() []string {
	names := make([]string, 0, len(s.districts))
	for _, d := range s.districts {
		names = append(names, d.name)
	}
	sort.Strings(names)
	return names
}

// Stations returns a district's station names, sorted, or nil for an unknown district.
func (s *Snapshot) Stations(district string) []string {
	d, ok := s.districts[key(district)]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(d.stations))
	for _, st := range d.stations {
		names = append(names, st.name)
	}
	sort.Strings(names)
	return names
}

// StationMap returns every district's sorted stations.
func (s *Snapshot) StationMap() map[string][]string {
	out := make(map[string][]string, len(s.districts))
	for _, d := range s.districts {
		out[d.name] = s.Stations(d.name)
	}
	return out
}

func (s *Snapshot) station(district, station string) (*stationData, bool) {
	d, ok := s.districts[key(district)]
	if !ok {
		return nil, false
	}
	st, ok := d.stations[key(station)]
	return st, ok
}

// Lookup resolves a district and station to their dataset spelling.
func (s *Snapshot) Lookup(district, station string) (string, string, bool) {
	d, ok := s.districts[key(district)]
	if !ok {
		return "", "", false
	}
	st, ok := d.stations[key(station)]
	if !ok {
		return "", "", false
	}
	return d.name, st.name, true
}

// Observations returns a copy of one station's rows in year order.
func (s *Snapshot) Observations(district, station string) []models.Observation {
	st, ok := s.station(district, station)
	if !ok {
		return nil
	}
	return append([]models.Observation(nil), st.observations...)
}

// Filter returns rows matching the optional district and station filters.
// An empty filter matches everything.
func (s *Snapshot) Filter(district, station string) []models.Observation {
	out := []models.Observation{}
	for _, dName := range s.Districts() {
		if district != "" && key(dName) != key(district) {
			continue
		}
		for _, sName := range s.Stations(dName) {
			if station != "" && key(sName) != key(station) {
				continue
			}
			out = append(out, s.Observations(dName, sName)...)
		}
	}
	return out
}

// YearlyAverages groups one station's rows by year and averages them,
// returning years in ascending order.
func (s *Snapshot) YearlyAverages(district, station string) []models.YearlyAverage {
	st, ok := s.station(district, station)
	if !ok {
		return nil
	}
	return YearlyAverages(st.observations)
}

// YearlyAverages averages observations per year, ascending by year.
func YearlyAverages(observations []models.Observation) []models.YearlyAverage {
	type acc struct {
		sum float64
		n   int
	}
	byYear := make(map[int]*acc)
	for _, obs := range observations {
		a, ok := byYear[obs.Year]
		if !ok {
			a = &acc{}
			byYear[obs.Year] = a
		}
		a.sum += obs.Value
		a.n++
	}

	out := make([]models.YearlyAverage, 0, len(byYear))
	for year, a := range byYear {
		out = append(out, models.YearlyAverage{Year: year, MeanValue: a.sum / float64(a.n)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

func (s *Snapshot) Status() models.DatasetStatus {
	return models.DatasetStatus{
		Source:       s.source,
		Districts:    len(s.districts),
		Stations:     s.stations,
		Observations: s.count,
		LoadedAt:     s.loadedAt,
	}
}
