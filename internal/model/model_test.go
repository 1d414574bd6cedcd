package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTenderValid(t *testing.T) {
	assert.True(t, Tender{ValueRs: 100, AwardYear: 2020}.Valid())
	assert.False(t, Tender{ValueRs: 0, AwardYear: 2020}.Valid())
	assert.False(t, Tender{ValueRs: -5, AwardYear: 2020}.Valid())
	assert.False(t, Tender{ValueRs: 100, AwardYear: 1997}.Valid())
}

func TestTenderCostPerKm(t *testing.T) {
	assert.Equal(t, 50.0, Tender{AdjustedRs: 100, LengthKm: 2}.CostPerKm())
	assert.Zero(t, Tender{AdjustedRs: 100}.CostPerKm())
}

func TestFilterMatches(t *testing.T) {
	record := Tender{District: "Howrah", Department: "PWD"}

	assert.True(t, Filter{}.Matches(record))
	assert.True(t, Filter{District: "All", Department: "All"}.Matches(record))
	assert.True(t, Filter{District: "Howrah"}.Matches(record))
	assert.False(t, Filter{District: "Nadia"}.Matches(record))
	assert.False(t, Filter{District: "Howrah", Department: "Irrigation"}.Matches(record))
}

func TestFilterApply(t *testing.T) {
	records := []Tender{
		{ID: "A", District: "Howrah"},
		{ID: "B", District: "Nadia"},
		{ID: "C", District: "Howrah"},
	}
	got := Filter{District: "Howrah"}.Apply(records)
	assert.Len(t, got, 2)
	assert.Len(t, records, 3)
}

func TestCountByKind(t *testing.T) {
	counts := CountByKind([]Observation{
		{Kind: KindPriceOutlier},
		{Kind: KindPriceOutlier},
		{Kind: KindYearOverYear},
	})
	assert.Equal(t, 2, counts[KindPriceOutlier])
	assert.Equal(t, 1, counts[KindYearOverYear])
	assert.Zero(t, counts[KindLowCompetition])
}
