package nibrs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategoricalAge(t *testing.T) {
	tests := []struct {
		code string
		tag  string
	}{
		{AgeCodeNeonate, AgeTagNeonate},
		{AgeCodeNewborn, AgeTagFirstWeek},
		{AgeCodeBaby, AgeTagFirstYear},
		{AgeCodeUnknown, AgeTagUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			a, ok := NewCategoricalAge(tt.code)
			require.True(t, ok)
			assert.True(t, a.IsCategorical())
			assert.False(t, a.IsRange())
			assert.Equal(t, tt.tag, a.Tag)
			assert.Equal(t, tt.tag, a.String())

			_, ok = a.Average()
			assert.False(t, ok, "categorical ages have no numeric average")
		})
	}

	_, ok := NewCategoricalAge("XX")
	assert.False(t, ok)
}

func TestAgeShape(t *testing.T) {
	scalar := NewNumericAge(24)
	assert.False(t, scalar.IsRange())
	assert.False(t, scalar.IsCategorical())
	assert.Equal(t, "24", scalar.String())

	r := NewAgeRange(25, 29)
	assert.True(t, r.IsRange())
	assert.Equal(t, "25-29", r.String())

	same := NewAgeRange(25, 25)
	assert.True(t, same.IsRange())
	assert.Equal(t, "25-25", same.String())

	unknown, _ := NewCategoricalAge(AgeCodeUnknown)
	assert.True(t, unknown.IsUnknown())
}

func TestAgeAverage(t *testing.T) {
	avg, ok := NewAgeRange(22, 24).Average()
	require.True(t, ok)
	assert.Equal(t, 23, avg)

	avg, ok = NewAgeRange(22, 23).Average()
	require.True(t, ok)
	assert.Equal(t, 22, avg)

	avg, ok = NewNumericAge(40).Average()
	require.True(t, ok)
	assert.Equal(t, 40, avg)
}

func TestAgeComparisons(t *testing.T) {
	neonate, _ := NewCategoricalAge(AgeCodeNeonate)
	newborn, _ := NewCategoricalAge(AgeCodeNewborn)
	baby, _ := NewCategoricalAge(AgeCodeBaby)
	one := NewNumericAge(1)

	// Given the day conversion NN=0, NB=1, BB=7 and years*365
	assert.True(t, neonate.IsYoungerThan(newborn, false))
	assert.True(t, newborn.IsYoungerThan(baby, false))
	assert.True(t, baby.IsYoungerThan(one, false))
	assert.True(t, one.IsOlderThan(baby, false))
	assert.False(t, baby.IsOlderThan(one, false))

	// Overlapping ranges only compare in lenient mode
	a := NewAgeRange(20, 30)
	b := NewAgeRange(25, 35)
	assert.False(t, a.IsYoungerThan(b, false))
	assert.True(t, a.IsYoungerThan(b, true))
	assert.False(t, b.IsOlderThan(a, false))
	assert.True(t, b.IsOlderThan(a, true))

	// Equal scalars are neither
	assert.False(t, NewNumericAge(30).IsYoungerThan(NewNumericAge(30), true))
	assert.False(t, NewNumericAge(30).IsOlderThan(NewNumericAge(30), true))
}
