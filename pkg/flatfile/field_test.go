package flatfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/nibrs-flatfile/pkg/nibrs"
)

// decodeAge runs the age decoder over raw placed at columns 5-8 of a segment
// with the given level.
func decodeAge(level byte, raw string) (nibrs.Parsed[nibrs.Age], []nibrs.Error) {
	seg := &Segment{Data: "0008" + raw, Level: level}
	r := newFieldReader(seg)
	got := r.age(5, nibrs.DEVictimAge)
	return got, r.errs
}

func TestAgeDecoding(t *testing.T) {
	t.Run("range", func(t *testing.T) {
		got, errs := decodeAge(LevelVictim, "2529")
		require.Empty(t, errs)
		a, ok := got.Get()
		require.True(t, ok)
		assert.Equal(t, nibrs.NewAgeRange(25, 29), a)
	})

	t.Run("range with equal ends stays a range", func(t *testing.T) {
		got, errs := decodeAge(LevelVictim, "2525")
		require.Empty(t, errs)
		a, ok := got.Get()
		require.True(t, ok)
		assert.True(t, a.IsRange())
		assert.Equal(t, 25, a.Min)
		assert.Equal(t, 25, a.Max)
	})

	t.Run("scalar", func(t *testing.T) {
		got, errs := decodeAge(LevelVictim, "24  ")
		require.Empty(t, errs)
		assert.Equal(t, nibrs.NewNumericAge(24), got.Value)
		assert.False(t, got.Value.IsRange())
	})

	t.Run("first-week tag is never a number", func(t *testing.T) {
		got, errs := decodeAge(LevelVictim, "NB  ")
		require.Empty(t, errs)
		assert.Equal(t, nibrs.AgeTagFirstWeek, got.Value.Tag)
		assert.Zero(t, got.Value.Min)
		assert.Zero(t, got.Value.Max)
	})

	t.Run("unknown", func(t *testing.T) {
		got, errs := decodeAge(LevelOffender, "00  ")
		require.Empty(t, errs)
		assert.True(t, got.Value.IsUnknown())
	})

	t.Run("blank", func(t *testing.T) {
		got, errs := decodeAge(LevelVictim, "    ")
		assert.Empty(t, errs)
		assert.True(t, got.Missing)
	})
}

func TestAgeDecodingErrors(t *testing.T) {
	tests := []struct {
		name  string
		level byte
		raw   string
		code  nibrs.ErrorCode
	}{
		{"non-numeric victim", LevelVictim, "AA  ", "404"},
		{"three characters", LevelVictim, "123 ", "409"},
		{"half numeric range", LevelVictim, "24BB", "409"},
		{"range from zero", LevelVictim, "0020", "422"},
		{"reversed range", LevelVictim, "3020", "410"},
		{"newborn on offender", LevelOffender, "NB  ", "556"},
		{"non-numeric arrestee", LevelArrestee, "X1  ", "664"},
		{"baby on group B", LevelGroupB, "BB  ", "757"},
		{"reversed offender range", LevelOffender, "4020", "510"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errs := decodeAge(tt.level, tt.raw)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.code, errs[0].Code)
			assert.Equal(t, tt.raw, errs[0].Value)
			assert.True(t, got.Invalid)
		})
	}
}

func TestIntegerField(t *testing.T) {
	seg := &Segment{Data: "12AB  ", Level: LevelAdministrative}
	r := newFieldReader(seg)

	ok := r.integer(1, 2, "101", "X")
	bad := r.integer(3, 4, "101", "X")
	blank := r.integer(5, 6, "101", "X")

	assert.Equal(t, nibrs.ValueOf(12), ok)
	assert.True(t, bad.Invalid)
	assert.True(t, blank.Missing)
	require.Len(t, r.errs, 1)
	assert.Equal(t, "AB", r.errs[0].Value)
}

func TestDateField(t *testing.T) {
	seg := &Segment{Data: "2023051420231399", Level: LevelAdministrative}
	r := newFieldReader(seg)

	good := r.date(1, 8, nibrs.CodeInvalidDate, nibrs.DEIncidentDate)
	bad := r.date(9, 16, nibrs.CodeInvalidDate, nibrs.DEIncidentDate)

	d, ok := good.Get()
	require.True(t, ok)
	assert.Equal(t, 2023, d.Year())
	assert.Equal(t, 14, d.Day())
	assert.True(t, bad.Invalid)
	require.Len(t, r.errs, 1)
	assert.Equal(t, nibrs.DEIncidentDate, r.errs[0].DataElement)
}

func TestCodesStopAtFirstBlank(t *testing.T) {
	seg := &Segment{Data: "AB  CD"}
	r := newFieldReader(seg)
	slots := nibrs.NewSlots[string](3)

	r.codes(&slots, 1, 2, 2)

	assert.Equal(t, []string{"AB"}, slots.All())
}
