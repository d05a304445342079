package flatfile

// legalLengths lists, per segment level, the total line lengths the reader
// knows how to decode. Each length selects one field layout.
var legalLengths = map[byte][]int{
	LevelZero:           {43},
	LevelAdministrative: {87, 88},
	LevelOffense:        {63, 71},
	LevelProperty:       {307},
	LevelVictim:         {129, 141},
	LevelOffender:       {45, 46},
	LevelArrestee:       {110},
	LevelGroupB:         {66},
}

// Layout-selecting lengths.
const (
	adminCargoTheftLength   = 88
	offenseLegacyLength     = 63
	victimLeokaLength       = 141
	offenderEthnicityLength = 46
)

// LegalLengths returns the accepted line lengths for a segment level, or nil
// for an unknown level.
func LegalLengths(level byte) []int {
	l, ok := legalLengths[level]
	if !ok {
		return nil
	}
	out := make([]int, len(l))
	copy(out, l)
	return out
}

// IsTopLevel reports whether a level opens a new report.
func IsTopLevel(level byte) bool {
	return level == LevelZero || level == LevelAdministrative || level == LevelGroupB
}

// IsChildLevel reports whether a level attaches to an open Group A report.
func IsChildLevel(level byte) bool {
	return level >= LevelOffense && level <= LevelArrestee
}
