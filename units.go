package uim

import "math"

// Unit is a physical or logical unit a sensor channel or precision
// value may be expressed in (spec.md §4.6).
type Unit string

const (
	UnitM         Unit = "M"
	UnitCM        Unit = "CM"
	UnitMM        Unit = "MM"
	UnitIN        Unit = "IN"
	UnitPT        Unit = "PT"
	UnitPC        Unit = "PC"
	UnitDIP       Unit = "DIP"
	UnitS         Unit = "S"
	UnitMS        Unit = "MS"
	UnitNS        Unit = "NS"
	UnitRAD       Unit = "RAD"
	UnitDEG       Unit = "DEG"
	UnitN         Unit = "N"
	UnitPERCENT   Unit = "PERCENTAGE"
	UnitLOGICAL   Unit = "LOGICAL"
)

// unitFamily groups units that can be converted between each other.
type unitFamily int

const (
	familyLength unitFamily = iota
	familyTime
	familyAngle
	familyForce
	familyDimensionless
)

// toBase is the multiplicative factor that converts one unit of Unit
// into its family's base unit (metre, second, radian, newton, or
// fraction-of-one).
var unitInfo = map[Unit]struct {
	family unitFamily
	toBase float64
}{
	UnitM:       {familyLength, 1},
	UnitCM:      {familyLength, 0.01},
	UnitMM:      {familyLength, 0.001},
	UnitIN:      {familyLength, 0.0254},
	UnitPT:      {familyLength, 0.0254 / 72},
	UnitPC:      {familyLength, 0.0254 / 6},
	UnitDIP:     {familyLength, 0.0254 / 96},
	UnitLOGICAL: {familyLength, 0.0254 / 96},
	UnitS:       {familyTime, 1},
	UnitMS:      {familyTime, 0.001},
	UnitNS:      {familyTime, 1e-9},
	UnitRAD:     {familyAngle, 1},
	UnitDEG:     {familyAngle, math.Pi / 180},
	UnitN:       {familyForce, 1},
	UnitPERCENT: {familyDimensionless, 0.01},
}

// ConvertUnit converts v from one unit to another. Both units must
// belong to the same physical family (e.g. length-to-length), else it
// returns an [InvalidArgumentError].
func ConvertUnit(v float64, from, to Unit) (float64, error) {
	fi, ok := unitInfo[from]
	if !ok {
		return 0, &InvalidArgumentError{Msg: "unknown unit: " + string(from)}
	}
	ti, ok := unitInfo[to]
	if !ok {
		return 0, &InvalidArgumentError{Msg: "unknown unit: " + string(to)}
	}
	if fi.family != ti.family {
		return 0, &InvalidArgumentError{Msg: "incompatible units: " + string(from) + " -> " + string(to)}
	}
	return v * fi.toBase / ti.toBase, nil
}
