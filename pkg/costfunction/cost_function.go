package costfunction

import (
	"strings"

	"github.com/gabrielsantosba/caminho/pkg"
	"github.com/gabrielsantosba/caminho/pkg/util"
)

// EdgeAttributes is what the speed rules decide from.
type EdgeAttributes interface {
	GetRawMaxSpeed() string
	GetRoadClass() string
	GetLength() float64
}

// CostFunction derives an effective speed and a travel-time weight for an edge.
type CostFunction interface {
	EffectiveSpeed(e EdgeAttributes) float64 // km/h, always > 0
	GetWeight(e EdgeAttributes) float64      // seconds
}

// SpeedRule resolves an edge to an effective speed in km/h, or (0, false)
// when the rule does not apply.
type SpeedRule struct {
	Name  string
	Apply func(e EdgeAttributes) (float64, bool)
}

// TimeFunction weights edges by expected travel time. Speed resolution is an
// ordered rule table so the fallback policy is auditable in isolation:
// explicit maxspeed tag, then highway-class default, then the global default.
type TimeFunction struct {
	rules []SpeedRule
}

func NewTimeCostFunction() *TimeFunction {
	return &TimeFunction{
		rules: []SpeedRule{
			{Name: "explicit-maxspeed", Apply: explicitMaxSpeed},
			{Name: "road-class-default", Apply: roadClassSpeed},
			{Name: "global-default", Apply: globalDefaultSpeed},
		},
	}
}

// Rules exposes the rule table in evaluation order.
func (tf *TimeFunction) Rules() []SpeedRule {
	return tf.rules
}

// EffectiveSpeed returns the first applicable rule's speed. The last rule is
// total, so the result is always strictly positive.
func (tf *TimeFunction) EffectiveSpeed(e EdgeAttributes) float64 {
	for _, rule := range tf.rules {
		if speed, ok := rule.Apply(e); ok && speed > 0 {
			return speed
		}
	}
	return pkg.GLOBAL_DEFAULT_SPEED
}

// GetWeight returns the edge travel time in seconds.
func (tf *TimeFunction) GetWeight(e EdgeAttributes) float64 {
	speed := tf.EffectiveSpeed(e)
	return e.GetLength() / (speed * pkg.KMH_TO_MS)
}

// explicitMaxSpeed parses the verbatim OSM maxspeed tag, normalizing
// mph and knots to km/h. Unitless values are treated as km/h per the OSM wiki.
func explicitMaxSpeed(e EdgeAttributes) (float64, bool) {
	raw := strings.TrimSpace(e.GetRawMaxSpeed())
	if raw == "" {
		return 0, false
	}

	switch {
	case strings.Contains(raw, "mph"):
		speed, err := util.StringToFloat64(strings.TrimSpace(strings.Replace(raw, "mph", "", -1)))
		if err != nil {
			return 0, false
		}
		return speed * pkg.MILES_TO_KM, true
	case strings.Contains(raw, "knots"):
		speed, err := util.StringToFloat64(strings.TrimSpace(strings.Replace(raw, "knots", "", -1)))
		if err != nil {
			return 0, false
		}
		return speed * pkg.KNOTS_TO_KMH, true
	case strings.Contains(raw, "km/h"):
		raw = strings.TrimSpace(strings.Replace(raw, "km/h", "", -1))
		fallthrough
	default:
		speed, err := util.StringToFloat64(raw)
		if err != nil {
			return 0, false
		}
		return speed, true
	}
}

// roadClassSpeed imputes a speed from the highway classification.
// https://wiki.openstreetmap.org/wiki/OSM_tags_for_routing/Telenav
func roadClassSpeed(e EdgeAttributes) (float64, bool) {
	switch e.GetRoadClass() {
	case "motorway":
		return 100, true
	case "trunk":
		return 70, true
	case "primary":
		return 65, true
	case "secondary":
		return 60, true
	case "tertiary":
		return 50, true
	case "unclassified":
		return 40, true
	case "residential":
		return 30, true
	case "service":
		return 20, true
	case "motorway_link":
		return 70, true
	case "trunk_link":
		return 65, true
	case "primary_link":
		return 60, true
	case "secondary_link":
		return 50, true
	case "tertiary_link":
		return 40, true
	case "living_street":
		return 5, true
	case "road":
		return 20, true
	case "track":
		return 15, true
	case "motorroad":
		return 90, true
	default:
		return 0, false
	}
}

func globalDefaultSpeed(e EdgeAttributes) (float64, bool) {
	return pkg.GLOBAL_DEFAULT_SPEED, true
}
