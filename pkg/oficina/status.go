package oficina

import (
	"fmt"

	"github.com/ismaeltironi-cloud/locadora-pro/entity"
)

// Variant selects the status vocabulary of the deployed Oficina Pro
// instance. Two incompatible vocabularies exist in the wild; the
// canonical vocabulary inside this application is always the local
// vehicle one, and this mapping lives only at the boundary.
type Variant string

const (
	// VariantFourState: aguardando_entrada / check_in / check_out / cancelado.
	VariantFourState Variant = "four_state"
	// VariantThreeState: aberta / finalizada / cancelado.
	VariantThreeState Variant = "three_state"
)

var toExternal = map[Variant]map[entity.VehicleStatus]string{
	VariantFourState: {
		entity.StatusAwaitingDropoff: "aguardando_entrada",
		entity.StatusCheckedIn:       "check_in",
		entity.StatusCheckedOut:      "check_out",
		entity.StatusCancelled:       "cancelado",
	},
	VariantThreeState: {
		// The three-state vocabulary collapses both pre-checkout states
		// into a single open state.
		entity.StatusAwaitingDropoff: "aberta",
		entity.StatusCheckedIn:       "aberta",
		entity.StatusCheckedOut:      "finalizada",
		entity.StatusCancelled:       "cancelado",
	},
}

var toCanonical = map[Variant]map[string]entity.VehicleStatus{
	VariantFourState: {
		"aguardando_entrada": entity.StatusAwaitingDropoff,
		"check_in":           entity.StatusCheckedIn,
		"check_out":          entity.StatusCheckedOut,
		"cancelado":          entity.StatusCancelled,
	},
	VariantThreeState: {
		"aberta":     entity.StatusCheckedIn,
		"finalizada": entity.StatusCheckedOut,
		"cancelado":  entity.StatusCancelled,
	},
}

func (v Variant) Valid() bool {
	_, ok := toExternal[v]
	return ok
}

// ExternalStatus translates a canonical status into the vocabulary of
// the deployed variant.
func (v Variant) ExternalStatus(s entity.VehicleStatus) (string, error) {
	ext, ok := toExternal[v][s]
	if !ok {
		return "", fmt.Errorf("no external status for %q in variant %q", s, v)
	}
	return ext, nil
}

// CanonicalStatus translates an external status back. Unknown values
// come through unchanged alongside ok=false so callers can surface the
// raw value instead of guessing.
func (v Variant) CanonicalStatus(ext string) (entity.VehicleStatus, bool) {
	s, ok := toCanonical[v][ext]
	return s, ok
}
