package hints

import (
	"errors"
	"fmt"

	"randoexport.ai/internal/game/pickup"
	"randoexport.ai/internal/game/worldgraph"
)

type HintType string

const (
	TypeJoke            HintType = "JOKE"
	TypeLocation        HintType = "LOCATION"
	TypeRedTempleKeySet HintType = "RED_TEMPLE_KEY_SET"
)

type LocationPrecision string

const (
	LocationDetailed          LocationPrecision = "DETAILED"
	LocationRegionOnly        LocationPrecision = "REGION_ONLY"
	LocationKeybearer         LocationPrecision = "KEYBEARER"
	LocationGuardian          LocationPrecision = "GUARDIAN"
	LocationLightSuitLocation LocationPrecision = "LIGHT_SUIT_LOCATION"
	LocationRelativeToArea    LocationPrecision = "RELATIVE_TO_AREA"
	LocationRelativeToIndex   LocationPrecision = "RELATIVE_TO_INDEX"
	LocationFeatural          LocationPrecision = "FEATURAL"
)

type ItemPrecision string

const (
	ItemDetailed        ItemPrecision = "DETAILED"
	ItemPreciseCategory ItemPrecision = "PRECISE_CATEGORY"
	ItemGeneralCategory ItemPrecision = "GENERAL_CATEGORY"
	ItemBroadCategory   ItemPrecision = "BROAD_CATEGORY"
	ItemNothing         ItemPrecision = "NOTHING"
)

type RelativeAreaName string

const (
	RelativeAreaByName    RelativeAreaName = "NAME"
	RelativeAreaByFeature RelativeAreaName = "FEATURE"
)

// RelativeData is either *RelativeDataArea or *RelativeDataItem.
type RelativeData interface {
	// Offset is nil when the distance is an upper bound.
	Offset() *int
	isRelativeData()
}

type RelativeDataArea struct {
	DistanceOffset *int              `json:"distance_offset,omitempty"`
	Area           worldgraph.AreaID `json:"area"`
	Precision      RelativeAreaName  `json:"precision"`
}

func (r *RelativeDataArea) Offset() *int  { return r.DistanceOffset }
func (*RelativeDataArea) isRelativeData() {}

type RelativeDataItem struct {
	DistanceOffset *int          `json:"distance_offset,omitempty"`
	OtherIndex     pickup.Index  `json:"other_index"`
	Precision      ItemPrecision `json:"precision"`
}

func (r *RelativeDataItem) Offset() *int  { return r.DistanceOffset }
func (*RelativeDataItem) isRelativeData() {}

type PrecisionPair struct {
	Location     LocationPrecision `json:"location"`
	Item         ItemPrecision     `json:"item"`
	IncludeOwner bool              `json:"include_owner,omitempty"`
	Relative     RelativeData      `json:"-"`
}

type Hint struct {
	Type      HintType       `json:"hint_type"`
	Precision *PrecisionPair `json:"precision,omitempty"`
	Target    *pickup.Index  `json:"target,omitempty"`
	// DarkTemple names the temple of a RED_TEMPLE_KEY_SET hint.
	DarkTemple string `json:"dark_temple,omitempty"`
}

var ErrInvalidHint = errors.New("invalid hint")

// Validate checks that only joke hints lack a target and that the fields each
// kind reads are present.
func (h Hint) Validate() error {
	if (h.Target == nil) != (h.Type == TypeJoke) {
		return fmt.Errorf("%w: %s hint target presence", ErrInvalidHint, h.Type)
	}
	switch h.Type {
	case TypeJoke:
	case TypeLocation:
		if h.Precision == nil {
			return fmt.Errorf("%w: location hint without precision", ErrInvalidHint)
		}
		switch h.Precision.Location {
		case LocationRelativeToArea:
			if _, ok := h.Precision.Relative.(*RelativeDataArea); !ok {
				return fmt.Errorf("%w: relative-to-area hint without area data", ErrInvalidHint)
			}
		case LocationRelativeToIndex:
			if _, ok := h.Precision.Relative.(*RelativeDataItem); !ok {
				return fmt.Errorf("%w: relative-to-index hint without item data", ErrInvalidHint)
			}
		}
	case TypeRedTempleKeySet:
		if h.DarkTemple == "" {
			return fmt.Errorf("%w: temple key hint without temple", ErrInvalidHint)
		}
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidHint, h.Type)
	}
	return nil
}

func Offset(n int) *int { return &n }
