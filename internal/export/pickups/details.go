package pickups

import (
	"errors"
	"fmt"
	"strings"

	"randoexport.ai/internal/game/pickup"
)

var ErrNotImplemented = errors.New("not implemented")

// ModelStyle controls how much of the real pickup a location shows before
// collection.
type ModelStyle string

const (
	StyleAllVisible ModelStyle = "ALL_VISIBLE"
	StyleHideModel  ModelStyle = "HIDE_MODEL"
	StyleHideScan   ModelStyle = "HIDE_SCAN"
	StyleHideAll    ModelStyle = "HIDE_ALL"
)

// DataSource picks the decoy shown by the hiding styles.
type DataSource string

const (
	SourceETM      DataSource = "ETM"
	SourceRandom   DataSource = "RANDOM"
	SourceLocation DataSource = "LOCATION"
)

// Details is the patcher-facing record of one pickup location.
type Details struct {
	Index                pickup.Index                  `json:"index"`
	Name                 string                        `json:"name"`
	Description          string                        `json:"description"`
	CollectionText       []string                      `json:"collection_text"`
	ConditionalResources []pickup.ConditionalResources `json:"conditional_resources"`
	Conversion           []pickup.ResourceConversion   `json:"conversion"`
	Model                pickup.Model                  `json:"model"`
	OtherPlayer          bool                          `json:"other_player"`
	OriginalPickup       pickup.Entry                  `json:"original_pickup"`
}

// Description is the scan text of a pickup shown at ALL_VISIBLE and HIDE_MODEL.
func Description(e pickup.Entry) string {
	if e.Description != "" {
		return e.Description
	}
	if len(e.Progression) > 1 {
		names := make([]string, 0, len(e.Progression))
		for _, s := range e.ProgressionStages() {
			names = append(names, s.Name)
		}
		return "Provides the following in order: " + strings.Join(names, ", ") + "."
	}
	if e.RespectsLock() && !e.UnlocksResource() && e.HasDistinctLock() {
		return fmt.Sprintf("Requires %s to be used.", e.ResourceLock.LockedBy.LongName)
	}
	return ""
}
