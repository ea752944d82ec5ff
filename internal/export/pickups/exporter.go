package pickups

import (
	"fmt"

	"randoexport.ai/internal/game/patches"
	"randoexport.ai/internal/game/pickup"
	"randoexport.ai/internal/game/resources"
)

// Exporter turns one placed target into its exported record. name,
// description and model are what the location shows before collection.
type Exporter interface {
	CreateDetails(index pickup.Index, target pickup.Target, visual pickup.Entry, style ModelStyle,
		name, description string, model pickup.Model) (Details, error)
}

// SoloExporter resolves the real pickup's effects.
type SoloExporter struct {
	memo map[string]string
}

// NewSoloExporter takes the per-stage HUD text overrides.
func NewSoloExporter(memo map[string]string) *SoloExporter {
	return &SoloExporter{memo: memo}
}

func (s *SoloExporter) CreateDetails(index pickup.Index, target pickup.Target, visual pickup.Entry, style ModelStyle,
	name, description string, model pickup.Model) (Details, error) {
	stages, err := pickup.ConditionalResourcesFor(target.Pickup)
	if err != nil {
		return Details{}, err
	}
	hud, err := s.collectionText(stages, visual, style)
	if err != nil {
		return Details{}, err
	}
	return Details{
		Index:                index,
		Name:                 name,
		Description:          description,
		CollectionText:       hud,
		ConditionalResources: stages,
		Conversion:           pickup.ConversionsFor(target.Pickup),
		Model:                model,
		OtherPlayer:          false,
		OriginalPickup:       target.Pickup,
	}, nil
}

func (s *SoloExporter) hudText(stage pickup.ConditionalResources) string {
	if t, ok := s.memo[stage.Name]; ok {
		return t
	}
	return stage.Name + " acquired!"
}

func (s *SoloExporter) allHudText(stages []pickup.ConditionalResources) []string {
	out := make([]string, 0, len(stages))
	for _, st := range stages {
		out = append(out, s.hudText(st))
	}
	return out
}

// collectionText shows the decoy's text under HIDE_ALL, keeping one entry per
// real stage.
func (s *SoloExporter) collectionText(real []pickup.ConditionalResources, visual pickup.Entry, style ModelStyle) ([]string, error) {
	if style != StyleHideAll {
		return s.allHudText(real), nil
	}
	visualStages, err := pickup.ConditionalResourcesFor(visual)
	if err != nil {
		return nil, err
	}
	hud := s.allHudText(visualStages)
	if len(hud) == len(real) {
		return hud, nil
	}
	out := make([]string, len(real))
	for i := range out {
		out[i] = hud[0]
	}
	return out, nil
}

// MultiExporter wraps a SoloExporter for multiworld sessions.
type MultiExporter struct {
	solo           Exporter
	multiworldItem resources.ResourceInfo
	players        patches.PlayersConfiguration
}

func NewMultiExporter(solo Exporter, multiworldItem resources.ResourceInfo, players patches.PlayersConfiguration) *MultiExporter {
	return &MultiExporter{solo: solo, multiworldItem: multiworldItem, players: players}
}

func (m *MultiExporter) CreateDetails(index pickup.Index, target pickup.Target, visual pickup.Entry, style ModelStyle,
	name, description string, model pickup.Model) (Details, error) {
	if target.Player == m.players.PlayerIndex {
		d, err := m.solo.CreateDetails(index, target, visual, style, name, description, model)
		if err != nil {
			return Details{}, err
		}
		d.Name = "Your " + d.Name
		return d, nil
	}

	owner := m.players.Name(target.Player)
	sent := fmt.Sprintf("Sent %s to %s!", target.Pickup.Name, owner)
	return Details{
		Index:          index,
		Name:           fmt.Sprintf("%s's %s", owner, name),
		Description:    description,
		CollectionText: []string{sent},
		ConditionalResources: []pickup.ConditionalResources{{
			Name: sent,
			// Quantity index+1 keeps zero meaning "nothing collected here yet".
			Resources: resources.ResourceGain{{Resource: m.multiworldItem, Quantity: int(index) + 1}},
		}},
		Model:          model,
		OtherPlayer:    true,
		OriginalPickup: target.Pickup,
	}, nil
}
