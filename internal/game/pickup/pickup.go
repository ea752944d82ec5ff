package pickup

import (
	"errors"
	"fmt"

	"randoexport.ai/internal/game/resources"
)

// Index is a pickup location's index within one game. Indices are dense and
// start at zero.
type Index int

var ErrLockedProgression = errors.New("progressive pickup must not declare a resource lock")

type Model struct {
	Game string `json:"game"`
	Name string `json:"name"`
}

// CategoryDetails is the (determiner, text) pair used when a hint only names the
// category of an item.
type CategoryDetails struct {
	Determiner string `json:"determiner"`
	Text       string `json:"text"`
}

type Category struct {
	Name           string          `json:"name"`
	LongName       string          `json:"long_name"`
	HintDetails    CategoryDetails `json:"hint_details"`
	GeneralDetails CategoryDetails `json:"general_details"`
	HintedAsMajor  bool            `json:"hinted_as_major,omitempty"`
	IsKey          bool            `json:"is_key,omitempty"`
}

// ResourceLock grants TemporaryItem in place of ItemToLock until the player owns
// LockedBy.
type ResourceLock struct {
	LockedBy      resources.ResourceInfo `json:"locked_by"`
	ItemToLock    resources.ResourceInfo `json:"item_to_lock"`
	TemporaryItem resources.ResourceInfo `json:"temporary_item"`
}

func (l ResourceLock) ConvertGain(g resources.ResourceGain) resources.ResourceGain {
	out := make(resources.ResourceGain, 0, len(g))
	for _, q := range g {
		if q.Resource.ShortName == l.ItemToLock.ShortName {
			q.Resource = l.TemporaryItem
		}
		out = append(out, q)
	}
	return out
}

type Entry struct {
	Name          string   `json:"name"`
	Category      Category `json:"category"`
	BroadCategory Category `json:"broad_category"`
	Model         Model    `json:"model"`
	Description   string   `json:"description,omitempty"`

	// Progression is granted one step per collected duplicate.
	Progression    resources.ResourceGain `json:"progression,omitempty"`
	ExtraResources resources.ResourceGain `json:"extra_resources,omitempty"`

	ResourceLock *ResourceLock `json:"resource_lock,omitempty"`
	// IgnoreLock is set when the player already owns the lock requirement.
	IgnoreLock bool `json:"ignore_lock,omitempty"`
	Unlocks    bool `json:"unlocks_resource,omitempty"`
}

func (e Entry) RespectsLock() bool { return e.ResourceLock != nil && !e.IgnoreLock }

func (e Entry) UnlocksResource() bool { return e.Unlocks }

// HasDistinctLock reports whether the lock swaps the granted item for a
// different one. A lock whose temporary and real item match is treated as no lock.
func (e Entry) HasDistinctLock() bool {
	return e.ResourceLock != nil && e.ResourceLock.TemporaryItem.ShortName != e.ResourceLock.ItemToLock.ShortName
}

// ProgressionStages lists one stage per progression step; each later stage
// requires the item of the previous one.
func (e Entry) ProgressionStages() []ConditionalResources {
	out := make([]ConditionalResources, 0, len(e.Progression))
	var previous *resources.ResourceInfo
	for _, step := range e.Progression {
		gain := append(resources.ResourceGain{step}, e.ExtraResources...)
		out = append(out, ConditionalResources{
			Name:      step.Resource.LongName,
			Item:      previous,
			Resources: gain,
		})
		r := step.Resource
		previous = &r
	}
	return out
}

// Grants reports whether any stage of the pickup gives a positive amount of r.
func (e Entry) Grants(r resources.ResourceInfo) bool {
	for _, g := range [...]resources.ResourceGain{e.Progression, e.ExtraResources} {
		for _, q := range g {
			if q.Quantity > 0 && q.Resource.ShortName == r.ShortName {
				return true
			}
		}
	}
	return false
}

func (e Entry) IsMajorOrKey() bool { return e.Category.HintedAsMajor || e.Category.IsKey }

type ConditionalResources struct {
	Name string `json:"name"`
	// Item gates this stage; nil means unconditional.
	Item      *resources.ResourceInfo `json:"item,omitempty"`
	Resources resources.ResourceGain  `json:"resources"`
}

type ResourceConversion struct {
	Source resources.ResourceInfo `json:"source"`
	Target resources.ResourceInfo `json:"target"`
}

// ConditionalResourcesFor resolves the grant stages the patcher writes for e.
func ConditionalResourcesFor(e Entry) ([]ConditionalResources, error) {
	if len(e.Progression) > 1 {
		if e.ResourceLock != nil {
			return nil, fmt.Errorf("%s: %w", e.Name, ErrLockedProgression)
		}
		return e.ProgressionStages(), nil
	}

	gain := e.ExtraResources.Clone()
	if len(e.Progression) == 1 {
		gain = append(gain, e.Progression[0])
	}

	if e.RespectsLock() && !e.UnlocksResource() && e.HasDistinctLock() {
		lock := e.ResourceLock
		lockedBy := lock.LockedBy
		return []ConditionalResources{
			{Name: "Locked " + e.Name, Resources: lock.ConvertGain(gain)},
			{Name: e.Name, Item: &lockedBy, Resources: gain},
		}, nil
	}
	return []ConditionalResources{{Name: e.Name, Resources: gain}}, nil
}

// ConversionsFor lists the temporary→real remaps the unlocking pickup applies
// to what was collected before it.
func ConversionsFor(e Entry) []ResourceConversion {
	if !e.UnlocksResource() || e.ResourceLock == nil {
		return nil
	}
	return []ResourceConversion{{Source: e.ResourceLock.TemporaryItem, Target: e.ResourceLock.ItemToLock}}
}

type Target struct {
	Pickup Entry `json:"pickup"`
	Player int   `json:"player"`
}

// Assignment maps pickup indices to what is placed there. Missing indices hold
// nothing.
type Assignment map[Index]Target

func (a Assignment) Get(i Index) (Target, bool) {
	t, ok := a[i]
	return t, ok
}
