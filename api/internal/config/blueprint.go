package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// BlueprintConfig drives one blueprint build run. It is read fresh from disk
// on every run so the analyst can edit it between builds without restarting
// the service.
type BlueprintConfig struct {
	Metadata    MetadataConfig  `json:"metadata"`
	Slot        SlotSelector    `json:"slot"`
	Prompt      PromptConfig    `json:"prompt"`
	Personalize PersonalizeConf `json:"ms_interest_token"`
}

type MetadataConfig struct {
	Analyst      string `json:"analyst"`
	ModelAlias   string `json:"model_alias"`
	ModelVersion string `json:"model_version"`
}

// SlotSelector is either the literal string "load_current_slot" or an object
// {"date": "1.9.2026", "group_alias": "..."} in the config file.
type SlotSelector struct {
	Current    bool
	Date       string
	GroupAlias string
}

func (s *SlotSelector) UnmarshalJSON(b []byte) error {
	var lit string
	if err := json.Unmarshal(b, &lit); err == nil {
		if lit != "load_current_slot" {
			return fmt.Errorf("unknown slot selector %q", lit)
		}
		s.Current = true
		return nil
	}
	var obj struct {
		Date       string `json:"date"`
		GroupAlias string `json:"group_alias"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	if obj.Date == "" || obj.GroupAlias == "" {
		return fmt.Errorf("slot selector needs both date and group_alias")
	}
	s.Date = obj.Date
	s.GroupAlias = obj.GroupAlias
	return nil
}

func (s SlotSelector) MarshalJSON() ([]byte, error) {
	if s.Current {
		return json.Marshal("load_current_slot")
	}
	return json.Marshal(struct {
		Date       string `json:"date"`
		GroupAlias string `json:"group_alias"`
	}{s.Date, s.GroupAlias})
}

type PromptConfig struct {
	IncludeStudents bool          `json:"include_ss"`
	Premise         PremiseConfig `json:"premise"`
}

type PremiseConfig struct {
	IncludeCustomPremise bool   `json:"include_custom_premise"`
	Text                 string `json:"text"`
}

type PersonalizeConf struct {
	Active        bool   `json:"active"`
	TargetStudent string `json:"target_student"`
}

// LoadBlueprintConfig reads the per-build config file. A missing or malformed
// file is a configuration error and aborts the build before any external call.
func LoadBlueprintConfig(path string) (*BlueprintConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("blueprint config: %w", err)
	}
	var cfg BlueprintConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("blueprint config %s: %w", path, err)
	}
	return &cfg, nil
}
