package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/StWron/customnode4portfolio/pkg/pipeline"
)

// Default presets written by InitInfra for a fresh workspace. Each category
// gets one parameter folder per preset (with a config.json) plus an
// order_list.txt naming them in this order.

type preset struct {
	Name   string
	Config paramConfig
}

func f64(v float64) *float64 { return &v }

var defaultPresets = map[string][]preset{
	pipeline.CategoryBackground: {
		{Name: "ckpt", Config: paramConfig{Type: "combo", Value: "ponyDiffusionV6XL_v6StartWithThisOne.safetensors"}},
		{Name: "prompt", Config: paramConfig{Type: "string", Value: "score_9, score_8_up, score_7_up, (scenic landscape:1.2), battlefield, fire, cinematic lighting"}},
		{Name: "ratio", Config: paramConfig{Type: "combo", Value: "16:9"}},
	},
	pipeline.CategoryEquipment: {
		{Name: "lora", Config: paramConfig{Type: "combo", Value: "reij-style01.safetensors"}},
		{Name: "strength", Config: paramConfig{Type: "float", Value: 0.8, Min: f64(0.0), Max: f64(2.0), Step: f64(0.01)}},
		{Name: "tags", Config: paramConfig{Type: "string", Value: "metallic, armor, high detail"}},
	},
	pipeline.CategoryCharacter: {
		{Name: "ckpt", Config: paramConfig{Type: "combo", Value: "ponyDiffusionV6XL_v6StartWithThisOne.safetensors"}},
		{Name: "prompt", Config: paramConfig{Type: "string", Value: "score_9, score_8_up, score_7_up, 1girl, warrior, full armor, masterpiece"}},
		{Name: "denoise", Config: paramConfig{Type: "float", Value: 0.6, Min: f64(0.0), Max: f64(1.0), Step: f64(0.05)}},
	},
	pipeline.CategoryStructure: {
		{Name: "control_net", Config: paramConfig{Type: "combo", Value: "diffusion_pytorch_model_promax.safetensors"}},
		{Name: "mode", Config: paramConfig{Type: "combo", Value: "standard"}},
		{Name: "type", Config: paramConfig{Type: "combo", Value: "openpose"}},
		{Name: "strength", Config: paramConfig{Type: "float", Value: 1.0, Min: f64(0.0), Max: f64(2.0), Step: f64(0.05)}},
	},
	pipeline.CategorySpecialEffects: {
		{Name: "motion", Config: paramConfig{Type: "combo", Value: "hsxl_temporal_layers.safetensors"}},
		{Name: "fps", Config: paramConfig{Type: "int", Value: 12, Min: f64(1), Max: f64(60)}},
		{Name: "fx_type", Config: paramConfig{Type: "combo", Value: "fire"}},
	},
	pipeline.CategoryAudio: {
		{Name: "model", Config: paramConfig{Type: "combo", Value: "model.ckpt"}},
		{Name: "prompt", Config: paramConfig{Type: "string", Value: "Epic cinematic, 128 BPM"}},
		{Name: "duration", Config: paramConfig{Type: "float", Value: 5.0, Min: f64(0.1), Max: f64(30.0), Step: f64(0.1)}},
		{Name: "bpm", Config: paramConfig{Type: "int", Value: 128, Min: f64(40), Max: f64(250)}},
	},
}

// InitInfra scaffolds the six category setting folders under root with the
// default presets. Existing parameter folders and order lists are left
// untouched, so re-running is safe. Returns the number of parameter folders
// created.
func InitInfra(root string) (int, error) {
	created := 0
	for _, cat := range pipeline.Categories() {
		settingDir := filepath.Join(root, cat, SettingDirName)
		presets := defaultPresets[cat]

		for _, p := range presets {
			paramDir := filepath.Join(settingDir, p.Name)
			if _, err := os.Stat(paramDir); err == nil {
				continue
			}
			if err := os.MkdirAll(paramDir, 0o755); err != nil {
				return created, fmt.Errorf("failed to create parameter folder for %s/%s: %w", cat, p.Name, err)
			}

			data, err := json.MarshalIndent(map[string]paramConfig{p.Name: p.Config}, "", "    ")
			if err != nil {
				return created, fmt.Errorf("failed to serialize config for %s/%s: %w", cat, p.Name, err)
			}
			if err := os.WriteFile(filepath.Join(paramDir, ConfigFileName), data, 0o644); err != nil {
				return created, fmt.Errorf("failed to write config for %s/%s: %w", cat, p.Name, err)
			}
			created++
		}

		orderPath := filepath.Join(settingDir, OrderFileName)
		if _, err := os.Stat(orderPath); os.IsNotExist(err) {
			names := make([]string, 0, len(presets))
			for _, p := range presets {
				names = append(names, p.Name)
			}
			if err := os.MkdirAll(settingDir, 0o755); err != nil {
				return created, fmt.Errorf("failed to create setting folder for %s: %w", cat, err)
			}
			if err := os.WriteFile(orderPath, []byte(strings.Join(names, "\n")), 0o644); err != nil {
				return created, fmt.Errorf("failed to write order list for %s: %w", cat, err)
			}
		}
	}
	return created, nil
}
