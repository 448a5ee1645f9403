package config

import "sort"

var Presets = map[string]map[string]*Config{
	"decay": {
		"order-check": {
			IVP: IVPConfig{Problem: "decay", Method: "rk4", StepSize: 0.1, StepSizes: []float64{0.1, 0.05, 0.025, 0.0125}},
		},
	},
	"ivp1": {
		"coarse": {
			IVP: IVPConfig{Problem: "ivp1", Method: "euler", StepSize: 0.1},
		},
		"fine": {
			IVP: IVPConfig{Problem: "ivp1", Method: "rk4", StepSize: 0.01},
		},
		"long": {
			IVP: IVPConfig{Problem: "ivp1", Method: "rk4", StepSize: 0.05, Tf: 20},
		},
	},
	"ivp2": {
		"coarse": {
			IVP: IVPConfig{Problem: "ivp2", Method: "euler", StepSize: 0.1},
		},
		"fine": {
			IVP: IVPConfig{Problem: "ivp2", Method: "rk4", StepSize: 0.01},
		},
	},
	"runge": {
		"classic": {
			Spline: SplineConfig{Solver: "thomas", Nodes: []int{5, 10, 20}, Points: 1000},
		},
		"dense": {
			Spline: SplineConfig{Solver: "dense", Nodes: []int{5, 10, 20, 40}, Points: 2000},
		},
	},
}

// GetPreset returns a copy of the named preset merged over the defaults.
func GetPreset(group, preset string) *Config {
	groupPresets, ok := Presets[group]
	if !ok {
		return nil
	}
	p, ok := groupPresets[preset]
	if !ok {
		return nil
	}

	cfg := DefaultConfig()
	if p.IVP.Problem != "" {
		cfg.IVP.Problem = p.IVP.Problem
		cfg.IVP.Method = p.IVP.Method
		cfg.IVP.StepSize = p.IVP.StepSize
		cfg.IVP.Tf = p.IVP.Tf
		if len(p.IVP.StepSizes) > 0 {
			cfg.IVP.StepSizes = append([]float64(nil), p.IVP.StepSizes...)
		}
	}
	if p.Spline.Solver != "" {
		cfg.Spline.Solver = p.Spline.Solver
		cfg.Spline.Nodes = append([]int(nil), p.Spline.Nodes...)
		cfg.Spline.Points = p.Spline.Points
	}
	return cfg
}

func ListPresets(group string) []string {
	groupPresets, ok := Presets[group]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(groupPresets))
	for name := range groupPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
