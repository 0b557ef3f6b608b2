// types.go
package game

// Raw config loaded from YAML; every field optional so files can override defaults.
type RawConfig struct {
	Version string      `yaml:"version"`
	Tiers   []TierCfg   `yaml:"tiers,omitempty"`
	Timing  TimingCfg   `yaml:"timing"`
	Storage *StorageCfg `yaml:"storage,omitempty"`
	Notes   string      `yaml:"notes,omitempty"`
}

// TierCfg is one tier as written in YAML. Tiers are drawn in file order.
type TierCfg struct {
	Name      string   `yaml:"name"`
	Color     string   `yaml:"color"` // "#rrggbb" or "rainbow"
	Starlight bool     `yaml:"starlight,omitempty"`
	Particles *int     `yaml:"particles"`
	Speed     *float64 `yaml:"speed"`
	Size      *float64 `yaml:"size"`
	Weight    *float64 `yaml:"weight"`
	Glow      string   `yaml:"glow,omitempty"`
	Radius    *float64 `yaml:"radius,omitempty"` // defaults to 80
}

type TimingCfg struct {
	LockoutMS    *int   `yaml:"lockout_ms,omitempty"`
	TickMS       *int   `yaml:"tick_ms,omitempty"`
	StaggerMS    *int   `yaml:"reveal_stagger_ms,omitempty"`
	TransitionMS *int   `yaml:"reveal_transition_ms,omitempty"`
	Easing       string `yaml:"reveal_easing,omitempty"` // linear, easeOutQuad, easeInOutCubic
}

type StorageCfg struct {
	Backend string `yaml:"backend"` // "file" | "sqlite" | "memory"
	Path    string `yaml:"path,omitempty"`
	Key     string `yaml:"key,omitempty"`
}
