package snowfall

import "flag"

// BindFlags registers command line overrides for cfg on fs. Current values of
// cfg are used as flag defaults.
func BindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.BoolVar(&cfg.Enabled, "enabled", cfg.Enabled, "show the snowfall")
	fs.IntVar(&cfg.FlakesNum, "flakes", cfg.FlakesNum, "number of flakes")
	fs.Float64Var(&cfg.FallingSpeedMin, "speed-min", cfg.FallingSpeedMin, "minimum falling speed (px/frame)")
	fs.Float64Var(&cfg.FallingSpeedMax, "speed-max", cfg.FallingSpeedMax, "maximum falling speed (px/frame)")
	fs.Float64Var(&cfg.FlakeMinSize, "size-min", cfg.FlakeMinSize, "minimum flake size (px)")
	fs.Float64Var(&cfg.FlakeMaxSize, "size-max", cfg.FlakeMaxSize, "maximum flake size (px)")
	fs.Float64Var(&cfg.VerticalSize, "vertical", cfg.VerticalSize, "height of the initial spawn band, 0 for the whole surface")
	fs.StringVar(&cfg.FlakeColor, "color", cfg.FlakeColor, "flake color (#rgb or #rrggbb)")
	fs.IntVar(&cfg.FlakeZIndex, "zindex", cfg.FlakeZIndex, "stacking order of the overlay")
	fs.StringVar(&cfg.FlakeType, "glyph", cfg.FlakeType, "flake glyph")
	fs.BoolVar(&cfg.FadeAway, "fade", cfg.FadeAway, "fade flakes out near the bottom edge")
}
