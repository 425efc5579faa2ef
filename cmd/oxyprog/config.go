package main

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-progcache/common"
	"github.com/Carmen-Shannon/oxy-progcache/engine/light"
	"github.com/Carmen-Shannon/oxy-progcache/engine/renderer/backend"
	"github.com/spf13/viper"
)

// config is the resolved configuration of one run.
type config struct {
	Backend           backend.Type
	ToneMapping       common.ToneMapping
	OutputColorSpace  common.ColorSpace
	Precision         common.Precision
	ShadowMapEnabled  bool
	ShadowMapType     common.ShadowMapType
	CheckShaderErrors bool
	Lights            light.State
	Workers           int
}

var toneMappings = map[string]common.ToneMapping{
	"none":     common.NoToneMapping,
	"linear":   common.LinearToneMapping,
	"reinhard": common.ReinhardToneMapping,
	"cineon":   common.CineonToneMapping,
	"aces":     common.ACESFilmicToneMapping,
	"custom":   common.CustomToneMapping,
	"agx":      common.AgXToneMapping,
	"neutral":  common.NeutralToneMapping,
}

var shadowMapTypes = map[string]common.ShadowMapType{
	"basic":   common.BasicShadowMap,
	"pcf":     common.PCFShadowMap,
	"pcfsoft": common.PCFSoftShadowMap,
	"vsm":     common.VSMShadowMap,
}

var precisions = map[string]common.Precision{
	"highp":   common.PrecisionHigh,
	"mediump": common.PrecisionMedium,
	"lowp":    common.PrecisionLow,
}

var colorSpaces = map[string]common.ColorSpace{
	string(common.SRGBColorSpace):            common.SRGBColorSpace,
	string(common.LinearSRGBColorSpace):      common.LinearSRGBColorSpace,
	string(common.DisplayP3ColorSpace):       common.DisplayP3ColorSpace,
	string(common.LinearDisplayP3ColorSpace): common.LinearDisplayP3ColorSpace,
}

func lookup[T any](table map[string]T, key, value string) (T, error) {
	v, ok := table[strings.ToLower(strings.TrimSpace(value))]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s: unknown value %q", key, value)
	}
	return v, nil
}

// newViper returns a viper instance with every default set. Environment variables use the OXYPROG prefix with
// dots replaced by underscores, e.g. OXYPROG_SHADOW_MAP_TYPE.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("oxyprog")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("backend", backend.TypeNull.String())
	v.SetDefault("tone_mapping", "none")
	v.SetDefault("output_color_space", string(common.SRGBColorSpace))
	v.SetDefault("precision", "highp")
	v.SetDefault("shadow_map.enabled", false)
	v.SetDefault("shadow_map.type", "pcf")
	v.SetDefault("debug.check_shader_errors", false)
	v.SetDefault("lights.directional", 1)
	v.SetDefault("lights.point", 0)
	v.SetDefault("lights.spot", 0)
	v.SetDefault("workers", 4)
	return v
}

// loadConfig reads the optional config file and resolves every key.
//
// Parameters:
//   - v: the viper instance, see newViper
//   - path: the config file, "" for defaults and environment only
//
// Returns:
//   - config: the resolved configuration
//   - error: error if the file cannot be read or a value is unknown
func loadConfig(v *viper.Viper, path string) (config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg config
	var err error
	var ok bool
	if cfg.Backend, ok = backend.ParseType(strings.ToLower(v.GetString("backend"))); !ok {
		return config{}, fmt.Errorf("backend: unknown value %q", v.GetString("backend"))
	}
	if cfg.ToneMapping, err = lookup(toneMappings, "tone_mapping", v.GetString("tone_mapping")); err != nil {
		return config{}, err
	}
	if cfg.OutputColorSpace, err = lookup(colorSpaces, "output_color_space", v.GetString("output_color_space")); err != nil {
		return config{}, err
	}
	if cfg.Precision, err = lookup(precisions, "precision", v.GetString("precision")); err != nil {
		return config{}, err
	}
	if cfg.ShadowMapType, err = lookup(shadowMapTypes, "shadow_map.type", v.GetString("shadow_map.type")); err != nil {
		return config{}, err
	}
	cfg.ShadowMapEnabled = v.GetBool("shadow_map.enabled")
	cfg.CheckShaderErrors = v.GetBool("debug.check_shader_errors")
	cfg.Lights = light.Summarize(sceneLights(v, cfg.ShadowMapEnabled))
	cfg.Workers = max(v.GetInt("workers"), 1)
	return cfg, nil
}

// sceneLights builds the configured lights. With shadow maps enabled every light that can cast shadows does.
func sceneLights(v *viper.Viper, shadows bool) []light.Light {
	var lights []light.Light
	for _, c := range []struct {
		key string
		typ light.LightType
	}{
		{"lights.directional", light.LightTypeDirectional},
		{"lights.point", light.LightTypePoint},
		{"lights.spot", light.LightTypeSpot},
	} {
		for range max(v.GetInt(c.key), 0) {
			lights = append(lights, light.NewLight(c.typ, light.WithCastsShadows(shadows)))
		}
	}
	return lights
}
