// Copyright (c) 2026 Dana Tavenner
// Licensed under the MIT License. See LICENSE file in the project root.

package main

import "github.com/spf13/viper"

// config holds the demo's settings, read from backdrop.yaml in the working
// directory with BACKDROP_* env overrides.
type config struct {
	URL          string
	Width        int
	Height       int
	Debug        bool
	StartFocused bool
}

func loadConfig() config {
	v := viper.New()

	v.SetDefault("url", "https://example.com")
	v.SetDefault("width", 800)
	v.SetDefault("height", 600)
	v.SetDefault("debug", false)
	v.SetDefault("start_focused", false)

	v.SetConfigName("backdrop")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BACKDROP")
	v.AutomaticEnv()

	// config file is optional
	_ = v.ReadInConfig()

	return config{
		URL:          v.GetString("url"),
		Width:        v.GetInt("width"),
		Height:       v.GetInt("height"),
		Debug:        v.GetBool("debug"),
		StartFocused: v.GetBool("start_focused"),
	}
}
