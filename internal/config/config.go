// Package config loads tunables from an optional JSON config file with
// sensible defaults for every key.
package config

import (
	"errors"

	"github.com/spf13/viper"

	"github.com/mtreland/broadside/internal/game"
)

// Load sets defaults and reads broadside.cfg.json from configDir if present.
// A missing file is not an error; every key has a default.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "info")

	viper.SetDefault("bay.width", 960)
	viper.SetDefault("bay.height", 600)
	viper.SetDefault("bay.spawnMargin", 30)

	viper.SetDefault("combat.pirateAttack", 20)
	viper.SetDefault("combat.ninjaAttack", 25)
	viper.SetDefault("combat.roundTicks", 90)

	viper.SetDefault("events.krakenDamage", 10)
	viper.SetDefault("events.displayTicks", 300)

	viper.SetConfigName("broadside.cfg.json")
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return err
	}
	return nil
}

// LogLevel returns the configured log level name.
func LogLevel() string {
	return viper.GetString("logLevel")
}

// Tuning assembles the gameplay parameters from the loaded configuration.
func Tuning() game.Tuning {
	return game.Tuning{
		BayWidth:          viper.GetFloat64("bay.width"),
		BayHeight:         viper.GetFloat64("bay.height"),
		SpawnMargin:       viper.GetFloat64("bay.spawnMargin"),
		PirateAttack:      viper.GetInt("combat.pirateAttack"),
		NinjaAttack:       viper.GetInt("combat.ninjaAttack"),
		RoundTicks:        viper.GetInt("combat.roundTicks"),
		KrakenDamage:      viper.GetInt("events.krakenDamage"),
		EventDisplayTicks: viper.GetInt("events.displayTicks"),
	}
}
