// Package config loads configuration sections from the environment.
//
// It utilizes Viper for loading configuration from environment variables
// and an optional .env file. Defaults live next to each setting as struct tags.
//
// # Configuration Structure
//
// The caller owns the configuration struct. Each field is a section tagged with
// mapstructure, and nested keys map to upper-case environment variables joined
// by underscores (server.port -> SERVER_PORT).
//
// # Usage
//
//	type Config struct {
//	    Server server.Config `mapstructure:"server"`
//	}
//
//	var cfg Config
//	if err := config.Load(".", &cfg); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
