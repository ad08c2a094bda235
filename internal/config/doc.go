// Package config provides configuration management for the logdemo CLI.
//
// # Configuration File
//
// config.yaml is searched in $LOGDEMO_CONFIG_DIR, the current directory and
// the XDG config directory (~/.config/logdemo on Linux):
//
//	filter_env: MYAPP_LOG   # variable read before flag parsing
//	levels:                 # -v count to filter expression
//	  - info
//	  - info,demo=debug
//	  - trace
//
// Every key can be overridden from the environment with the LOGDEMO_
// prefix, e.g. LOGDEMO_FILTER_ENV.
//
// # Loading Configuration
//
//	config.Init()
//	cfg, err := config.Load("")
//	if err != nil {
//	    return clierrors.NewConfigError(err)
//	}
//	guard, err := args.Setup(cfg.LevelMap())
//
// Loaded configurations are validated; every problem matches
// [clierrors.ErrInvalidConfig].
package config
