// Package config provides configuration parsing for the toolbox.
//
// The configuration is stored in toolbox.json at the project root. Every
// field is optional; a missing file means all defaults.
//
// # Configuration File Structure
//
//	{
//	  "name": "Toolbox",
//	  "dev": {
//	    "port": 5173,
//	    "host": "localhost",
//	    "proxy": {
//	      "/api":     {"target": "https://api.pearktrue.cn"},
//	      "/old-api": {"target": "https://v2.xxapi.cn", "rewrite": "/api"}
//	    }
//	  },
//	  "navigation": {
//	    "fallback": "NotFound",
//	    "fallbackPolicy": "replace",
//	    "duplicatePolicy": "keep-first"
//	  },
//	  "routes": {
//	    "manifest": "routes.yaml"
//	  },
//	  "metrics": {"enabled": true, "path": "/metrics"},
//	  "log": {"level": "info"}
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
