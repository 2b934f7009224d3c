// Package config handles configuration loading for chatbot-console.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable expansion.
// The package provides validation and sensible defaults.
//
// # Configuration File
//
// Default locations (in order):
//
//  1. Path from CHATBOT_CONSOLE_CONFIG environment variable
//  2. ./config.yaml (current directory)
//  3. ~/.config/chatbot-console/config.yaml
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	gateway:
//	  token: "${CHATBOT_TOKEN}"
//
// Syntax: ${VAR_NAME}
//
// # Configuration Sections
//
// Gateway connection:
//
//	gateway:
//	  base_url: "https://chatbot.example.com"
//	  token: "${CHATBOT_TOKEN}"
//	  timeout: "30s"
//
// Console defaults:
//
//	console:
//	  default_organization: "finance"
//	  page_size: 10
//
// Local audit log (empty path disables it):
//
//	audit:
//	  path: "~/.local/share/chatbot-console/audit.db"
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//	  file: ""        # required for the TUI, which owns the terminal
//
// # Usage
//
//	cfg, err := config.Load("/etc/chatbot-console/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
