// Package config handles configuration loading for secure-chat.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable
// expansion. Missing files fall back to Default().
//
// # Configuration File
//
// Default locations (in order):
//
//  1. Path from SECURE_CHAT_CONFIG environment variable
//  2. ~/.config/secure-chat/config.yaml (or XDG_CONFIG_HOME equivalent)
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	database:
//	  path: "${SECURE_CHAT_DB}"
//
// Syntax: ${VAR_NAME}
//
// # Configuration Sections
//
// Database:
//
//	database:
//	  path: "~/.local/share/secure-chat/chat.db"
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
package config
