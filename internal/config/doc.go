// Package config provides centralized configuration for the processing
// core: default sampling rate, filter order, notch presets and smart-fill
// tuning. Values are loaded from three sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. An optional YAML configuration file
//	3. Default values from struct tags (lowest priority)
//
// All environment variables use the SIGPROC_ prefix:
//
//	SIGPROC_PROCESSING_DEFAULT_SAMPLING_RATE=20000
//	SIGPROC_PROCESSING_FILTER_ORDER=4
//	SIGPROC_PROCESSING_QUALITY_FACTOR=30
//	SIGPROC_LOGGING_LEVEL=debug
package config
