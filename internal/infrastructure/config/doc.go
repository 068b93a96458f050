// Package config handles loading and validating homesim configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Loading optional .env files
//   - Overriding with HOMESIM_* environment variables
//   - Validation of required fields
//
// Security Considerations:
//   - Sensitive values (MQTT password, InfluxDB token) should be set via
//     environment variables or a .env file kept out of version control
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml", true, ".env")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Storage.Backend)
package config
