// Package config provides configuration management for mod-manager.
//
// It utilizes Viper for loading configuration from struct tag defaults, an
// optional mod-manager.yaml, a .env file and environment variables.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Files: names of the manifest, mod list and catalog cache documents
//   - Hub: scraping page count, timeouts, retry and page cache settings
//   - Server: status API host, port and API key
//   - Database: run history connection (sqlite or mysql)
//   - Storage: S3/MinIO mirror credentials and bucket settings
//   - Log: Logging level and format
//
// Every key can be overridden from the environment by upper-casing it and
// replacing dots with underscores, e.g. HUB_TIMEOUT_SECONDS.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Hub.Pages)
package config
