// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
	"go.uber.org/zap"
)

var validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")
	v.BindEnv("host.cors", "host_cors")

	v.BindEnv("google.sheet_id", "google_sheet_id")
	v.BindEnv("google.service_account_email", "google_service_account_email")
	v.BindEnv("google.private_key", "google_private_key")

	v.BindEnv("aws.access_key_id", "aws_access_key_id")
	v.BindEnv("aws.secret_access_key", "aws_secret_access_key")
	v.BindEnv("aws.region", "aws_region")
	v.BindEnv("aws.bucket", "aws_s3_bucket_name")

	v.BindEnv("cdn.domain", "cloudfront_domain")

	v.BindEnv("map.client_id", "map_client_id")
	v.BindEnv("venue.latitude", "venue_latitude")
	v.BindEnv("venue.longitude", "venue_longitude")
	v.BindEnv("venue.address", "venue_address")

	v.BindEnv("upload.max_size", "upload_max_size")

	v.BindEnv("security.rate_limit", "security_rate_limit")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.cors", "http://localhost:3000")

	v.SetDefault("upload.max_size", 100)
	v.SetDefault("security.rate_limit", 10)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file, %w", err)
		}

		// Everything can come from the environment, so a missing
		// config.toml is fine
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if v.GetInt("upload.max_size") <= 0 {
		return errors.New("upload.max_size must be bigger than 0")
	}

	if v.GetInt("security.rate_limit") <= 0 {
		return errors.New("security.rate_limit must be bigger than 0")
	}

	if v.GetString("google.sheet_id") == "" {
		zap.L().Warn("No google.sheet_id configured. Attendance endpoints will return errors and duplicate checks will be skipped")
	}

	if v.GetString("google.service_account_email") == "" || v.GetString("google.private_key") == "" {
		zap.L().Warn("Google service account credentials missing. Sheet access will fail")
	}

	// Keys pasted through env vars usually arrive with escaped newlines
	v.Set("google.private_key", strings.ReplaceAll(v.GetString("google.private_key"), `\n`, "\n"))

	if v.GetString("aws.access_key_id") == "" {
		return errors.New("aws access key id can't be empty")
	}
	if v.GetString("aws.secret_access_key") == "" {
		return errors.New("aws secret access key can't be empty")
	}
	if v.GetString("aws.region") == "" {
		return errors.New("aws region can't be empty")
	}
	if v.GetString("aws.bucket") == "" {
		return errors.New("bucket can't be empty")
	}

	if v.GetString("cdn.domain") == "" {
		zap.L().Warn("No CDN domain configured, photo URLs will point directly at the bucket")
	}

	if v.GetString("map.client_id") == "" {
		zap.L().Warn("No map client id configured, the map endpoint will serve the static directions fallback")
	}

	v.Set("upload.max_size", v.GetInt64("upload.max_size")<<20)
	return nil
}
