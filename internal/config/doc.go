// Package config provides configuration loading, merging, and validation
// for the drive client and the blob server.
//
// Configuration is assembled from multiple sources. Priority, highest first:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// The main entry points are [GetClientConfig] and [GetServerConfig]; both
// accept the pflag set on which [RegisterFlags] declared the shared flags.
package config
