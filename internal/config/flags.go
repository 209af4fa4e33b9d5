// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses all configuration flags from args. A dedicated flag set
// is used so that repeated calls (tests, embedding) never touch the global
// flag.CommandLine.
//
// Flags:
//
//	-a status API address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-r hosted platform base URL
//	-api-key hosted platform public key
//	-access-token caller bearer token
//	-org organization id
//	-bucket photo storage bucket
//	-health-path reachability probe path
//	-request-timeout outbound request timeout (e.g., "15s")
//	-probe-interval reachability probe period (e.g., "10s")
//	-reconnect-window duration of the reconnected signal (e.g., "5s")
//	-sync-interval retry job period, 0 disables (e.g., "1m")
//	-hash-key request integrity hash key
func parseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var remoteAddress string
	var apiKey, accessToken string
	var organizationID string
	var photoBucket, healthPath string
	var requestTimeout, probeInterval, reconnectWindow, syncInterval time.Duration
	var hashKey string

	fs := flag.NewFlagSet("go-visit-sync", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Var(&serverAddress, "a", "Status API net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&remoteAddress, "r", "", "Hosted platform base URL")
	fs.StringVar(&apiKey, "api-key", "", "Hosted platform public key")
	fs.StringVar(&accessToken, "access-token", "", "Caller access token")
	fs.StringVar(&organizationID, "org", "", "Organization id")
	fs.StringVar(&photoBucket, "bucket", "", "Photo storage bucket")
	fs.StringVar(&healthPath, "health-path", "", "Reachability probe path")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 15s)")
	fs.DurationVar(&probeInterval, "probe-interval", 0, "Reachability probe interval (e.g., 10s)")
	fs.DurationVar(&reconnectWindow, "reconnect-window", 0, "Reconnected signal window (e.g., 5s)")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Retry job interval, 0 disables (e.g., 1m)")
	fs.StringVar(&hashKey, "hash-key", "", "Request integrity hash key")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			OrganizationID: organizationID,
			HashKey:        hashKey,
		},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Server: Server{
			HTTPAddress: serverAddress.String(),
		},
		Adapter: Adapter{
			HTTPAddress:    remoteAddress,
			APIKey:         apiKey,
			AccessToken:    accessToken,
			PhotoBucket:    photoBucket,
			HealthPath:     healthPath,
			RequestTimeout: requestTimeout,
		},
		Connectivity: Connectivity{
			ProbeInterval:   probeInterval,
			ReconnectWindow: reconnectWindow,
		},
		Workers:      Workers{SyncInterval: syncInterval},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1..65535")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
