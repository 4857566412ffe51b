package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for an optional URL
// scheme, host and port. It implements the flag.Value interface.
type NetAddress struct {
	Scheme string
	Host   string
	Port   int
}

// ParseFlags parses the client configuration flags from args.
//
// Flags:
//
//	-a backend address in format [scheme://]host:port
//	-d local database file
//	-c/-config json file path with configs
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-refresh-interval session list refresh interval (e.g., "1m")
func ParseFlags(args []string) (*StructuredConfig, error) {
	var backendAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var requestTimeout time.Duration
	var refreshInterval time.Duration

	fs := flag.NewFlagSet("ai-interviewer", flag.ContinueOnError)
	fs.Var(&backendAddress, "a", "Backend address [scheme://]host:port")
	fs.StringVar(&databaseDSN, "d", "", "Local database file")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&refreshInterval, "refresh-interval", 0, "Session list refresh interval (e.g., 1m)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		Adapter: Adapter{
			HTTPAddress:    backendAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Workers:      Workers{RefreshInterval: refreshInterval},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns the address as "host:port", prefixed with "scheme://" when
// a scheme was given. An unset address renders as "".
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	hostPort := a.Host
	if a.Port != 0 || a.Scheme == "" {
		hostPort = a.Host + ":" + strconv.Itoa(a.Port)
	}

	if a.Scheme != "" {
		return a.Scheme + "://" + hostPort
	}
	return hostPort
}

// Set parses the input string of form [scheme://]host:port and populates the
// NetAddress. The port may be omitted only when a scheme is present. Hosts
// other than "localhost" must be an IP address or a dotted domain name.
func (a *NetAddress) Set(s string) error {
	scheme := ""
	if before, after, found := strings.Cut(s, "://"); found {
		if before != "http" && before != "https" {
			return errors.New("scheme must be http or https")
		}
		scheme, s = before, after
	}

	host, portStr := s, ""
	if h, p, found := strings.Cut(s, ":"); found {
		host, portStr = h, p
	} else if scheme == "" {
		return errors.New("need address in a form `host:port`")
	}

	port := 0
	if portStr != "" || scheme == "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			return err
		}
		if port < 1 {
			return errors.New("port number is a positive integer")
		}
	}

	if host != "localhost" && net.ParseIP(host) == nil && !strings.Contains(host, ".") {
		return errors.New("incorrect host provided")
	}

	a.Scheme = scheme
	a.Host = host
	a.Port = port
	return nil
}
