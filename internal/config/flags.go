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

// ParseFlags parses all configuration flags from args (without the program
// name) and returns the remaining positional arguments.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-grpc-address grpc server address in format [host]:[port]
//	-public-url externally reachable server URL
//	-driver storage driver (postgres, sqlite, datastore, memory)
//	-d database DSN
//	-datastore-project cloud datastore project id
//	-datastore-namespace cloud datastore namespace
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-operation-timeout store and provider call timeout
//	-server client: server base URL
//	-session-file client: session file path
//	-federated-mode client: popup or redirect
func ParseFlags(args []string) (*StructuredConfig, []string, error) {
	fs := flag.NewFlagSet("go-pass-guard", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var serverAddress, grpcServerAddress NetAddress
	var publicURL string
	var driver, databaseDSN string
	var datastoreProject, datastoreNamespace string
	var jsonConfigPath string
	var tokenSignKey, tokenIssuer string
	var tokenDuration, requestTimeout, operationTimeout time.Duration
	var adapterServer, sessionFile, federatedMode string

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&grpcServerAddress, "grpc-address", "Net grpc server address host:port")
	fs.StringVar(&publicURL, "public-url", "", "Public server URL")
	fs.StringVar(&driver, "driver", "", "Storage driver")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&datastoreProject, "datastore-project", "", "Cloud Datastore project id")
	fs.StringVar(&datastoreNamespace, "datastore-namespace", "", "Cloud Datastore namespace")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&operationTimeout, "operation-timeout", 0, "Store and provider call timeout")
	fs.StringVar(&adapterServer, "server", "", "Server base URL")
	fs.StringVar(&sessionFile, "session-file", "", "Session file path")
	fs.StringVar(&federatedMode, "federated-mode", "", "Federated sign-in mode: popup or redirect")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:     tokenSignKey,
			TokenIssuer:      tokenIssuer,
			TokenDuration:    tokenDuration,
			OperationTimeout: operationTimeout,
		},
		Storage: Storage{
			DB: DB{
				Driver: driver,
				DSN:    databaseDSN,
			},
			Datastore: Datastore{
				ProjectID: datastoreProject,
				Namespace: datastoreNamespace,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			GRPCAddress:    grpcServerAddress.String(),
			RequestTimeout: requestTimeout,
			PublicURL:      publicURL,
		},
		Adapter: Adapter{
			ServerAddress:  adapterServer,
			RequestTimeout: requestTimeout,
			SessionFile:    sessionFile,
			FederatedMode:  federatedMode,
		},
		JSONFilePath: jsonConfigPath,
	}, fs.Args(), nil
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
// It validates the port range, checks IP correctness unless host is "localhost"
// or empty, and returns an error if the format or values are invalid.
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
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
