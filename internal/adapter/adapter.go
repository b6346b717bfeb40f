package adapter

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
)

var ErrTLSConfig = errors.New("invalid TLS config")

// A MakeTLSConfig returns client side [*tls.Config].
//
// All args are the filepaths. Empty ca keeps the system roots, empty cert
// and key disable the client certificate.
func MakeTLSConfig(ca, cert, key string) (*tls.Config, error) {
	const op = "adapter.MakeTLSConfig"

	config := &tls.Config{MinVersion: tls.VersionTLS12}

	if ca != "" {
		caCert, err := os.ReadFile(ca)
		if err != nil {
			return nil, fmt.Errorf(
				"%s: failed to read CA certificate file: %w", op, err,
			)
		}

		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf(
				"%s: %w: failed to parse CA certificate", op, ErrTLSConfig,
			)
		}
		config.RootCAs = caCertPool
	}

	if (cert == "") != (key == "") {
		return nil, fmt.Errorf(
			"%s: %w: cert and key must be set together", op, ErrTLSConfig,
		)
	}

	if cert != "" {
		clientCert, err := tls.LoadX509KeyPair(cert, key)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		config.Certificates = []tls.Certificate{clientCert}
	}

	return config, nil
}
