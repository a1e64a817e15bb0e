package tlsconfig

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type authority struct {
	cert *x509.Certificate
	key  *ecdsa.PrivateKey
	pem  []byte
}

func newAuthority(t *testing.T, name string) *authority {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: name},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		IsCA:                  true,
		KeyUsage:              x509.KeyUsageCertSign,
		BasicConstraintsValid: true,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		t.Fatal(err)
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		t.Fatal(err)
	}
	return &authority{
		cert: cert,
		key:  key,
		pem:  pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}),
	}
}

// issue writes a leaf certificate signed by a, plus a's own certificate,
// into dir and returns their paths.
func (a *authority) issue(t *testing.T, dir, name string, usage x509.ExtKeyUsage) Files {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(time.Now().UnixNano()),
		Subject:      pkix.Name{CommonName: name},
		DNSNames:     []string{name},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{usage},
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, a.cert, &key.PublicKey, a.key)
	if err != nil {
		t.Fatal(err)
	}
	keyDER, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		t.Fatal(err)
	}

	f := Files{
		Cert: filepath.Join(dir, name+".crt"),
		Key:  filepath.Join(dir, name+".key"),
		CA:   filepath.Join(dir, name+"-ca.crt"),
	}
	writeFile(t, f.Cert, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}))
	writeFile(t, f.Key, pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER}))
	writeFile(t, f.CA, a.pem)
	return f
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
}

// handshake runs both sides of a TLS handshake over loopback TCP.
func handshake(t *testing.T, serverCfg, clientCfg *tls.Config) (serverErr, clientErr error) {
	t.Helper()

	lis, err := tls.Listen("tcp", "127.0.0.1:0", serverCfg)
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	defer lis.Close()

	done := make(chan error, 1)
	go func() {
		conn, err := lis.Accept()
		if err != nil {
			done <- err
			return
		}
		defer conn.Close()
		done <- conn.(*tls.Conn).Handshake()
	}()

	conn, clientErr := tls.Dial("tcp", lis.Addr().String(), clientCfg)
	serverErr = <-done
	if conn != nil {
		conn.Close()
	}
	return serverErr, clientErr
}

func TestMutualTLSHandshake(t *testing.T) {
	dir := t.TempDir()
	ca := newAuthority(t, "plant-monitor-ca")

	serverFiles := ca.issue(t, dir, "distance-service", x509.ExtKeyUsageServerAuth)
	clientFiles := ca.issue(t, dir, "distance-cli", x509.ExtKeyUsageClientAuth)

	serverCfg, err := LoadServerTLS(serverFiles)
	if err != nil {
		t.Fatalf("LoadServerTLS failed: %v", err)
	}
	clientCfg, err := LoadClientTLS(clientFiles, "distance-service")
	if err != nil {
		t.Fatalf("LoadClientTLS failed: %v", err)
	}

	serverErr, clientErr := handshake(t, serverCfg, clientCfg)
	if serverErr != nil || clientErr != nil {
		t.Fatalf("handshake failed: server %v, client %v", serverErr, clientErr)
	}
}

func TestServerRejectsUnknownClient(t *testing.T) {
	dir := t.TempDir()
	ca := newAuthority(t, "plant-monitor-ca")
	rogue := newAuthority(t, "rogue-ca")

	serverFiles := ca.issue(t, dir, "distance-service", x509.ExtKeyUsageServerAuth)
	clientFiles := rogue.issue(t, dir, "intruder", x509.ExtKeyUsageClientAuth)
	// the intruder still trusts the real CA
	clientFiles.CA = serverFiles.CA

	serverCfg, err := LoadServerTLS(serverFiles)
	if err != nil {
		t.Fatalf("LoadServerTLS failed: %v", err)
	}
	clientCfg, err := LoadClientTLS(clientFiles, "distance-service")
	if err != nil {
		t.Fatalf("LoadClientTLS failed: %v", err)
	}

	serverErr, _ := handshake(t, serverCfg, clientCfg)
	if serverErr == nil {
		t.Error("expected server to reject a client signed by another CA")
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	ca := newAuthority(t, "plant-monitor-ca")
	good := ca.issue(t, dir, "distance-service", x509.ExtKeyUsageServerAuth)

	garbage := filepath.Join(dir, "garbage.pem")
	writeFile(t, garbage, []byte("not a certificate"))

	tests := []struct {
		name  string
		files Files
	}{
		{"missing key", Files{Cert: good.Cert, CA: good.CA}},
		{"key file absent", Files{Cert: good.Cert, Key: filepath.Join(dir, "nope.key"), CA: good.CA}},
		{"CA file absent", Files{Cert: good.Cert, Key: good.Key, CA: filepath.Join(dir, "nope.crt")}},
		{"CA not PEM", Files{Cert: good.Cert, Key: good.Key, CA: garbage}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadServerTLS(tt.files); err == nil {
				t.Error("expected LoadServerTLS to fail")
			}
			if _, err := LoadClientTLS(tt.files, ""); err == nil {
				t.Error("expected LoadClientTLS to fail")
			}
		})
	}
}

func TestEnabled(t *testing.T) {
	if (Files{}).Enabled() {
		t.Error("expected empty Files to be disabled")
	}
	if !(Files{Cert: "a.crt"}).Enabled() {
		t.Error("expected Files with a certificate to be enabled")
	}
}
