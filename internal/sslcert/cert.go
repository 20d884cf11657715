// Package sslcert самоподписанный сертификат для локального HTTPS.
//
// Браузеры отдают геолокацию только защищенным источникам, поэтому при ENABLE_HTTPS
// сервер поднимается с сертификатом из файлов, а если их нет или сертификат
// просрочен, генерирует и сохраняет новую пару.
package sslcert

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"fmt"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"time"
)

const defaultValidity = 365 * 24 * time.Hour

// Generator генератор самоподписанных сертификатов.
type Generator struct {
	organization string
	hosts        []string
	validity     time.Duration
}

type Option func(*Generator)

// WithHosts имена и адреса, на которые выписывается сертификат. IP адреса распознаются автоматически.
func WithHosts(hosts ...string) Option {
	return func(g *Generator) { g.hosts = append(g.hosts, hosts...) }
}

func WithValidity(d time.Duration) Option {
	return func(g *Generator) { g.validity = d }
}

// New создает генератор. По умолчанию сертификат выписывается на localhost, 127.0.0.1 и ::1 на год.
func New(opts ...Option) *Generator {
	g := &Generator{
		organization: "geolink",
		hosts:        []string{"localhost", "127.0.0.1", "::1"},
		validity:     defaultValidity,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate генерирует пару сертификат/приватный ключ в PEM, действующую с момента now.
//
// Возвращает:
//   - []byte: сертификат
//   - []byte: приватный ключ
//   - error: ошибка генерации
func (g *Generator) Generate(now time.Time) ([]byte, []byte, error) {
	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128)) //nolint:mnd
	if err != nil {
		return nil, nil, fmt.Errorf("generate serial number: %w", err)
	}

	tmpl := &x509.Certificate{
		SerialNumber:          serial,
		Subject:               pkix.Name{Organization: []string{g.organization}},
		NotBefore:             now.Add(-time.Minute),
		NotAfter:              now.Add(g.validity),
		KeyUsage:              x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
	}
	for _, h := range g.hosts {
		if ip := net.ParseIP(h); ip != nil {
			tmpl.IPAddresses = append(tmpl.IPAddresses, ip)
		} else {
			tmpl.DNSNames = append(tmpl.DNSNames, h)
		}
	}

	privKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("generate private key: %w", err)
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &privKey.PublicKey, privKey)
	if err != nil {
		return nil, nil, fmt.Errorf("generate certificate: %w", err)
	}
	keyDER, err := x509.MarshalPKCS8PrivateKey(privKey)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal private key: %w", err)
	}

	return pemEncode("CERTIFICATE", der), pemEncode("PRIVATE KEY", keyDER), nil
}

// CheckPair проверяет что пара разбирается, ключ подходит к сертификату и срок действия покрывает now.
//
// Возможные ошибки:
//   - ErrBlankPEM: пустые данные
//   - ErrCertExpired: срок действия истек
//   - ErrCertNotValidYet: сертификат еще не вступил в силу
func CheckPair(certPEM, keyPEM []byte, now time.Time) error {
	if len(bytes.TrimSpace(certPEM)) == 0 || len(bytes.TrimSpace(keyPEM)) == 0 {
		return ErrBlankPEM
	}
	pair, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidPair, err.Error())
	}
	cert, err := x509.ParseCertificate(pair.Certificate[0])
	if err != nil {
		return fmt.Errorf("%w: parse certificate: %s", ErrInvalidPair, err.Error())
	}
	if cert.NotBefore.After(now) {
		return ErrCertNotValidYet
	}
	if cert.NotAfter.Before(now) {
		return ErrCertExpired
	}
	return nil
}

// EnsurePair проверяет файлы сертификата и ключа, при необходимости генерирует новую пару.
// Пустые, поврежденные или просроченные файлы перезаписываются.
//
// Возвращает:
//   - bool: была ли сгенерирована новая пара
//   - error: ошибка чтения, генерации или записи
func (g *Generator) EnsurePair(certPath, keyPath string, now time.Time) (bool, error) {
	certPEM, errCert := readOptional(certPath)
	if errCert != nil {
		return false, errCert
	}
	keyPEM, errKey := readOptional(keyPath)
	if errKey != nil {
		return false, errKey
	}

	checkErr := CheckPair(certPEM, keyPEM, now)
	if checkErr == nil {
		return false, nil
	}
	if errors.Is(checkErr, ErrCertNotValidYet) {
		return false, checkErr
	}

	newCert, newKey, err := g.Generate(now)
	if err != nil {
		return false, err
	}
	if err = writeFile(certPath, newCert); err != nil {
		return false, fmt.Errorf("save certificate: %w", err)
	}
	if err = writeFile(keyPath, newKey); err != nil {
		return false, fmt.Errorf("save private key: %w", err)
	}
	return true, nil
}

func readOptional(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// writeFile пишет во временный файл рядом и переименовывает его.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err = tmp.Chmod(0o600); err != nil { //nolint:mnd
		_ = tmp.Close()
		return fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}

func pemEncode(blockType string, der []byte) []byte {
	return pem.EncodeToMemory(&pem.Block{Type: blockType, Bytes: der})
}
