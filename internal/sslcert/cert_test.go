package sslcert

import (
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type CertSuite struct {
	suite.Suite
	gen *Generator
	now time.Time
	dir string
}

func TestCertSuite(t *testing.T) {
	suite.Run(t, new(CertSuite))
}

func (s *CertSuite) SetupTest() {
	s.gen = New(WithHosts("geo.local", "10.0.0.5"))
	s.now = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	s.dir = s.T().TempDir()
}

func (s *CertSuite) TestGenerate() {
	certPEM, keyPEM, err := s.gen.Generate(s.now)
	s.Require().NoError(err)
	s.Require().NoError(CheckPair(certPEM, keyPEM, s.now))

	block, _ := pem.Decode(certPEM)
	s.Require().NotNil(block)
	cert, err := x509.ParseCertificate(block.Bytes)
	s.Require().NoError(err)
	s.Contains(cert.DNSNames, "localhost")
	s.Contains(cert.DNSNames, "geo.local")
	s.Len(cert.IPAddresses, 3)
}

func (s *CertSuite) TestCheckPair() {
	s.Run("blank pem", func() {
		s.Require().ErrorIs(CheckPair(nil, []byte("  "), s.now), ErrBlankPEM)
	})

	s.Run("expired", func() {
		certPEM, keyPEM, err := New(WithValidity(time.Hour)).Generate(s.now.Add(-2 * time.Hour))
		s.Require().NoError(err)
		s.Require().ErrorIs(CheckPair(certPEM, keyPEM, s.now), ErrCertExpired)
	})

	s.Run("not valid yet", func() {
		certPEM, keyPEM, err := s.gen.Generate(s.now.Add(time.Hour))
		s.Require().NoError(err)
		s.Require().ErrorIs(CheckPair(certPEM, keyPEM, s.now), ErrCertNotValidYet)
	})

	s.Run("foreign key", func() {
		certPEM, _, err := s.gen.Generate(s.now)
		s.Require().NoError(err)
		_, otherKey, err := s.gen.Generate(s.now)
		s.Require().NoError(err)
		s.Require().ErrorIs(CheckPair(certPEM, otherKey, s.now), ErrInvalidPair)
	})
}

func (s *CertSuite) TestEnsurePair() {
	certPath := filepath.Join(s.dir, "tls", "cert.pem")
	keyPath := filepath.Join(s.dir, "tls", "key.pem")

	s.Run("missing files", func() {
		generated, err := s.gen.EnsurePair(certPath, keyPath, s.now)
		s.Require().NoError(err)
		s.True(generated)

		info, err := os.Stat(keyPath)
		s.Require().NoError(err)
		s.Equal(os.FileMode(0o600), info.Mode().Perm())
	})

	s.Run("valid files are kept", func() {
		before, err := os.ReadFile(certPath)
		s.Require().NoError(err)

		generated, err := s.gen.EnsurePair(certPath, keyPath, s.now.Add(time.Hour))
		s.Require().NoError(err)
		s.False(generated)

		after, err := os.ReadFile(certPath)
		s.Require().NoError(err)
		s.Equal(before, after)
	})

	s.Run("expired files are replaced", func() {
		generated, err := s.gen.EnsurePair(certPath, keyPath, s.now.Add(2*defaultValidity))
		s.Require().NoError(err)
		s.True(generated)
	})

	s.Run("blank files are replaced", func() {
		s.Require().NoError(os.WriteFile(certPath, nil, 0o600))
		generated, err := s.gen.EnsurePair(certPath, keyPath, s.now)
		s.Require().NoError(err)
		s.True(generated)
	})
}
