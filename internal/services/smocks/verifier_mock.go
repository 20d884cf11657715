package smocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/fsdevblog/geolink/internal/services"
)

type VerifierMock struct {
	mock.Mock
}

func (v *VerifierMock) Verify(ctx context.Context, req services.VerifyRequest) (*services.VerificationResult, error) {
	args := v.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*services.VerificationResult), args.Error(1) //nolint:wrapcheck,errcheck
}

type LinkInfoMock struct {
	mock.Mock
}

func (l *LinkInfoMock) PublicInfo(ctx context.Context, code string) (*services.PublicLinkInfo, error) {
	args := l.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*services.PublicLinkInfo), args.Error(1) //nolint:wrapcheck,errcheck
}

type PingMock struct {
	mock.Mock
}

func (p *PingMock) CheckConnection(ctx context.Context) error {
	return p.Called(ctx).Error(0) //nolint:wrapcheck
}
