package controllers

import (
	"context"

	"github.com/fsdevblog/geolink/internal/services"
)

type ConnectionChecker interface {
	CheckConnection(ctx context.Context) error
}

// AccessVerifier проверка доступа к ссылке по координатам клиента.
type AccessVerifier interface {
	Verify(ctx context.Context, req services.VerifyRequest) (*services.VerificationResult, error)
}

// LinkInfoProvider сведения о ссылке, доступные без проверки.
type LinkInfoProvider interface {
	PublicInfo(ctx context.Context, code string) (*services.PublicLinkInfo, error)
}
