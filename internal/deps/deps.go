package deps

import (
	"github.com/and161185/gas2door/internal/auth"
	"go.uber.org/zap"
)

type Deps struct {
	Logger       *zap.SugaredLogger
	TokenManager *auth.TokenManager
}

func NewDependencies(secretKey string, logger *zap.SugaredLogger) *Deps {
	deps := Deps{Logger: logger, TokenManager: auth.NewTokenManager(secretKey)}

	return &deps
}
