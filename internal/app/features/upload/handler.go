// internal/app/features/upload/handler.go
package upload

import (
	"github.com/dalemusser/estatehub/internal/app/system/imagestore"
	"github.com/dalemusser/estatehub/internal/app/system/limits"
	"go.uber.org/zap"
)

const (
	MaxFileBytes      = limits.MaxImageBytes
	MaxPropertyImages = limits.MaxPropertyImages

	// memory kept by ParseMultipartForm before spilling files to disk
	formMemory = 8 << 20
)

type Handler struct {
	Images imagestore.Store
	Log    *zap.Logger
}

func NewHandler(images imagestore.Store, logger *zap.Logger) *Handler {
	return &Handler{Images: images, Log: logger}
}
