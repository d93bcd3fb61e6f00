package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/unlockedcoding/backend/pkg/apperror"
)

func uuidParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperror.Validation(name, "must be a valid UUID")
	}
	return id, nil
}
