package services

import (
	"encoding/json"
	"errors"
	"strings"

	"socialhub_backend/internal/logger"
	"socialhub_backend/internal/metrics"
	"socialhub_backend/internal/models"
	"socialhub_backend/internal/services/dto"
	"socialhub_backend/pkg/apperrors"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// plainText strips every tag from user supplied strings before they are
// stored or interpolated into notification text.
var plainText = bluemonday.StrictPolicy()

func sanitize(s string) string {
	return plainText.Sanitize(strings.ReplaceAll(s, "\x00", ""))
}

// runInTx executes fn in one transaction. A unique-key collision means a
// concurrent caller produced the same row; the whole operation is replayed
// once so it observes the winner and resolves to a no-op or a business error.
// Business errors pass through untouched, anything else becomes a StorageError.
func runInTx(db *gorm.DB, operation string, fn func(tx *gorm.DB) error) error {
	err := db.Transaction(fn)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		metrics.RecordTxRetry(operation)
		logger.CtxWarn(db.Statement.Context, "retrying transaction after unique key collision",
			"operation", operation)
		err = db.Transaction(fn)
	}
	if err == nil {
		return nil
	}
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	return apperrors.StorageError(err)
}

func toUserSummary(user *models.User) *dto.UserSummary {
	if user == nil {
		return nil
	}
	return &dto.UserSummary{
		ID:          user.ID,
		FullName:    user.FullName,
		DisplayName: user.DisplayName(),
		AvatarURL:   user.AvatarURL,
	}
}

func marshalJSON(v map[string]interface{}) (datatypes.JSON, error) {
	if len(v) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func marshalStrings(values []string) (datatypes.JSON, error) {
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(sanitize(v)); v != "" {
			cleaned = append(cleaned, v)
		}
	}
	raw, err := json.Marshal(cleaned)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func unmarshalStrings(raw datatypes.JSON) []string {
	out := []string{}
	if len(raw) == 0 {
		return out
	}
	_ = json.Unmarshal(raw, &out)
	return out
}
