package validator

import (
	"log"

	"socialhub_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules panics the process on failure: a broken tag is a
// startup bug, not a request error.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-friend-request-status", validateFriendRequestStatus)
	mustRegister("is-notification-type", validateNotificationType)
}

// Empty values pass; 'required' covers them.

func validateFriendRequestStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.FriendRequestStatus(value).IsValid()
}

func validateNotificationType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.NotificationType(value).IsValid()
}
