package publish

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"synapse/internal/models"
)

// ErrRejected — контент не прошёл модерацию.
var ErrRejected = errors.New("content rejected")

// Лимиты длины поста по площадкам, в символах.
var lengthLimits = map[models.Platform]int{
	models.PlatformTwitter:        280,
	models.PlatformLinkedIn:       3000,
	models.PlatformGoogleBusiness: 1500,
	models.PlatformFacebook:       63206,
}

// Формулировки, которые площадки помечают как спам.
var bannedPhrases = []string{
	"guaranteed income",
	"get rich quick",
	"miracle cure",
	"click here now",
	"100% free",
	"no risk at all",
	"act immediately",
}

// Moderate проверяет контент перед публикацией: пустоту, лимит длины
// площадки и запрещённые формулировки.
func Moderate(platform models.Platform, content string) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return fmt.Errorf("%w: empty content", ErrRejected)
	}
	if utf8.RuneCountInString(trimmed) < 3 {
		return fmt.Errorf("%w: content too short", ErrRejected)
	}

	if limit, ok := lengthLimits[platform]; ok {
		if n := utf8.RuneCountInString(content); n > limit {
			return fmt.Errorf("%w: %d characters over the %s limit of %d", ErrRejected, n-limit, platform, limit)
		}
	}

	lower := strings.ToLower(content)
	for _, phrase := range bannedPhrases {
		if strings.Contains(lower, phrase) {
			return fmt.Errorf("%w: contains banned phrase %q", ErrRejected, phrase)
		}
	}
	return nil
}

// LengthLimit возвращает лимит длины для площадки.
// Ноль означает неизвестную площадку.
func LengthLimit(platform models.Platform) int {
	return lengthLimits[platform]
}
