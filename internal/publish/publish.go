package publish

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"synapse/internal/logger"
	"synapse/internal/models"
)

// PublishResult — единый конверт результата публикации. Заполняется
// всегда, даже когда вызов площадки завершился ошибкой.
type PublishResult struct {
	Success bool   `json:"success"`
	PostID  string `json:"post_id,omitempty"`
	URL     string `json:"url,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ErrNotImplemented — операция не поддержана для площадки.
var ErrNotImplemented = errors.New("not implemented")

// IsNotImplemented распознаёт неподдержанные операции, в том числе по
// тексту ошибок внешних API.
func IsNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNotImplemented) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "not implemented")
}

// Publisher публикует контент на одной площадке.
type Publisher interface {
	Publish(ctx context.Context, content string) (PublishResult, error)
}

// Credentials — токены площадок. Пустые поля означают, что площадка
// не настроена.
type Credentials struct {
	FacebookPageID string
	FacebookToken  string
	LinkedInAuthor string
	LinkedInToken  string
	TwitterToken   string
	GoogleAccount  string
	GoogleLocation string
	GoogleToken    string
}

// Registry сопоставляет площадки издателям.
type Registry struct {
	publishers map[models.Platform]Publisher
}

// NewRegistry создаёт издателей для площадок, у которых заданы токены.
func NewRegistry(creds Credentials) *Registry {
	pubs := make(map[models.Platform]Publisher)
	if creds.FacebookPageID != "" && creds.FacebookToken != "" {
		pubs[models.PlatformFacebook] = NewFacebook(creds.FacebookPageID, creds.FacebookToken)
	}
	if creds.LinkedInAuthor != "" && creds.LinkedInToken != "" {
		pubs[models.PlatformLinkedIn] = NewLinkedIn(creds.LinkedInAuthor, creds.LinkedInToken)
	}
	if creds.TwitterToken != "" {
		pubs[models.PlatformTwitter] = NewTwitter(creds.TwitterToken)
	}
	if creds.GoogleAccount != "" && creds.GoogleLocation != "" && creds.GoogleToken != "" {
		pubs[models.PlatformGoogleBusiness] = NewGoogleBusiness(creds.GoogleAccount, creds.GoogleLocation, creds.GoogleToken)
	}
	return &Registry{publishers: pubs}
}

// NewRegistryOf собирает реестр из готовых издателей.
func NewRegistryOf(pubs map[models.Platform]Publisher) *Registry {
	return &Registry{publishers: pubs}
}

// Configured возвращает площадки с настроенными издателями.
func (r *Registry) Configured() []models.Platform {
	ready := make([]models.Platform, 0, len(r.publishers))
	for _, p := range models.AllPlatforms {
		if _, ok := r.publishers[p]; ok {
			ready = append(ready, p)
		}
	}
	return ready
}

// Publish прогоняет контент через модерацию и издателя площадки.
// Паники издателя перехватываются и превращаются в ошибку конверта.
func (r *Registry) Publish(ctx context.Context, platform models.Platform, content string) (res PublishResult, err error) {
	log := logger.Namespace("publish").WithField("platform", platform)

	defer func() {
		if rec := recover(); rec != nil {
			log.Errorf("Publisher panic: %v", rec)
			err = fmt.Errorf("publisher panic: %v", rec)
			res = PublishResult{Error: err.Error()}
		}
	}()

	if err := Moderate(platform, content); err != nil {
		log.Warnf("Content rejected: %v", err)
		return PublishResult{Error: err.Error()}, err
	}

	pub, ok := r.publishers[platform]
	if !ok {
		err := fmt.Errorf("publishing to %s: %w", platform, ErrNotImplemented)
		return PublishResult{Error: err.Error()}, err
	}

	res, err = pub.Publish(ctx, content)
	if err != nil {
		log.Errorf("Publish failed: %v", err)
		if res.Error == "" {
			res.Error = err.Error()
		}
		res.Success = false
		return res, err
	}

	log.WithField("post_id", res.PostID).Info("Published")
	res.Success = true
	return res, nil
}
