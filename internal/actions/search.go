package actions

import (
	"context"
	"strings"

	"gitwise/internal/api"
	"gitwise/internal/models"
	"gitwise/internal/observability"
)

// SmartSearch runs a natural-language search over posts. Ranking is
// entirely server-side; results are returned for display and never
// dispatched into the store.
func (s *Service) SmartSearch(ctx context.Context, userRequest string, userTags []string) ([]api.SearchResult, error) {
	if strings.TrimSpace(userRequest) == "" {
		msg := "Please ask a question, so we can help you find what you need :)"
		s.notifier.Error(msg)
		return nil, models.NewValidationError(msg)
	}

	logger := observability.NewActionLogger("smart_search")
	logger.LogStart(ctx, map[string]interface{}{"tags": len(userTags)})

	resp, err := s.api.SmartSearch(ctx, userRequest, userTags)
	if err != nil {
		logger.LogError(ctx, err)
		s.notifier.Error("Something went wrong with smart search")
		return nil, err
	}

	logger.LogSuccess(ctx, map[string]interface{}{"results": len(resp.Results)})
	return resp.Results, nil
}

// CreateDonationSession creates a hosted checkout session and returns
// its URL. amountUSD is in whole dollars; the API takes cents.
func (s *Service) CreateDonationSession(ctx context.Context, amountUSD int) (string, error) {
	if amountUSD <= 0 {
		amountUSD = 10
	}

	logger := observability.NewActionLogger("create_donation_session")
	logger.LogStart(ctx, map[string]interface{}{"amount_usd": amountUSD})

	url, err := s.api.CreateStripeSession(ctx, amountUSD*100, s.opts.FrontendURL)
	if err != nil {
		logger.LogError(ctx, err)
		s.notifier.Error("Failed to start the donation checkout.")
		return "", err
	}

	logger.LogSuccess(ctx, nil)
	return url, nil
}
