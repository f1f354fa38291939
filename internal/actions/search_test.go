package actions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitwise/internal/api"
	"gitwise/internal/models"
)

func TestSmartSearchReturnsResultsWithoutDispatch(t *testing.T) {
	backend := &backendStub{
		smartSearchFn: func(_ context.Context, userRequest string, userTags []string) (*api.SmartSearchResponse, error) {
			assert.Equal(t, "react projects for beginners", userRequest)
			assert.Equal(t, []string{"react"}, userTags)
			return &api.SmartSearchResponse{
				Results: []api.SearchResult{{PostID: 1, Title: "todo app"}},
			}, nil
		},
	}
	svc, st, _ := newTestService(backend)

	results, err := svc.SmartSearch(context.Background(), "react projects for beginners", []string{"react"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, uint(1), results[0].PostID)
	assert.Empty(t, st.State().OrderedPosts())
}

func TestSmartSearchRejectsEmptyRequest(t *testing.T) {
	svc, _, rec := newTestService(&backendStub{})

	_, err := svc.SmartSearch(context.Background(), "   ", nil)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidation, appErr.Code)
	assert.Contains(t, rec.Errors, "Please ask a question, so we can help you find what you need :)")
}

func TestCreateDonationSession(t *testing.T) {
	backend := &backendStub{
		createStripeSessionFn: func(_ context.Context, amountCents int, frontendURL string) (string, error) {
			assert.Equal(t, 2500, amountCents)
			assert.Equal(t, "https://gitwise.example", frontendURL)
			return "https://checkout.stripe.com/c/pay/cs_test_123", nil
		},
	}
	svc, _, _ := newTestService(backend)

	url, err := svc.CreateDonationSession(context.Background(), 25)
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_123", url)
}

func TestCreateDonationSessionDefaultsAmount(t *testing.T) {
	backend := &backendStub{
		createStripeSessionFn: func(_ context.Context, amountCents int, _ string) (string, error) {
			assert.Equal(t, 1000, amountCents)
			return "https://checkout.stripe.com/c/pay/cs_test_456", nil
		},
	}
	svc, _, _ := newTestService(backend)

	_, err := svc.CreateDonationSession(context.Background(), 0)
	require.NoError(t, err)
}
